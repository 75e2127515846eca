// Package document holds the order-preserving value model shared by schema
// parsing and form data reduction. JSON objects decode into *Object so the
// declaration order of schema properties and the key order of submitted
// values survive a round trip; arrays decode into []any and numbers keep
// their literal text as Number.
package document
