package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Number keeps JSON numeric literals verbatim so documents round-trip without
// float formatting drift.
type Number = gojson.Number

var (
	// ErrEmpty is returned when decoding an empty payload.
	ErrEmpty = errors.New("document: payload is empty")
	// ErrTrailingData is returned when a JSON payload holds more than one value.
	ErrTrailingData = errors.New("document: trailing data after top-level value")
)

// Decode parses a JSON payload. Objects become *Object with their key order
// preserved, arrays become []any and numbers become Number.
func Decode(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}

	dec := gojson.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("document: decode json: %w", err)
	}
	value, err := decodeToken(dec, tok)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("document: decode json: %w", err)
		}
		return nil, ErrTrailingData
	}
	return value, nil
}

// DecodeObject parses a JSON payload that must hold an object.
func DecodeObject(raw []byte) (*Object, error) {
	value, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	obj, ok := value.(*Object)
	if !ok {
		return nil, fmt.Errorf("document: expected object, got %s", TypeName(value))
	}
	return obj, nil
}

func decodeToken(dec *gojson.Decoder, tok gojson.Token) (any, error) {
	switch typed := tok.(type) {
	case gojson.Delim:
		switch typed {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("document: unexpected delimiter %q", rune(typed))
		}
	case string, bool, nil:
		return typed, nil
	case gojson.Number:
		return typed, nil
	case float64:
		return Number(strconv.FormatFloat(typed, 'g', -1, 64)), nil
	default:
		return nil, fmt.Errorf("document: unexpected token %T", tok)
	}
}

func decodeObject(dec *gojson.Decoder) (*Object, error) {
	obj := NewObject()
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("document: decode object: %w", err)
		}
		if delim, ok := tok.(gojson.Delim); ok && delim == '}' {
			return obj, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("document: object key must be a string, got %T", tok)
		}
		valueTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("document: decode %q: %w", key, err)
		}
		value, err := decodeToken(dec, valueTok)
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}
}

func decodeArray(dec *gojson.Decoder) ([]any, error) {
	out := make([]any, 0)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("document: decode array: %w", err)
		}
		if delim, ok := tok.(gojson.Delim); ok && delim == ']' {
			return out, nil
		}
		value, err := decodeToken(dec, tok)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
}

// DecodeYAML parses a YAML payload into the same value model as Decode.
func DecodeYAML(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmpty
	}
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("document: decode yaml: %w", err)
	}
	return fromYAML(&root)
}

// DecodeAuto tries JSON first and falls back to YAML.
func DecodeAuto(raw []byte) (any, error) {
	value, jsonErr := Decode(raw)
	if jsonErr == nil {
		return value, nil
	}
	if errors.Is(jsonErr, ErrEmpty) {
		return nil, jsonErr
	}
	value, yamlErr := DecodeYAML(raw)
	if yamlErr != nil {
		return nil, fmt.Errorf("document: invalid JSON or YAML: %w", jsonErr)
	}
	return value, nil
}

func fromYAML(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromYAML(node.Content[0])
	case yaml.AliasNode:
		if node.Alias == nil {
			return nil, fmt.Errorf("document: dangling yaml alias at line %d", node.Line)
		}
		return fromYAML(node.Alias)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("document: yaml key must be a scalar at line %d", keyNode.Line)
			}
			value, err := fromYAML(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, value)
		}
		return obj, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := fromYAML(child)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	case yaml.ScalarNode:
		return yamlScalar(node)
	default:
		return nil, fmt.Errorf("document: unsupported yaml node at line %d", node.Line)
	}
}

func yamlScalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var out bool
		if err := node.Decode(&out); err != nil {
			return nil, fmt.Errorf("document: yaml bool at line %d: %w", node.Line, err)
		}
		return out, nil
	case "!!int":
		var out int64
		if err := node.Decode(&out); err != nil {
			return nil, fmt.Errorf("document: yaml int at line %d: %w", node.Line, err)
		}
		return Number(strconv.FormatInt(out, 10)), nil
	case "!!float":
		var out float64
		if err := node.Decode(&out); err != nil {
			return nil, fmt.Errorf("document: yaml float at line %d: %w", node.Line, err)
		}
		if math.IsNaN(out) || math.IsInf(out, 0) {
			return nil, fmt.Errorf("document: yaml float at line %d is not representable in JSON", node.Line)
		}
		return Number(strconv.FormatFloat(out, 'g', -1, 64)), nil
	default:
		return node.Value, nil
	}
}

// Encode serialises a value tree compactly. Object key order is kept and HTML
// characters are left unescaped.
func Encode(value any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeIndent serialises a value tree with two-space indentation and a
// trailing newline, the layout used for downloaded code.json files.
func EncodeIndent(value any) ([]byte, error) {
	raw, err := Encode(value)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := gojson.Indent(&out, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("document: indent: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, value any) error {
	switch typed := value.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(typed))
	case string:
		return encodeString(buf, typed)
	case Number:
		if typed == "" {
			buf.WriteString("0")
			return nil
		}
		buf.WriteString(string(typed))
	case int:
		buf.WriteString(strconv.Itoa(typed))
	case int64:
		buf.WriteString(strconv.FormatInt(typed, 10))
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return fmt.Errorf("document: unsupported float value %v", typed)
		}
		buf.WriteString(strconv.FormatFloat(typed, 'g', -1, 64))
	case *Object:
		if typed == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, key := range typed.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeValue(buf, typed.values[key]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, item := range typed {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case []string:
		buf.WriteByte('[')
		for i, item := range typed {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, key := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeValue(buf, typed[key]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		raw, err := gojson.MarshalNoEscape(value)
		if err != nil {
			return fmt.Errorf("document: encode %T: %w", value, err)
		}
		buf.Write(raw)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, value string) error {
	raw, err := gojson.MarshalNoEscape(value)
	if err != nil {
		return fmt.Errorf("document: encode string: %w", err)
	}
	buf.Write(raw)
	return nil
}

// Plain converts a value tree into map[string]any / []any / float64 values so
// it can be handed to validators that expect encoding/json shapes.
func Plain(value any) any {
	switch typed := value.(type) {
	case *Object:
		if typed == nil {
			return nil
		}
		out := make(map[string]any, typed.Len())
		typed.Range(func(key string, item any) bool {
			out[key] = Plain(item)
			return true
		})
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = Plain(item)
		}
		return out
	case Number:
		if f, err := typed.Float64(); err == nil {
			return f
		}
		return string(typed)
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	default:
		return value
	}
}

// TypeName describes the JSON type of a decoded value for error messages.
func TypeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case Number, int, int64, float64:
		return "number"
	case *Object:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", value)
	}
}
