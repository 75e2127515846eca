package model

import (
	"strings"
	"unicode"
)

// acronyms stay upper case in humanized labels. code.json keys spell them
// that way ("repositoryURL", "homepageURL", "contractNumberID").
var acronyms = map[string]struct{}{
	"api":  {},
	"id":   {},
	"uri":  {},
	"url":  {},
	"faq":  {},
	"spdx": {},
}

// FieldNameLabeler returns the field name unchanged. Compiled labels mirror
// schema property names so the generated form reads like the document it
// produces.
func FieldNameLabeler(name string) string {
	return name
}

// HumanizeLabel turns a property name into a sentence-cased label:
// "repositoryURL" becomes "Repository URL" and "vcs_type" becomes "Vcs type".
func HumanizeLabel(name string) string {
	words := labelWords(name)
	for i, word := range words {
		lower := strings.ToLower(word)
		switch {
		case isAcronym(lower):
			words[i] = strings.ToUpper(lower)
		case i == 0:
			runes := []rune(lower)
			runes[0] = unicode.ToUpper(runes[0])
			words[i] = string(runes)
		default:
			words[i] = lower
		}
	}
	return strings.Join(words, " ")
}

func isAcronym(word string) bool {
	_, ok := acronyms[word]
	return ok
}

// labelWords splits on separators and on case or digit transitions. A run of
// capitals followed by a lower case letter keeps its last capital for the next
// word, so "URLPath" yields "URL", "Path".
func labelWords(name string) []string {
	runes := []rune(name)
	var (
		words   []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if i > 0 && len(current) > 0 && startsWord(runes, i) {
			flush()
		}
		current = append(current, r)
	}
	flush()
	return words
}

func startsWord(runes []rune, i int) bool {
	prev, cur := runes[i-1], runes[i]
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(cur):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(cur), unicode.IsDigit(prev) && unicode.IsLetter(cur):
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
		return true
	}
	return false
}
