// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package labels provides functions for producing user-friendly
// labels for types, members, and values.
package labels

import (
	"reflect"
	"strings"
	"unicode"

	"cogentcore.org/inspector/base/reflectx"
)

// Labeler is an interface that types can implement to provide
// a custom label for their values.
type Labeler interface {

	// Label returns the label for the value.
	Label() string
}

// Words splits the given CamelCase, snake_case, or kebab-case
// identifier into its words, keeping acronyms together.
func Words(s string) []string {
	var words []string
	rs := []rune(s)
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(rs[start:end]))
		}
		start = -1
	}
	for i, r := range rs {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush(i)
		case unicode.IsUpper(r):
			if start >= 0 {
				prevLower := unicode.IsLower(rs[i-1]) || unicode.IsDigit(rs[i-1])
				nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
				if prevLower || (nextLower && unicode.IsUpper(rs[i-1])) {
					flush(i)
				}
			}
			if start < 0 {
				start = i
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(rs))
	return words
}

// ToKebab returns the given identifier in kebab-case.
func ToKebab(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "-")
}

// ToSentence returns the given identifier in Sentence case,
// preserving acronyms.
func ToSentence(s string) string {
	words := Words(s)
	for i, w := range words {
		if isAcronym(w) {
			continue
		}
		if i == 0 {
			rs := []rune(w)
			words[i] = string(unicode.ToUpper(rs[0])) + strings.ToLower(string(rs[1:]))
			continue
		}
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, " ")
}

func isAcronym(w string) bool {
	if len(w) < 2 {
		return false
	}
	for _, r := range w {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// FriendlyTypeName returns a user-friendly version of the name of the given type.
// It transforms it into sentence case, excludes the package, and converts various
// builtin types into more friendly forms (eg: "int" to "Number").
func FriendlyTypeName(typ reflect.Type) string {
	if typ == nil {
		return "None"
	}
	nptyp := reflectx.NonPointerType(typ)
	nm := nptyp.Name()

	if nm != "" {
		switch nm {
		case "string":
			return "Text"
		case "bool":
			return "Switch"
		case "float32", "float64", "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr":
			return "Number"
		}
		return ToSentence(nm)
	}

	switch nptyp.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		bnm := FriendlyTypeName(nptyp.Elem())
		if strings.HasSuffix(bnm, "s") {
			return "List of " + bnm
		}
		return bnm + "s"
	case reflect.Func:
		return "Function"
	}
	if nptyp.Kind() == reflect.Interface && nptyp.NumMethod() == 0 {
		return "Value"
	}
	return nptyp.String()
}

// FriendlyMemberName returns a user-friendly label for the member with the given name.
func FriendlyMemberName(name string) string {
	return ToSentence(name)
}
