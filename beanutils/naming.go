// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-bean library.

package beanutils

import (
	"unicode"
	"unicode/utf8"
)

// LowerCamel converts an UpperCamel identifier to lowerCamel.
//
// A leading run of upper case letters is treated as an acronym: all of it is lowered
// except the last letter when that letter starts the next word.
//
//	LowerCamel("Name")    // "name"
//	LowerCamel("URL")     // "url"
//	LowerCamel("URLPath") // "urlPath"
//	LowerCamel("UserID")  // "userID"
func LowerCamel(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	if !unicode.IsUpper(runes[0]) {
		return s
	}

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	switch {
	case n == 1, n == len(runes):
		// single leading capital or all capitals
	case unicode.IsLetter(runes[n]):
		// the last capital of the run belongs to the next word
		n--
	}

	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// UpperCamel converts the first rune of s to upper case.
func UpperCamel(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// IsExported reports whether name starts with an upper case letter.
func IsExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
