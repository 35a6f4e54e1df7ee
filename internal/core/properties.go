package core

import (
	"strings"
	"unicode/utf8"

	"github.com/its-jojoo/stringscope/internal/errors"
)

// Properties is the snapshot computed once when a value is first stored.
type Properties struct {
	Length             int            `json:"length"`
	IsPalindrome       bool           `json:"is_palindrome"`
	UniqueCharacters   int            `json:"unique_characters"`
	WordCount          int            `json:"word_count"`
	ContentHash        string         `json:"content_hash"`
	CharacterFrequency map[string]int `json:"character_frequency"`
}

// Analyze computes every property of v from a single normalized form.
func Analyze(v string) (Properties, error) {
	if err := validate(v); err != nil {
		return Properties{}, err
	}
	n := Normalize(v)
	freq := frequency(n)
	return Properties{
		Length:             utf8.RuneCountInString(n),
		IsPalindrome:       palindrome(n),
		UniqueCharacters:   len(freq),
		WordCount:          len(Words(v)),
		ContentHash:        Fingerprint(n),
		CharacterFrequency: freq,
	}, nil
}

func validate(v string) error {
	if v == "" {
		return errors.NewInvalidInputError("value must be a non-empty string")
	}
	return nil
}

func Length(v string) int {
	return utf8.RuneCountInString(Normalize(v))
}

// IsPalindrome compares the lowercased normalized form with its own reverse,
// so "Race car" is a palindrome.
func IsPalindrome(v string) bool {
	return palindrome(Normalize(v))
}

func UniqueCharacters(v string) int {
	return len(frequency(Normalize(v)))
}

// WordCount counts whitespace-delimited tokens of the original string.
func WordCount(v string) (int, error) {
	if v == "" {
		return 0, errors.NewInvalidInputError("value must be a non-empty string")
	}
	return len(Words(v)), nil
}

func ContentHash(v string) string {
	return Fingerprint(Normalize(v))
}

func CharacterFrequency(v string) map[string]int {
	return frequency(Normalize(v))
}

func palindrome(normalized string) bool {
	rs := []rune(strings.ToLower(normalized))
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		if rs[i] != rs[j] {
			return false
		}
	}
	return true
}

func frequency(normalized string) map[string]int {
	out := make(map[string]int)
	for _, r := range normalized {
		out[string(r)]++
	}
	return out
}
