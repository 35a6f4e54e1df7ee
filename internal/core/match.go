package core

import (
	"strings"
)

// Match evaluates f against r in memory. Stores that cannot push a filter
// down to their query language use it directly.
func (f Filter) Match(r Record) bool {
	for _, c := range f {
		if !c.Match(r) {
			return false
		}
	}
	return true
}

func (c Clause) Match(r Record) bool {
	switch c.Field {
	case FieldIsPalindrome:
		return c.Op == OpEq && r.Properties.IsPalindrome == c.Bool()
	case FieldWordCount:
		return compareInt(r.Properties.WordCount, c.Op, c.Int())
	case FieldLength:
		return compareInt(r.Properties.Length, c.Op, c.Int())
	case FieldValue:
		switch c.Op {
		case OpContains:
			return strings.Contains(strings.ToLower(r.Value), strings.ToLower(c.Text()))
		case OpEq:
			return r.Value == c.Text()
		}
	}
	return false
}

func compareInt(got int, op Op, want int) bool {
	switch op {
	case OpEq:
		return got == want
	case OpGt:
		return got > want
	case OpGte:
		return got >= want
	case OpLt:
		return got < want
	case OpLte:
		return got <= want
	default:
		return false
	}
}
