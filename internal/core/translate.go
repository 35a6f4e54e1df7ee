package core

import (
	"regexp"
	"strconv"
	"strings"
)

// rule turns a lowercased query into a clause when it matches.
type rule func(q string) (Clause, bool)

// Each group yields at most one clause: its rules are tried in order and the
// first match wins. Groups are independent and combine with AND.
var ruleGroups = [][]rule{
	{
		substring([]string{"palindrome", "palindromic"}, func() Clause {
			return BoolClause(FieldIsPalindrome, true)
		}),
	},
	{
		substring([]string{"single word"}, func() Clause {
			return IntClause(FieldWordCount, OpEq, 1)
		}),
		number(`(\d+)\s*word`, func(n int) Clause {
			return IntClause(FieldWordCount, OpEq, n)
		}),
	},
	{
		number(`longer than (\d+)`, func(n int) Clause {
			return IntClause(FieldLength, OpGt, n)
		}),
		number(`shorter than (\d+)`, func(n int) Clause {
			return IntClause(FieldLength, OpLt, n)
		}),
	},
	{
		letter(`contain(?:s|ing)? the letter ([a-z])`),
		letter(`contain(?:s|ing)? ([a-z])`),
	},
}

// Translate maps a free-text query onto a Filter. ok is false when no rule
// matched, meaning the query is uninterpretable.
func Translate(query string) (f Filter, ok bool) {
	q := strings.ToLower(query)
	for _, group := range ruleGroups {
		for _, r := range group {
			if c, matched := r(q); matched {
				f = f.And(c)
				break
			}
		}
	}
	return f, len(f) > 0
}

func substring(needles []string, build func() Clause) rule {
	return func(q string) (Clause, bool) {
		for _, n := range needles {
			if strings.Contains(q, n) {
				return build(), true
			}
		}
		return Clause{}, false
	}
}

func number(pattern string, build func(n int) Clause) rule {
	re := regexp.MustCompile(pattern)
	return func(q string) (Clause, bool) {
		m := re.FindStringSubmatch(q)
		if m == nil {
			return Clause{}, false
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// digits too long for int
			return Clause{}, false
		}
		return build(n), true
	}
}

func letter(pattern string) rule {
	re := regexp.MustCompile(pattern)
	return func(q string) (Clause, bool) {
		m := re.FindStringSubmatch(q)
		if m == nil {
			return Clause{}, false
		}
		return ContainsClause(FieldValue, m[1]), true
	}
}
