package storage

import (
	"strings"

	"github.com/its-jojoo/stringscope/internal/core"
	"github.com/its-jojoo/stringscope/internal/errors"
)

// SQLDialect captures the few places the SQL adapters disagree.
type SQLDialect struct {
	// BoolArg converts a bool to the driver's boolean representation.
	BoolArg func(b bool) any
	// Lower names a Unicode-aware lowercase function; empty means "lower".
	Lower string
}

var columns = map[core.Field]string{
	core.FieldIsPalindrome: `"is_palindrome"`,
	core.FieldWordCount:    `"word_count"`,
	core.FieldLength:       `"length"`,
	core.FieldValue:        `"value"`,
}

var comparators = map[core.Op]string{
	core.OpEq:  "=",
	core.OpGt:  ">",
	core.OpGte: ">=",
	core.OpLt:  "<",
	core.OpLte: "<=",
}

// SQLWhere renders f as a parameterized boolean expression using '?'
// placeholders. An empty filter renders as "".
func SQLWhere(f core.Filter, d SQLDialect) (string, []any, error) {
	parts := make([]string, 0, len(f))
	args := make([]any, 0, len(f))

	for _, c := range f {
		col, ok := columns[c.Field]
		if !ok {
			return "", nil, errors.Newf("unsupported filter field %q", c.Field)
		}

		switch {
		case c.Op == core.OpContains && c.Field == core.FieldValue:
			lower := d.Lower
			if lower == "" {
				lower = "lower"
			}
			parts = append(parts, lower+"("+col+`) LIKE ? ESCAPE '\'`)
			args = append(args, "%"+escapeLike(strings.ToLower(c.Text()))+"%")

		case c.Field == core.FieldIsPalindrome && c.Op == core.OpEq:
			arg := any(c.Bool())
			if d.BoolArg != nil {
				arg = d.BoolArg(c.Bool())
			}
			parts = append(parts, col+" = ?")
			args = append(args, arg)

		case c.Field == core.FieldValue && c.Op == core.OpEq:
			parts = append(parts, col+" = ?")
			args = append(args, c.Text())

		case c.Field == core.FieldWordCount || c.Field == core.FieldLength:
			cmp, ok := comparators[c.Op]
			if !ok {
				return "", nil, errors.Newf("unsupported operator %q for %q", c.Op, c.Field)
			}
			parts = append(parts, col+" "+cmp+" ?")
			args = append(args, c.Int())

		default:
			return "", nil, errors.Newf("unsupported operator %q for %q", c.Op, c.Field)
		}
	}
	return strings.Join(parts, " AND "), args, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
