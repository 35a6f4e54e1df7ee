package core

// Field names a filterable property of a Record.
type Field string

const (
	FieldIsPalindrome Field = "is_palindrome"
	FieldWordCount    Field = "word_count"
	FieldLength       Field = "length"
	FieldValue        Field = "value"
)

// Op is a comparison operator understood by every store adapter.
type Op string

const (
	OpEq       Op = "eq"
	OpGt       Op = "gt"
	OpGte      Op = "gte"
	OpLt       Op = "lt"
	OpLte      Op = "lte"
	OpContains Op = "contains" // case-insensitive substring, string fields only
)

// Clause is one {field, operator, value} predicate. Value is a bool for
// is_palindrome, an int for word_count and length, a string for value.
type Clause struct {
	Field Field `json:"field"`
	Op    Op    `json:"operator"`
	Value any   `json:"value"`
}

// Filter is a conjunction of clauses. The empty filter matches everything.
type Filter []Clause

func BoolClause(f Field, v bool) Clause         { return Clause{Field: f, Op: OpEq, Value: v} }
func IntClause(f Field, op Op, n int) Clause    { return Clause{Field: f, Op: op, Value: n} }
func ContainsClause(f Field, sub string) Clause { return Clause{Field: f, Op: OpContains, Value: sub} }

func (c Clause) Bool() bool {
	b, _ := c.Value.(bool)
	return b
}

func (c Clause) Int() int {
	n, _ := c.Value.(int)
	return n
}

func (c Clause) Text() string {
	s, _ := c.Value.(string)
	return s
}

// And returns f extended with c.
func (f Filter) And(c Clause) Filter {
	return append(f, c)
}

// Clauses never returns nil, so JSON encodes an empty list as [].
func (f Filter) Clauses() []Clause {
	if f == nil {
		return []Clause{}
	}
	return f
}
