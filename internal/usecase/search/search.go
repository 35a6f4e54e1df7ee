package search

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/its-jojoo/stringscope/internal/core"
	"github.com/its-jojoo/stringscope/internal/errors"
)

type Store interface {
	Find(ctx context.Context, f core.Filter) ([]core.Record, error)
	Count(ctx context.Context, f core.Filter) (int, error)
}

// Params are the structured listing parameters. Nil means "not supplied";
// the struct doubles as the filters_applied echo.
type Params struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

type ListResult struct {
	Data           []core.Record `json:"data"`
	Count          int           `json:"count"`
	FiltersApplied Params        `json:"filters_applied"`
}

type Interpretation struct {
	Original      string        `json:"original"`
	ParsedFilters []core.Clause `json:"parsed_filters"`
}

type InterpretResult struct {
	Data             []core.Record  `json:"data"`
	Count            int            `json:"count"`
	InterpretedQuery Interpretation `json:"interpreted_query"`
}

type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

// ParseParams validates query-string parameters. Unknown keys are ignored.
func ParseParams(q url.Values) (Params, error) {
	var p Params

	if q.Has("is_palindrome") {
		switch strings.ToLower(q.Get("is_palindrome")) {
		case "true":
			p.IsPalindrome = ptr(true)
		case "false":
			p.IsPalindrome = ptr(false)
		default:
			return Params{}, errors.NewInvalidInputError("invalid value for is_palindrome (must be true or false)")
		}
	}

	for _, param := range []struct {
		key string
		dst **int
	}{
		{"min_length", &p.MinLength},
		{"max_length", &p.MaxLength},
		{"word_count", &p.WordCount},
	} {
		if !q.Has(param.key) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(q.Get(param.key)))
		if err != nil || n < 0 {
			return Params{}, errors.NewInvalidInputError("invalid value for %s", param.key)
		}
		*param.dst = ptr(n)
	}

	if q.Has("contains_character") {
		c := q.Get("contains_character")
		if utf8.RuneCountInString(c) != 1 {
			return Params{}, errors.NewInvalidInputError("contains_character must be a single character")
		}
		p.ContainsCharacter = ptr(c)
	}

	return p, nil
}

// Filter converts p to clauses. min and max length combine with AND.
func (p Params) Filter() core.Filter {
	var f core.Filter
	if p.IsPalindrome != nil {
		f = f.And(core.BoolClause(core.FieldIsPalindrome, *p.IsPalindrome))
	}
	if p.MinLength != nil {
		f = f.And(core.IntClause(core.FieldLength, core.OpGte, *p.MinLength))
	}
	if p.MaxLength != nil {
		f = f.And(core.IntClause(core.FieldLength, core.OpLte, *p.MaxLength))
	}
	if p.WordCount != nil {
		f = f.And(core.IntClause(core.FieldWordCount, core.OpEq, *p.WordCount))
	}
	if p.ContainsCharacter != nil {
		f = f.And(core.ContainsClause(core.FieldValue, *p.ContainsCharacter))
	}
	return f
}

func (s *Service) List(ctx context.Context, p Params) (ListResult, error) {
	f := p.Filter()

	data, err := s.store.Find(ctx, f)
	if err != nil {
		return ListResult{}, errors.Wrap(err, "find records")
	}
	n, err := s.store.Count(ctx, f)
	if err != nil {
		return ListResult{}, errors.Wrap(err, "count records")
	}
	return ListResult{Data: nonNil(data), Count: n, FiltersApplied: p}, nil
}

// Interpret translates a natural-language query and runs it.
func (s *Service) Interpret(ctx context.Context, query string) (InterpretResult, error) {
	if strings.TrimSpace(query) == "" {
		return InterpretResult{}, errors.NewInvalidInputError("missing natural language query parameter")
	}

	f, ok := core.Translate(query)
	if !ok {
		return InterpretResult{}, errors.NewUninterpretableError("unable to interpret the natural language query")
	}

	data, err := s.store.Find(ctx, f)
	if err != nil {
		return InterpretResult{}, errors.Wrap(err, "find records")
	}
	return InterpretResult{
		Data:  nonNil(data),
		Count: len(data),
		InterpretedQuery: Interpretation{
			Original:      query,
			ParsedFilters: f.Clauses(),
		},
	}, nil
}

func nonNil(rs []core.Record) []core.Record {
	if rs == nil {
		return []core.Record{}
	}
	return rs
}

func ptr[T any](v T) *T { return &v }
