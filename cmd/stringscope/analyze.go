package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/its-jojoo/stringscope/internal/core"
	"github.com/its-jojoo/stringscope/internal/errors"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <text>",
	Short: "Print the properties of a string without storing it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := strings.Join(args, " ")
		props, err := core.Analyze(value)
		if err != nil {
			return err
		}

		data := pterm.TableData{
			{"Property", "Value"},
			{"length", strconv.Itoa(props.Length)},
			{"is_palindrome", strconv.FormatBool(props.IsPalindrome)},
			{"unique_characters", strconv.Itoa(props.UniqueCharacters)},
			{"word_count", strconv.Itoa(props.WordCount)},
			{"content_hash", props.ContentHash},
			{"character_frequency", formatFrequency(props.CharacterFrequency)},
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var translateCmd = &cobra.Command{
	Use:   "translate <query>",
	Short: "Show the structured filter a natural-language query maps to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		f, ok := core.Translate(query)
		if !ok {
			pterm.Warning.Printfln("Unable to interpret %q", query)
			return errors.NewUninterpretableError("unable to interpret %q", query)
		}

		data := pterm.TableData{{"Field", "Operator", "Value"}}
		for _, c := range f.Clauses() {
			data = append(data, []string{string(c.Field), string(c.Op), fmt.Sprint(c.Value)})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

// formatFrequency renders counts in rune order, e.g. "a:3 b:1".
func formatFrequency(freq map[string]int) string {
	keys := make([]string, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%d", k, freq[k]))
	}
	return strings.Join(parts, " ")
}
