package command

import (
	"fmt"
	"strings"
)

// splitTokens splits input on whitespace while keeping double-quoted runs
// together, so keys and values may contain spaces. An unterminated quote is
// treated as running to the end of input.
func splitTokens(input string) []string {
	tokens := []string{}
	var current strings.Builder
	inQuote := false
	hasToken := false

	for _, r := range input {
		switch {
		case r == '"':
			inQuote = !inQuote
			hasToken = true
		case !inQuote && (r == ' ' || r == '\t' || r == '\n'):
			if hasToken {
				tokens = append(tokens, current.String())
				current.Reset()
				hasToken = false
			}
		default:
			current.WriteRune(r)
			hasToken = true
		}
	}
	if hasToken {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// parseKeyValues extracts a key and a comma-separated value list from the
// tokens following a command word.
//
//	add "foo bar" hello, world, hello world
//	→ key "foo bar", values ["hello", "world", "hello world"]
func parseKeyValues(args []string, requireValues bool) (string, []string, error) {
	if len(args) < 1 {
		return "", nil, fmt.Errorf("expected at least a key")
	}
	key := strings.TrimSpace(args[0])
	if requireValues && len(args) < 2 {
		return "", nil, fmt.Errorf("expected a key and values")
	}

	values := []string{}
	if requireValues {
		for _, part := range strings.Split(strings.Join(args[1:], " "), ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
	}
	return key, values, nil
}
