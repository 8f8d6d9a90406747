package repl

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnbalancedQuotes is returned for a line with an unterminated quote.
var ErrUnbalancedQuotes = errors.New("unbalanced quotes")

// SplitArgs splits a line into arguments. Double-quoted text understands
// the escapes \n, \r, \t, \\ and \". Single-quoted text is literal except
// for \'. Adjacent quoted and unquoted text joins into one argument.
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inArg   bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			escaped = false
			if quote == '"' {
				switch r {
				case 'n':
					r = '\n'
				case 'r':
					r = '\r'
				case 't':
					r = '\t'
				case '\\', '"':
				default:
					cur.WriteRune('\\')
				}
			} else if r != '\'' {
				cur.WriteRune('\\')
			}
			cur.WriteRune(r)
		case quote != 0 && r == '\\':
			escaped = true
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 || escaped {
		return nil, ErrUnbalancedQuotes
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
