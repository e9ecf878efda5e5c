package series

import (
	"fmt"
	"strings"
	"unicode"
)

// SyntaxError points at the column where a selector stopped making sense.
type SyntaxError struct {
	Msg string
	Col int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("series: %v at column %v", e.Msg, e.Col)
}

// Scanner tokenizes selectors of the form name{label="value",...}.
type Scanner struct {
}

func NewScanner() *Scanner {
	return &Scanner{}
}

func isNameRune(r rune, first bool) bool {
	if r == '_' || r == ':' || unicode.IsLetter(r) {
		return true
	}
	return !first && unicode.IsDigit(r)
}

func (*Scanner) Scan(data string) (TokenList, error) {
	var tokens TokenList
	runes := []rune(data)
	index := 0

	next := func() rune {
		current := runes[index]
		index = index + 1
		return current
	}

	peek := func() rune {
		return runes[index]
	}

	name := func(start int) Token {
		sb := strings.Builder{}
		for index < len(runes) && isNameRune(peek(), sb.Len() == 0) {
			sb.WriteRune(next())
		}
		return Token{
			TokenType: TokenTypeName,
			StringVal: sb.String(),
			Col:       start,
		}
	}

	quoted := func(start int) (Token, error) {
		sb := strings.Builder{}
		for index < len(runes) {
			r := next()
			switch r {
			case '"':
				return Token{
					TokenType: TokenTypeString,
					StringVal: sb.String(),
					Col:       start,
				}, nil
			case '\\':
				if index >= len(runes) {
					return Token{}, &SyntaxError{Msg: "unterminated escape", Col: index}
				}
				e := next()
				switch e {
				case '"', '\\':
					sb.WriteRune(e)
				case 'n':
					sb.WriteRune('\n')
				default:
					return Token{}, &SyntaxError{Msg: fmt.Sprintf("invalid escape \\%c", e), Col: index - 2}
				}
			default:
				sb.WriteRune(r)
			}
		}
		return Token{}, &SyntaxError{Msg: "unterminated string", Col: start}
	}

	for index < len(runes) {
		r := peek()
		col := index

		// ignore whitespace
		if unicode.IsSpace(r) {
			index++
			continue
		}

		if isNameRune(r, true) {
			tokens = append(tokens, name(col))
			continue
		}

		next()
		switch r {
		case '{':
			tokens = append(tokens, Token{TokenType: TokenTypeLBrace, Col: col})
		case '}':
			tokens = append(tokens, Token{TokenType: TokenTypeRBrace, Col: col})
		case '=':
			tokens = append(tokens, Token{TokenType: TokenTypeEquals, Col: col})
		case ',':
			tokens = append(tokens, Token{TokenType: TokenTypeComma, Col: col})
		case '"':
			token, err := quoted(col)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)
		default:
			return nil, &SyntaxError{Msg: fmt.Sprintf("unexpected character %q", r), Col: col}
		}
	}

	return tokens, nil
}
