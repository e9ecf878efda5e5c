package calc

import (
	"strconv"
	"strings"
	"unicode"
)

// Scanner turns a line of text into tokens. The default scanner reports
// unknown characters as Invalid tokens and leaves the decision to the
// parser; a strict scanner fails on them right away.
type Scanner struct {
	strict bool
}

func NewScanner() *Scanner {
	return &Scanner{}
}

func NewStrictScanner() *Scanner {
	return &Scanner{strict: true}
}

func isNumberRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}

func (s *Scanner) Scan(data string) (TokenList, error) {
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

	number := func() (Token, error) {
		start := index
		sb := strings.Builder{}
		for index < len(runes) && isNumberRune(peek()) {
			sb.WriteRune(next())
		}
		f, err := strconv.ParseFloat(sb.String(), 64)
		if err != nil {
			return Token{}, &Error{
				Kind: ErrInvalidNumber,
				Text: sb.String(),
				Pos:  start,
			}
		}
		return Token{
			TokenType: TokenTypeNumber,
			FloatVal:  f,
			Pos:       start,
		}, nil
	}

	for index < len(runes) {
		r := peek()

		// ignore whitespace
		if unicode.IsSpace(r) {
			index++
			continue
		}

		if isNumberRune(r) {
			token, err := number()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)
			continue
		}

		pos := index
		next()
		switch r {
		case '(':
			tokens = append(tokens, Token{TokenType: TokenTypeLParen, Pos: pos})
		case ')':
			tokens = append(tokens, Token{TokenType: TokenTypeRParen, Pos: pos})
		case '+':
			tokens = append(tokens, Token{TokenType: TokenTypePlus, Pos: pos})
		case '-':
			tokens = append(tokens, Token{TokenType: TokenTypeMinus, Pos: pos})
		case '*':
			tokens = append(tokens, Token{TokenType: TokenTypeStar, Pos: pos})
		case '/':
			tokens = append(tokens, Token{TokenType: TokenTypeSlash, Pos: pos})
		default:
			if s.strict {
				return nil, &Error{
					Kind: ErrInvalidCharacter,
					Text: string(r),
					Pos:  pos,
				}
			}
			tokens = append(tokens, Token{TokenType: TokenTypeInvalid, Char: r, Pos: pos})
		}
	}

	return tokens, nil
}
