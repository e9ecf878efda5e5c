package calc

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	TokenTypeNumber = iota
	TokenTypeLParen
	TokenTypeRParen
	TokenTypePlus
	TokenTypeMinus
	TokenTypeStar
	TokenTypeSlash
	TokenTypeInvalid
)

var TokenMapping = map[TokenType]string{
	TokenTypeNumber:  "<number>",
	TokenTypeLParen:  "(",
	TokenTypeRParen:  ")",
	TokenTypePlus:    "+",
	TokenTypeMinus:   "-",
	TokenTypeStar:    "*",
	TokenTypeSlash:   "/",
	TokenTypeInvalid: "<invalid>",
}

type TokenType int

func (t TokenType) String() string {
	if s, ok := TokenMapping[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a single lexical unit. FloatVal is set for numbers, Char for
// invalid characters. Pos is the rune offset in the scanned line.
type Token struct {
	TokenType TokenType
	FloatVal  float64
	Char      rune
	Pos       int
}

func (t Token) String() string {
	switch t.TokenType {
	case TokenTypeNumber:
		return strconv.FormatFloat(t.FloatVal, 'f', -1, 64)
	case TokenTypeInvalid:
		return fmt.Sprintf("Invalid(%c)", t.Char)
	default:
		return t.TokenType.String()
	}
}

// Equal compares type and payload, ignoring the position.
func (t Token) Equal(o Token) bool {
	if t.TokenType != o.TokenType {
		return false
	}
	switch t.TokenType {
	case TokenTypeNumber:
		return t.FloatVal == o.FloatVal
	case TokenTypeInvalid:
		return t.Char == o.Char
	}
	return true
}

type TokenList []Token

func (in TokenList) at(index int) *Token {
	if index < len(in) {
		return &in[index]
	}
	return nil
}

func (in TokenList) String() string {
	parts := make([]string, 0, len(in))
	for _, t := range in {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, " ")
}

func (in TokenList) Equal(o TokenList) bool {
	if len(in) != len(o) {
		return false
	}
	for i := range in {
		if !in[i].Equal(o[i]) {
			return false
		}
	}
	return true
}
