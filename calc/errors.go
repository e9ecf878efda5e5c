package calc

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCharacter = errors.New("invalid character")
	ErrInvalidNumber    = errors.New("invalid number")
	ErrUnexpectedToken  = errors.New("unexpected token")
	ErrUnexpectedEnd    = errors.New("unexpected end of input")
	ErrNestingTooDeep   = errors.New("expression nested too deeply")
)

// Error is returned by Scan and Parse. Kind is one of the Err* values above
// and is what errors.Is matches against.
type Error struct {
	Kind  error
	Token *Token
	Text  string
	Pos   int
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrInvalidCharacter, ErrInvalidNumber:
		return fmt.Sprintf("%v %q at position %v", e.Kind, e.Text, e.Pos)
	case ErrUnexpectedToken:
		if e.Token != nil {
			return fmt.Sprintf("%v %v at position %v", e.Kind, e.Token, e.Pos)
		}
	case ErrNestingTooDeep:
		return fmt.Sprintf("%v at position %v", e.Kind, e.Pos)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Is reports an unexpected Invalid token as an invalid character too.
func (e *Error) Is(target error) bool {
	if target == ErrInvalidCharacter && e.Kind == ErrUnexpectedToken {
		return e.Token != nil && e.Token.TokenType == TokenTypeInvalid
	}
	return false
}

func unexpected(t *Token) *Error {
	return &Error{
		Kind:  ErrUnexpectedToken,
		Token: t,
		Pos:   t.Pos,
	}
}
