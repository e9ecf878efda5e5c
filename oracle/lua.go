// Package oracle evaluates token lists with an embedded Lua interpreter so
// calc results can be checked against an independent implementation.
package oracle

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Shopify/go-lua"

	"arith/calc"
)

var ErrNoValue = errors.New("lua: expression produced no number")

// Lua is not safe for concurrent use.
type Lua struct {
	state *lua.State
}

func New() *Lua {
	return &Lua{state: lua.NewState()}
}

// Source renders tokens as a Lua expression. Lua has no unary plus, so it
// is dropped; tokens are space separated so "- -" never opens a comment.
func Source(tokens calc.TokenList) (string, error) {
	parts := make([]string, 0, len(tokens))
	var prev *calc.Token
	for i := range tokens {
		t := &tokens[i]
		switch t.TokenType {
		case calc.TokenTypeInvalid:
			return "", fmt.Errorf("lua: cannot render %v", t)
		case calc.TokenTypePlus:
			if prev == nil || operandExpected(prev) {
				prev = t
				continue
			}
		}
		parts = append(parts, t.String())
		prev = t
	}
	return strings.Join(parts, " "), nil
}

func operandExpected(t *calc.Token) bool {
	switch t.TokenType {
	case calc.TokenTypeNumber, calc.TokenTypeRParen:
		return false
	}
	return true
}

func (l *Lua) Eval(tokens calc.TokenList) (float64, error) {
	src, err := Source(tokens)
	if err != nil {
		return 0, err
	}

	// empty stack
	defer l.state.SetTop(0)
	if err := lua.DoString(l.state, "return "+src); err != nil {
		return 0, err
	}
	if l.state.Top() == 0 {
		return 0, ErrNoValue
	}
	value, ok := l.state.ToNumber(-1)
	if !ok {
		return 0, ErrNoValue
	}
	return value, nil
}

// Mismatch describes a disagreement between calc and Lua.
type Mismatch struct {
	Expression string
	Calc       float64
	CalcErr    error
	Lua        float64
	LuaErr     error
}

func (m *Mismatch) String() string {
	format := func(v float64, err error) string {
		if err != nil {
			return err.Error()
		}
		return fmt.Sprint(v)
	}
	return fmt.Sprintf("%q: calc=%v lua=%v", m.Expression, format(m.Calc, m.CalcErr), format(m.Lua, m.LuaErr))
}

// Check returns nil when Lua agrees with the calc outcome: both fail, or
// both produce the same number (NaN matches NaN).
func (l *Lua) Check(tokens calc.TokenList, got float64, gotErr error) *Mismatch {
	want, wantErr := l.Eval(tokens)
	if gotErr != nil && wantErr != nil {
		return nil
	}
	if gotErr == nil && wantErr == nil {
		if got == want || (math.IsNaN(got) && math.IsNaN(want)) {
			return nil
		}
	}
	return &Mismatch{
		Expression: tokens.String(),
		Calc:       got,
		CalcErr:    gotErr,
		Lua:        want,
		LuaErr:     wantErr,
	}
}
