package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arith/calc"
)

func scan(t *testing.T, input string) calc.TokenList {
	tokens, err := calc.NewScanner().Scan(input)
	require.NoError(t, err, input)
	return tokens
}

func TestSource(t *testing.T) {
	tests := map[string]string{
		"1+2":      "1 + 2",
		"+5":       "5",
		"--5":      "- - 5",
		"2*+3":     "2 * 3",
		"(+1)+(2)": "( 1 ) + ( 2 )",
	}
	for input, want := range tests {
		got, err := Source(scan(t, input))
		require.NoError(t, err)
		assert.Equal(t, want, got, input)
	}

	_, err := Source(scan(t, "2#3"))
	assert.Error(t, err)
}

func TestAgreesWithCalc(t *testing.T) {
	l := New()
	for _, input := range []string{
		"10-3-2",
		"100/5/2",
		"2+3*4",
		"(2+3)*4",
		"--5",
		"-5+3",
		"1.5*(2-.25)/3",
		"-(7-(3-(2-1)))*+2",
		"2+",
		"2+3)",
		"()",
		"",
	} {
		tokens := scan(t, input)
		got, err := calc.Evaluate(tokens)
		assert.Nil(t, l.Check(tokens, got, err), input)
	}
}

func TestCheckReportsMismatch(t *testing.T) {
	l := New()
	tokens := scan(t, "1+1")
	m := l.Check(tokens, 3, nil)
	require.NotNil(t, m)
	assert.Equal(t, 2.0, m.Lua)
	assert.Equal(t, `"1 + 1": calc=3 lua=2`, m.String())
}

func TestEvalNoValue(t *testing.T) {
	_, err := New().Eval(nil)
	assert.Error(t, err)
}
