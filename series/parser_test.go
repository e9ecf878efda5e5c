package series

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labelMap(t *testing.T, selector string) map[string]string {
	ts, err := ParseSelector(selector)
	require.NoError(t, err, selector)
	out := map[string]string{}
	for _, l := range ts.Labels {
		out[l.Name] = l.Value
	}
	return out
}

func TestParseSelector(t *testing.T) {
	assert.Equal(t, map[string]string{NameLabel: "calc_result"}, labelMap(t, "calc_result"))
	assert.Equal(t, map[string]string{NameLabel: "calc_result"}, labelMap(t, "calc_result{}"))
	assert.Equal(t, map[string]string{
		NameLabel: "calc_result",
		"job":     "batch",
		"expr":    "",
	}, labelMap(t, `calc_result{job="batch", expr=""}`))
	assert.Equal(t, map[string]string{
		NameLabel: "a:b",
		"q":       `say "hi" \ now`,
	}, labelMap(t, `a:b{ q = "say \"hi\" \\ now", }`))
}

func TestParseSelectorErrors(t *testing.T) {
	tests := []struct {
		selector string
		col      int
	}{
		{"", 0},
		{"{}", 0},
		{`m{a="b"`, 5},
		{`m{a=b}`, 4},
		{`m{a="b" c="d"}`, 8},
		{`m{__name__="x"}`, 2},
		{`m{a="b`, 4},
		{`m{a="\x"}`, 5},
		{`m{} extra`, 4},
		{`m#`, 1},
	}

	for _, test := range tests {
		_, err := ParseSelector(test.selector)
		require.Error(t, err, test.selector)
		var syntaxErr *SyntaxError
		require.True(t, errors.As(err, &syntaxErr), test.selector)
		assert.Equal(t, test.col, syntaxErr.Col, "%q: %v", test.selector, err)
	}
}
