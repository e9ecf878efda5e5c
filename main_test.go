package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalLines(t *testing.T) {
	in := strings.NewReader("10-3-2\n2+\n1.2.3\n1/0\n\n")
	out := &bytes.Buffer{}
	require.NoError(t, evalLines(in, out))

	assert.Equal(t, "5\n"+
		"error: unexpected end of input\n"+
		"error: invalid number \"1.2.3\" at position 0\n"+
		"+Inf\n"+
		"error: unexpected end of input\n", out.String())
}
