package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrependToLines(t *testing.T) {
	require.Equal(t, "// a\n//\n// b", PrependToLines("a\n\nb", "// "))
	require.Equal(t, "", PrependToLines("", "// "))
	require.Equal(t, "\tx == 1\n\treturn 1", Indent("x == 1\nreturn 1"))
}

func TestLinesOfCode(t *testing.T) {
	src := "// header\n\ncontract A {\n\t// note\n\tuint x;\n}\n"
	require.Equal(t, 3, LinesOfCode(src))
}

func TestReplaceLast(t *testing.T) {
	s, ok := ReplaceLast("a\n}\nb\n}", "\n}", "\nX\n}")
	require.True(t, ok)
	require.Equal(t, "a\n}\nb\nX\n}", s)

	s, ok = ReplaceLast("abc", "z", "y")
	require.False(t, ok)
	require.Equal(t, "abc", s)
}
