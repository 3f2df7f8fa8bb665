package cells

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndentWidth(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		tabWidth int
		expected int
	}{
		{"no indent", "x = 1", 8, 0},
		{"spaces", "    x = 1", 8, 4},
		{"single tab", "\tx = 1", 8, 8},
		{"spaces then tab", "  \tx", 8, 8},
		{"tab then spaces", "\t  x", 8, 10},
		{"narrow tab stops", "  \tx", 4, 4},
		{"form feed resets", "    \f  x", 8, 2},
		{"whitespace only", "      ", 8, 6},
		{"non positive width falls back", "\tx", 0, DefaultTabWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IndentWidth(tt.text, tt.tabWidth))
		})
	}
}

func TestSplitLines_Continuations(t *testing.T) {
	src := "x = foo(\n" +
		"    1,\n" +
		")\n" +
		"s = \"\"\"\n" +
		"## inside\n" +
		"\"\"\"\n" +
		"y = 1 \\\n" +
		"    + 2\n" +
		"z = 3"

	lines := SplitLines(src, 8)
	require.Len(t, lines, 9)

	type flags struct {
		continuation bool
		inString     bool
	}

	expected := []flags{
		{false, false},
		{true, false},
		{true, false},
		{false, false},
		{true, true},
		{true, true},
		{false, false},
		{true, false},
		{false, false},
	}

	for i, want := range expected {
		assert.Equal(t, want.continuation, lines[i].Continuation, "line %d continuation", i)
		assert.Equal(t, want.inString, lines[i].InString, "line %d in string", i)
		assert.Equal(t, i, lines[i].Index)
	}
}

func TestSplitLines_CRLFAndBlank(t *testing.T) {
	lines := SplitLines("class A(B):\r\n\r\n    pass\r\n", 8)
	require.Len(t, lines, 4)

	assert.Equal(t, "class A(B):", lines[0].Text)
	assert.True(t, lines[1].Blank)
	assert.Equal(t, 4, lines[2].Indent)
	assert.True(t, lines[3].Blank)
}

func TestSplitLines_UnterminatedQuoteEndsWithLine(t *testing.T) {
	lines := SplitLines("s = 'abc\nt = 1\n", 8)

	assert.False(t, lines[1].Continuation)
	assert.False(t, lines[1].InString)
}

func TestSplitLines_UnclosedBracketRecoversAtHeader(t *testing.T) {
	src := "x = foo(\n" +
		"    1,\n" +
		"class A(B):\n" +
		"    def construct(self):\n" +
		"        pass\n"

	lines := SplitLines(src, 8)

	assert.True(t, lines[1].Continuation)
	assert.False(t, lines[2].Continuation)
	assert.False(t, lines[3].Continuation)
	assert.False(t, lines[4].Continuation)
}

func TestSplitLines_CommentsDoNotOpenBrackets(t *testing.T) {
	lines := SplitLines("x = 1  # (\ny = 2\n", 8)

	assert.False(t, lines[1].Continuation)
}

func TestStripComment(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"class A(B):  # note", "class A(B):  "},
		{`x = "# not a comment"`, `x = "# not a comment"`},
		{`x = 'it\'s' # c`, `x = 'it\'s' `},
		{"# only", ""},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripComment(tt.text))
		})
	}
}

func TestLogicalText(t *testing.T) {
	lines := SplitLines("class A(  # first\n    B,  # second\n):\n", 8)

	end := logicalEnd(lines, 0)
	require.Equal(t, 2, end)

	assert.Equal(t, "class A(       B,   ):", logicalText(lines, 0, end))
}
