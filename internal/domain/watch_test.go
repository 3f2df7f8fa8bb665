package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manimcells.dev/pkg/manimcells/internal/adapter"
	m "manimcells.dev/pkg/manimcells/internal/model"
)

func TestRenderLayout(t *testing.T) {
	file := m.FileReport{
		Path: "a.py",
		Candidates: []m.CandidateReport{
			{
				Class:  "Intro",
				Method: "construct",
				Line:   2,
				Cells: []m.CellReport{
					{Title: "## One", Line: 3, DisplayEnd: 5},
					{Title: "## Two", Line: 7, DisplayEnd: 7},
				},
			},
			{Class: "Empty", Method: "construct", Indent: 4, Line: 10},
		},
	}

	want := "Intro.construct@0 line 2\n" +
		"  3-5 ## One\n" +
		"  7-7 ## Two\n" +
		"Empty.construct@4 line 10\n"

	assert.Equal(t, want, RenderLayout(file))
	assert.Empty(t, RenderLayout(m.FileReport{}))
}

func TestLayoutDiff(t *testing.T) {
	before := "Intro.construct@0 line 2\n  3-5 ## One\n"
	after := "Intro.construct@0 line 2\n  3-6 ## One\n"

	diff, err := LayoutDiff("a.py", before, before)
	require.NoError(t, err)
	assert.Empty(t, diff)

	diff, err = LayoutDiff("a.py", before, after)
	require.NoError(t, err)
	assert.Contains(t, diff, "--- a.py (before)")
	assert.Contains(t, diff, "+++ a.py (after)")
	assert.Contains(t, diff, "-  3-5 ## One\n")
	assert.Contains(t, diff, "+  3-6 ## One\n")

	diff, err = LayoutDiff("a.py", "", after)
	require.NoError(t, err)
	assert.Contains(t, diff, "+Intro.construct@0 line 2\n")
}

func TestWatchMatcher(t *testing.T) {
	filter, err := adapter.NewPathFilter(nil, []string{`^build/`})
	require.NoError(t, err)

	match := watchMatcher([]m.Path{"/work/scenes"}, filter)

	tests := []struct {
		path string
		want bool
	}{
		{"/work/scenes/intro.py", true},
		{"/work/scenes/deep/outro.py", true},
		{"/work/scenes/notes.txt", false},
		{"/work/scenes/build/gen.py", false},
		{"/work/other/intro.py", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, match(tt.path))
		})
	}
}
