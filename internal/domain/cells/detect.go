package cells

import (
	"crypto/sha256"
	"encoding/hex"

	m "manimcells.dev/pkg/manimcells/internal/model"
)

// Hash returns the content key used to memoize detections.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Detect runs the full pipeline over text: line annotation, structural scan,
// candidate selection and cell splitting.
func Detect(text string, tabWidth int) *m.Detection {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	lines := SplitLines(text, tabWidth)
	classes := Scan(lines)

	return &m.Detection{
		Hash:       Hash(text),
		TabWidth:   tabWidth,
		Lines:      lines,
		Classes:    classes,
		Candidates: Candidates(classes, lines),
	}
}
