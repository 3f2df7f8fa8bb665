package domain

import (
	"fmt"
	"log/slog"

	"github.com/maypok86/otter"

	"manimcells.dev/pkg/manimcells/internal/domain/cells"
	m "manimcells.dev/pkg/manimcells/internal/model"
)

// DefaultCacheSize bounds the number of memoized detections.
const DefaultCacheSize = 64

// Detector turns source text into a cell layout.
type Detector interface {
	Detect(text string) *m.Detection
	Close()
}

type detector struct {
	tabWidth int
	cache    *otter.Cache[string, *m.Detection]
}

// NewDetector constructs a Detector that memoizes results by content hash.
// A non-positive cacheSize disables memoization.
func NewDetector(tabWidth, cacheSize int) (Detector, error) {
	d := &detector{tabWidth: tabWidth}

	if cacheSize <= 0 {
		return d, nil
	}

	cache, err := otter.MustBuilder[string, *m.Detection](cacheSize).Build()
	if err != nil {
		return nil, fmt.Errorf("build detection cache: %w", err)
	}

	d.cache = &cache

	return d, nil
}

func (d *detector) Detect(text string) *m.Detection {
	if d.cache == nil {
		return cells.Detect(text, d.tabWidth)
	}

	key := cells.Hash(text)
	if cached, ok := d.cache.Get(key); ok {
		slog.Debug("Detection cache hit", "hash", key)
		return cached
	}

	detection := cells.Detect(text, d.tabWidth)
	d.cache.Set(key, detection)

	return detection
}

func (d *detector) Close() {
	if d.cache != nil {
		d.cache.Close()
	}
}
