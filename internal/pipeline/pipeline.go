package pipeline

import (
	"fmt"
	"runtime"

	"github.com/gammazero/workerpool"
	log "github.com/sirupsen/logrus"

	"github.com/AnyUserName/blurimg/internal/manifest"
	"github.com/AnyUserName/blurimg/internal/profile"
)

// Config holds all parameters for a build pipeline run.
type Config struct {
	InputDir string
	Profile  profile.Profile
	Workers  int
	// ComponentsX and ComponentsY override the profile when both are > 0.
	ComponentsX int
	ComponentsY int
	// ThumbSize overrides the profile thumbnail size when > 0.
	ThumbSize int
	// Previous is the manifest of an earlier build; unchanged sources are
	// copied from it instead of being re-encoded.
	Previous *manifest.Manifest
}

func (c Config) components(w, h int) (int, int) {
	if c.ComponentsX > 0 && c.ComponentsY > 0 {
		return c.ComponentsX, c.ComponentsY
	}
	return c.Profile.Components(w, h)
}

func (c Config) thumbSize() int {
	if c.ThumbSize > 0 {
		return c.ThumbSize
	}
	return c.Profile.ThumbSize
}

// Pipeline orchestrates placeholder generation.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{cfg: cfg}
}

// Run executes the full build pipeline and returns the manifest.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	log.WithField("count", len(sources)).Debug("found images")

	// Step 2: Process images on the worker pool.  Each task owns one slot
	// of results, so no locking is needed.
	results := make([]processResult, len(sources))
	wp := workerpool.New(p.cfg.Workers)
	for i, src := range sources {
		i, src := i, src
		wp.Submit(func() {
			log.WithField("key", src.Key).Debug("processing")
			results[i] = processImage(src, p.cfg)
		})
	}
	wp.StopWait()

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Profile.Name)

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Entries[r.key] = r.entry
		if r.reused {
			m.Stats.Reused++
		}
	}

	// Report errors but don't fail the entire build for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			log.WithError(e).Error("image failed")
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process", len(errs))
		}
		log.Warnf("%d of %d images had errors", len(errs), len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers:   p.cfg.Workers,
		ThumbSize: p.cfg.thumbSize(),
	}
	m.Stats.Failed = len(errs)
	m.ComputeStats()
	return m, nil
}
