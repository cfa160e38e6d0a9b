// Package assets loads the game's images: one background, one obstacle
// sprite and the player's animation frames. Every image is fetched
// concurrently and the load fails as a whole if any single image fails.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png" // PNG decoder for image.Decode
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/gravity-runner/internal/config"
)

// Manifest names the images to load, relative to a Source.
type Manifest struct {
	Background   string
	Obstacle     string
	PlayerFrames []string
}

// ManifestFromConfig builds a manifest from the assets section of the config.
func ManifestFromConfig(cfg config.AssetsConfig) Manifest {
	return Manifest{
		Background:   cfg.Background,
		Obstacle:     cfg.Obstacle,
		PlayerFrames: cfg.PlayerFrames(),
	}
}

// Set holds the decoded images. PlayerFrames keeps manifest order.
type Set struct {
	Background   image.Image
	Obstacle     image.Image
	PlayerFrames []image.Image
}

// BackgroundSize returns the native background dimensions.
func (s *Set) BackgroundSize() (w, h float64) {
	if s == nil || s.Background == nil {
		return 0, 0
	}
	b := s.Background.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// LoadError reports the asset that broke startup.
type LoadError struct {
	Name     string // Manifest path
	Location string // Resolved path or URL
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("assets: cannot load image %s: %v", e.Location, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader fetches a manifest from a Source.
type Loader struct {
	source Source
	logger *log.Logger
}

// NewLoader creates a loader. A nil logger uses the default logger.
func NewLoader(source Source, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{source: source, logger: logger}
}

// Load fetches and decodes every image in the manifest concurrently.
// It returns only when all images are decoded, or with the first failure.
func (l *Loader) Load(ctx context.Context, m Manifest) (*Set, error) {
	if len(m.PlayerFrames) == 0 {
		return nil, errors.New("assets: manifest has no player frames")
	}

	set := &Set{PlayerFrames: make([]image.Image, len(m.PlayerFrames))}
	g, ctx := errgroup.WithContext(ctx)

	load := func(name string, dst *image.Image) {
		g.Go(func() error {
			img, err := l.fetch(ctx, name)
			if err != nil {
				return err
			}
			*dst = img
			return nil
		})
	}

	load(m.Background, &set.Background)
	load(m.Obstacle, &set.Obstacle)
	for i, name := range m.PlayerFrames {
		load(name, &set.PlayerFrames[i])
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	w, h := set.BackgroundSize()
	l.logger.Debug("assets loaded",
		"source", l.source.Location(""),
		"background", fmt.Sprintf("%.0fx%.0f", w, h),
		"frames", len(set.PlayerFrames),
	)
	return set, nil
}

// fetch opens and decodes a single image.
func (l *Loader) fetch(ctx context.Context, name string) (image.Image, error) {
	loc := l.source.Location(name)

	rc, err := l.source.Open(ctx, name)
	if err != nil {
		return nil, &LoadError{Name: name, Location: loc, Err: err}
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, &LoadError{Name: name, Location: loc, Err: err}
	}
	// Drain so HTTP connections can be reused
	_, _ = io.Copy(io.Discard, rc)

	return img, nil
}
