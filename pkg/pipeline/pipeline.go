// Package pipeline provides the solve and render pipeline for relpanel.
//
// This package implements the layout → render pipeline used by the CLI and
// the HTTP API. Keeping it in one place gives both entry points the same
// defaults, the same caching and the same observability events.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: build the constraint graph of a scene, measure and arrange it
//  2. Render: produce outputs from the solved layout (SVG, PNG, PDF, JSON,
//     DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
// Both stages are cached by content: the layout by the scene bytes and
// layout options, artifacts by the layout bytes and render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, s, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Labels:  true,
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	res, err := runner.Layout(ctx, s, opts)
//	artifacts, err := runner.Render(ctx, res, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/relpanel/pkg/cache"
	"github.com/matzehuels/relpanel/pkg/errors"
	"github.com/matzehuels/relpanel/pkg/render"
	"github.com/matzehuels/relpanel/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultPadding is the space drawn around the panel frame in SVG output.
	DefaultPadding = 8.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline. It supports JSON
// serialization for API requests.
type Options struct {
	// Layout options. Non-zero sizes override the scene's panel size.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Refresh skips the layout cache lookup.
	Refresh bool `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Links   bool     `json:"links,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Padding float64  `json:"padding,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the scene that was solved, with size overrides applied.
	Scene *scene.Scene

	// SceneHash is the content hash of Scene.
	SceneHash string

	// Layout is the solved panel.
	Layout *scene.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Elements   int
	Links      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !render.IsFormat(format) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout checks the size overrides.
func (o *Options) ValidateForLayout() error {
	if err := errors.ValidateSize("width", o.Width); err != nil {
		return err
	}
	if err := errors.ValidateSize("height", o.Height); err != nil {
		return err
	}
	o.setLogger()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale cannot be negative")
	}
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Apply returns s with the size overrides applied. s itself is not changed.
func (o *Options) Apply(s *scene.Scene) *scene.Scene {
	if o.Width == 0 && o.Height == 0 {
		return s
	}
	cp := *s
	if o.Width > 0 {
		cp.Width = o.Width
	}
	if o.Height > 0 {
		cp.Height = o.Height
	}
	return &cp
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:  o.Width,
		Height: o.Height,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		Labels: o.Labels,
	}
	switch format {
	case FormatJSON:
		opts.Labels = false
	case FormatDOT:
	default:
		opts.Links = o.Links
		opts.Padding = o.Padding
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
