package scene

import (
	"slices"

	"github.com/matzehuels/relpanel/pkg/errors"
	"github.com/matzehuels/relpanel/pkg/geom"
	"github.com/matzehuels/relpanel/pkg/relpanel"
)

// =============================================================================
// Scene - Panel Document
// =============================================================================

// Scene describes one relative panel and its children.
//
// A zero Width or Height sizes the panel to its content along that axis.
type Scene struct {
	Width    float64   `toml:"width" json:"width" bson:"width"`
	Height   float64   `toml:"height" json:"height" bson:"height"`
	Elements []Element `toml:"element" json:"elements" bson:"elements"`
}

// Available returns the size the panel offers its children while measuring:
// the scene size, with auto axes unbounded.
func (s *Scene) Available() geom.Size {
	size := geom.NewSize(s.Width, s.Height)
	if size.Width == 0 {
		size.Width = geom.Inf
	}
	if size.Height == 0 {
		size.Height = geom.Inf
	}
	return size
}

// Clone returns a copy of s that shares no memory with it.
func (s *Scene) Clone() *Scene {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Elements = slices.Clone(s.Elements)
	return &cp
}

// Names returns the element names in document order.
func (s *Scene) Names() []string {
	names := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		names[i] = e.Name
	}
	return names
}

// Validate checks sizes and names. References are checked when the panel is
// built, where unknown names surface as reference errors.
func (s *Scene) Validate() error {
	if err := errors.ValidateSize("panel width", s.Width); err != nil {
		return err
	}
	if err := errors.ValidateSize("panel height", s.Height); err != nil {
		return err
	}
	if len(s.Elements) == 0 {
		return errors.New(errors.ErrCodeInvalidScene, "scene has no elements")
	}
	if len(s.Elements) > errors.MaxElements {
		return errors.New(errors.ErrCodeInvalidScene, "scene has %d elements (max %d)", len(s.Elements), errors.MaxElements)
	}

	seen := make(map[string]bool, len(s.Elements))
	for i := range s.Elements {
		e := &s.Elements[i]
		if err := errors.ValidateElementName(e.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "element %d", i)
		}
		if seen[e.Name] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate element name %q", e.Name)
		}
		seen[e.Name] = true

		if err := e.validateSizes(); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Element - Child Declaration
// =============================================================================

// Element declares one child: its intrinsic size, presentation, and its
// relative constraints. Reference fields hold sibling names.
//
// A zero Width or Height makes the element take whatever its measure rect
// offers along that axis, bounded by the optional minimum and maximum.
type Element struct {
	Name      string  `toml:"name" json:"name" bson:"name"`
	Width     float64 `toml:"width,omitempty" json:"width,omitempty" bson:"width,omitempty"`
	Height    float64 `toml:"height,omitempty" json:"height,omitempty" bson:"height,omitempty"`
	MinWidth  float64 `toml:"min_width,omitempty" json:"min_width,omitempty" bson:"min_width,omitempty"`
	MinHeight float64 `toml:"min_height,omitempty" json:"min_height,omitempty" bson:"min_height,omitempty"`
	MaxWidth  float64 `toml:"max_width,omitempty" json:"max_width,omitempty" bson:"max_width,omitempty"`
	MaxHeight float64 `toml:"max_height,omitempty" json:"max_height,omitempty" bson:"max_height,omitempty"`
	Color     string  `toml:"color,omitempty" json:"color,omitempty" bson:"color,omitempty"`
	Label     string  `toml:"label,omitempty" json:"label,omitempty" bson:"label,omitempty"`

	LeftOf                    string `toml:"left_of,omitempty" json:"left_of,omitempty" bson:"left_of,omitempty"`
	Above                     string `toml:"above,omitempty" json:"above,omitempty" bson:"above,omitempty"`
	RightOf                   string `toml:"right_of,omitempty" json:"right_of,omitempty" bson:"right_of,omitempty"`
	Below                     string `toml:"below,omitempty" json:"below,omitempty" bson:"below,omitempty"`
	AlignHorizontalCenterWith string `toml:"align_horizontal_center_with,omitempty" json:"align_horizontal_center_with,omitempty" bson:"align_horizontal_center_with,omitempty"`
	AlignVerticalCenterWith   string `toml:"align_vertical_center_with,omitempty" json:"align_vertical_center_with,omitempty" bson:"align_vertical_center_with,omitempty"`
	AlignLeftWith             string `toml:"align_left_with,omitempty" json:"align_left_with,omitempty" bson:"align_left_with,omitempty"`
	AlignTopWith              string `toml:"align_top_with,omitempty" json:"align_top_with,omitempty" bson:"align_top_with,omitempty"`
	AlignRightWith            string `toml:"align_right_with,omitempty" json:"align_right_with,omitempty" bson:"align_right_with,omitempty"`
	AlignBottomWith           string `toml:"align_bottom_with,omitempty" json:"align_bottom_with,omitempty" bson:"align_bottom_with,omitempty"`

	AlignLeftWithPanel             bool `toml:"align_left_with_panel,omitempty" json:"align_left_with_panel,omitempty" bson:"align_left_with_panel,omitempty"`
	AlignTopWithPanel              bool `toml:"align_top_with_panel,omitempty" json:"align_top_with_panel,omitempty" bson:"align_top_with_panel,omitempty"`
	AlignRightWithPanel            bool `toml:"align_right_with_panel,omitempty" json:"align_right_with_panel,omitempty" bson:"align_right_with_panel,omitempty"`
	AlignBottomWithPanel           bool `toml:"align_bottom_with_panel,omitempty" json:"align_bottom_with_panel,omitempty" bson:"align_bottom_with_panel,omitempty"`
	AlignHorizontalCenterWithPanel bool `toml:"align_horizontal_center_with_panel,omitempty" json:"align_horizontal_center_with_panel,omitempty" bson:"align_horizontal_center_with_panel,omitempty"`
	AlignVerticalCenterWithPanel   bool `toml:"align_vertical_center_with_panel,omitempty" json:"align_vertical_center_with_panel,omitempty" bson:"align_vertical_center_with_panel,omitempty"`
}

// References returns the sibling names the element declares, keyed by kind.
func (e *Element) References() map[relpanel.Constraint]string {
	refs := map[relpanel.Constraint]string{
		relpanel.LeftOf:                    e.LeftOf,
		relpanel.Above:                     e.Above,
		relpanel.RightOf:                   e.RightOf,
		relpanel.Below:                     e.Below,
		relpanel.AlignHorizontalCenterWith: e.AlignHorizontalCenterWith,
		relpanel.AlignVerticalCenterWith:   e.AlignVerticalCenterWith,
		relpanel.AlignLeftWith:             e.AlignLeftWith,
		relpanel.AlignTopWith:              e.AlignTopWith,
		relpanel.AlignRightWith:            e.AlignRightWith,
		relpanel.AlignBottomWith:           e.AlignBottomWith,
	}
	for k, v := range refs {
		if v == "" {
			delete(refs, k)
		}
	}
	return refs
}

// Constraints converts the declarations into resolver constraints.
func (e *Element) Constraints() relpanel.Constraints {
	var c relpanel.Constraints
	for kind, name := range e.References() {
		c.SetTarget(kind, relpanel.ByName(name))
	}
	c.AlignLeftWithPanel = e.AlignLeftWithPanel
	c.AlignTopWithPanel = e.AlignTopWithPanel
	c.AlignRightWithPanel = e.AlignRightWithPanel
	c.AlignBottomWithPanel = e.AlignBottomWithPanel
	c.AlignHorizontalCenterWithPanel = e.AlignHorizontalCenterWithPanel
	c.AlignVerticalCenterWithPanel = e.AlignVerticalCenterWithPanel
	return c
}

func (e *Element) validateSizes() error {
	dims := []struct {
		what string
		v    float64
	}{
		{"width", e.Width},
		{"height", e.Height},
		{"min_width", e.MinWidth},
		{"min_height", e.MinHeight},
		{"max_width", e.MaxWidth},
		{"max_height", e.MaxHeight},
	}
	for _, d := range dims {
		if err := errors.ValidateSize(d.what, d.v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSize, err, "element %q", e.Name)
		}
	}
	if e.MaxWidth > 0 && e.MinWidth > e.MaxWidth {
		return errors.New(errors.ErrCodeInvalidSize, "element %q: min_width exceeds max_width", e.Name)
	}
	if e.MaxHeight > 0 && e.MinHeight > e.MaxHeight {
		return errors.New(errors.ErrCodeInvalidSize, "element %q: min_height exceeds max_height", e.Name)
	}
	return nil
}
