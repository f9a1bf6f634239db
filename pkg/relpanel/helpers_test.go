package relpanel

import (
	"math"
	"testing"

	"github.com/matzehuels/relpanel/pkg/geom"
)

// box is a fixed-size test element that records every call it receives.
type box struct {
	name string
	w, h float64
	c    Constraints

	measured []geom.Size
	arranged []geom.Rect
}

func newBox(name string, w, h float64) *box {
	return &box{name: name, w: w, h: h}
}

func (b *box) Name() string { return b.name }

func (b *box) Measure(available geom.Size) geom.Size {
	b.measured = append(b.measured, available)
	return geom.Size{Width: math.Min(b.w, available.Width), Height: math.Min(b.h, available.Height)}
}

func (b *box) Arrange(r geom.Rect) { b.arranged = append(b.arranged, r) }

func (b *box) Constraints() Constraints { return b.c }

// rect returns the last arranged rect.
func (b *box) rect(t *testing.T) geom.Rect {
	t.Helper()
	if len(b.arranged) == 0 {
		t.Fatalf("%s was never arranged", b.name)
	}
	return b.arranged[len(b.arranged)-1]
}

func (b *box) with(kind Constraint, target *box) *box {
	b.c.SetTarget(kind, ByName(target.name))
	return b
}

func (b *box) flag(kinds ...Constraint) *box {
	for _, k := range kinds {
		b.c.SetFlag(k, true)
	}
	return b
}

func elements(boxes []*box) ([]Element, map[string]Element) {
	children := make([]Element, len(boxes))
	lookup := make(map[string]Element, len(boxes))
	for i, b := range boxes {
		children[i] = b
		lookup[b.name] = b
	}
	return children, lookup
}

// layout measures and arranges boxes in a panel of the given size.
func layout(t *testing.T, w, h float64, boxes ...*box) *Graph {
	t.Helper()
	children, lookup := elements(boxes)
	g, err := BuildGraph(children, lookup)
	if err != nil {
		t.Fatalf("BuildGraph: %v", err)
	}
	if _, err := g.Measure(geom.NewSize(w, h)); err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if err := g.Arrange(geom.NewRect(0, 0, w, h)); err != nil {
		t.Fatalf("Arrange: %v", err)
	}
	return g
}

func wantRect(t *testing.T, b *box, want geom.Rect) {
	t.Helper()
	if got := b.rect(t); got != want {
		t.Errorf("%s rect = %v, want %v", b.name, got, want)
	}
}
