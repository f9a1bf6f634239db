package relpanel

import (
	"errors"
	"fmt"
	"testing"
	"time"

	apperr "github.com/matzehuels/relpanel/pkg/errors"
	"github.com/matzehuels/relpanel/pkg/geom"
)

// interlockedChain builds n boxes where box k aligns its left edge with box
// k-1 and its right edge with box k-2. Every box forks the desired size walk
// in two directions.
func interlockedChain(n int) []*box {
	boxes := make([]*box, n)
	for k := range boxes {
		boxes[k] = newBox(fmt.Sprintf("n%d", k), 10, 10)
		if k >= 1 {
			boxes[k].with(AlignLeftWith, boxes[k-1])
		}
		if k >= 2 {
			boxes[k].with(AlignRightWith, boxes[k-2])
		}
	}
	return boxes
}

func TestMeasure_TooComplex(t *testing.T) {
	boxes := interlockedChain(40)
	children, lookup := elements(boxes)
	g, err := BuildGraph(children, lookup)
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	_, err = g.Measure(geom.Unbounded())
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Measure took %v", elapsed)
	}

	if !errors.Is(err, ErrLayoutTooComplex) {
		t.Fatalf("err = %v, want ErrLayoutTooComplex", err)
	}
	var ce *ComplexityError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %T, want *ComplexityError", err)
	}
	if ce.Axis != Horizontal || ce.Budget != DefaultWalkBudget {
		t.Errorf("ComplexityError = %+v", ce)
	}
	if got := apperr.GetCode(err); got != apperr.ErrCodeLayoutTooComplex {
		t.Errorf("code = %q, want %q", got, apperr.ErrCodeLayoutTooComplex)
	}

	if err := g.Arrange(geom.NewRect(0, 0, 100, 100)); !errors.Is(err, ErrLayoutTooComplex) {
		t.Fatalf("Arrange err = %v", err)
	}
	for _, b := range boxes {
		if len(b.arranged) != 0 {
			t.Fatalf("%s was arranged after a failed measure", b.name)
		}
	}
}

func TestMeasure_WalkBudget(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{name: "default budget", opts: nil},
		{name: "tight budget", opts: []Option{WithWalkBudget(10)}, wantErr: true},
		{name: "zero keeps default", opts: []Option{WithWalkBudget(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			children, lookup := elements(interlockedChain(6))
			g, err := BuildGraph(children, lookup, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			desired, err := g.Measure(geom.Unbounded())
			if tt.wantErr {
				if !errors.Is(err, ErrLayoutTooComplex) {
					t.Fatalf("err = %v, want ErrLayoutTooComplex", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if desired.Height != 10 {
				t.Errorf("desired height = %v, want 10", desired.Height)
			}
		})
	}
}
