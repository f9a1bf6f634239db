package relpanel_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/relpanel/pkg/geom"
	"github.com/matzehuels/relpanel/pkg/relpanel"
)

// block is a fixed-size element that remembers where it was placed.
type block struct {
	size geom.Size
	c    relpanel.Constraints
	rect geom.Rect
}

func (b *block) Measure(geom.Size) geom.Size       { return b.size }
func (b *block) Arrange(r geom.Rect)               { b.rect = r }
func (b *block) Constraints() relpanel.Constraints { return b.c }

func ExampleLayout() {
	blue := &block{size: geom.NewSize(150, 100)}
	blue.c.AlignRightWithPanel = true

	red := &block{size: geom.NewSize(150, 100)}
	red.c.LeftOf = relpanel.ByName("blue")

	children := []relpanel.Element{blue, red}
	lookup := map[string]relpanel.Element{"blue": blue, "red": red}

	desired, err := relpanel.Layout(children, lookup, geom.NewSize(400, 300), geom.NewRect(0, 0, 400, 300))
	if err != nil {
		panic(err)
	}

	fmt.Println("desired:", desired)
	fmt.Println("blue:", blue.rect)
	fmt.Println("red:", red.rect)
	// Output:
	// desired: 300x100
	// blue: (250,0 150x100)
	// red: (100,0 150x100)
}

func ExampleGraph_Arrange() {
	// Measure with an unbounded width, then arrange at the desired width.
	header := &block{size: geom.NewSize(200, 40)}
	header.c.AlignHorizontalCenterWithPanel = true

	body := &block{size: geom.NewSize(120, 80)}
	body.c.Below = relpanel.To(header)
	body.c.AlignLeftWith = relpanel.To(header)

	g, err := relpanel.BuildGraph([]relpanel.Element{header, body}, nil)
	if err != nil {
		panic(err)
	}
	desired, _ := g.Measure(geom.NewSize(geom.Inf, 300))
	_ = g.Arrange(geom.NewRect(0, 0, desired.Width, 300))

	fmt.Println("desired:", desired)
	fmt.Println("header:", header.rect)
	fmt.Println("body:", body.rect)
	// Output:
	// desired: 200x120
	// header: (0,0 200x40)
	// body: (0,40 120x80)
}

func ExampleCircularDependencyError() {
	a := &block{size: geom.NewSize(10, 10)}
	b := &block{size: geom.NewSize(10, 10)}
	a.c.RightOf = relpanel.ByName("b")
	b.c.RightOf = relpanel.ByName("a")

	lookup := map[string]relpanel.Element{"a": a, "b": b}
	_, err := relpanel.Layout([]relpanel.Element{a, b}, lookup, geom.NewSize(100, 100), geom.NewRect(0, 0, 100, 100))

	var cerr *relpanel.CircularDependencyError
	fmt.Println(errors.As(err, &cerr))
	fmt.Println(err)
	// Output:
	// true
	// circular dependency detected: a -> b -> a
}
