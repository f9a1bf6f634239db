package scene

import (
	"github.com/matzehuels/relpanel/pkg/geom"
	"github.com/matzehuels/relpanel/pkg/relpanel"
)

// Panel is a scene bound to live elements and their dependency graph.
type Panel struct {
	scene *Scene
	boxes []*Box
	graph *relpanel.Graph
}

// Build validates the scene, creates one [Box] per declaration and resolves
// the constraint graph. Reference errors from the resolver are returned
// unchanged.
func Build(s *Scene, opts ...relpanel.Option) (*Panel, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	p := &Panel{scene: s, boxes: make([]*Box, len(s.Elements))}
	children := make([]relpanel.Element, len(s.Elements))
	lookup := make(map[string]relpanel.Element, len(s.Elements))
	for i, spec := range s.Elements {
		b := NewBox(spec)
		p.boxes[i] = b
		children[i] = b
		lookup[spec.Name] = b
	}

	g, err := relpanel.BuildGraph(children, lookup, opts...)
	if err != nil {
		return nil, err
	}
	p.graph = g
	return p, nil
}

// Scene returns the scene the panel was built from.
func (p *Panel) Scene() *Scene { return p.scene }

// Graph returns the underlying dependency graph.
func (p *Panel) Graph() *relpanel.Graph { return p.graph }

// Boxes returns the panel's elements in declaration order.
func (p *Panel) Boxes() []*Box { return p.boxes }

// Measure measures the children against the scene's available size.
func (p *Panel) Measure() (geom.Size, error) {
	return p.graph.Measure(p.scene.Available())
}

// Arrange places the children in final. Auto axes of final take the desired
// size.
func (p *Panel) Arrange(final geom.Rect) error {
	return p.graph.Arrange(final)
}

// Result collects the placed boxes after an arrange pass. size is the final
// panel size.
func (p *Panel) Result(size geom.Size) *Result {
	r := &Result{
		Width:   size.Width,
		Height:  size.Height,
		Desired: p.graph.DesiredSize(),
		Blocks:  make([]Block, len(p.boxes)),
	}
	for i, b := range p.boxes {
		spec := b.Spec()
		rect := b.Rect()
		r.Blocks[i] = Block{
			ID:          spec.Name,
			Label:       spec.Label,
			Color:       spec.Color,
			X:           rect.X,
			Y:           rect.Y,
			Width:       rect.Width,
			Height:      rect.Height,
			Constraints: constraintNames(p.graph.Constraints(i)),
		}
	}
	for _, e := range p.graph.Edges() {
		r.Links = append(r.Links, Link{
			From: p.graph.Name(e.From),
			To:   p.graph.Name(e.To),
			Kind: e.Kind.String(),
		})
	}
	return r
}

// Solve builds, measures and arranges a scene in one call. The panel is
// arranged at the scene size; auto axes take the desired size.
func Solve(s *Scene, opts ...relpanel.Option) (*Result, error) {
	p, err := Build(s, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := p.Measure(); err != nil {
		return nil, err
	}
	final := geom.RectFromSize(s.Available())
	if err := p.Arrange(final); err != nil {
		return nil, err
	}
	return p.Result(finalSize(final.Size(), p.graph.DesiredSize())), nil
}

// finalSize replaces unbounded extents with the desired ones, matching what
// the arrange pass does.
func finalSize(final, desired geom.Size) geom.Size {
	if geom.IsInf(final.Width) {
		final.Width = desired.Width
	}
	if geom.IsInf(final.Height) {
		final.Height = desired.Height
	}
	return final
}

func constraintNames(c relpanel.Constraint) []string {
	var names []string
	for _, k := range append(relpanel.EdgeKinds(), relpanel.PanelKinds()...) {
		if c.Has(k) {
			names = append(names, k.String())
		}
	}
	return names
}
