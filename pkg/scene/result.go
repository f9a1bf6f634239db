package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/relpanel/pkg/geom"
)

// =============================================================================
// Result - Solved Layout
// =============================================================================

// Result is the serialization format of a solved scene. It is what the
// renderers, the cache and the layout store consume.
type Result struct {
	Width   float64   `json:"width" bson:"width"`
	Height  float64   `json:"height" bson:"height"`
	Desired geom.Size `json:"desired" bson:"desired"`
	Blocks  []Block   `json:"blocks" bson:"blocks"`
	Links   []Link    `json:"links,omitempty" bson:"links,omitempty"`
}

// Size returns the final panel size.
func (r *Result) Size() geom.Size { return geom.NewSize(r.Width, r.Height) }

// Clone returns a copy of r that shares no memory with it.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Blocks = slices.Clone(r.Blocks)
	for i := range cp.Blocks {
		cp.Blocks[i].Constraints = slices.Clone(cp.Blocks[i].Constraints)
	}
	cp.Links = slices.Clone(r.Links)
	return &cp
}

// Block returns the block with the given id.
func (r *Result) Block(id string) (Block, bool) {
	for _, b := range r.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}

// Block is one placed element.
type Block struct {
	ID     string  `json:"id" bson:"id"`
	Label  string  `json:"label,omitempty" bson:"label,omitempty"`
	Color  string  `json:"color,omitempty" bson:"color,omitempty"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	Constraints []string `json:"constraints,omitempty" bson:"constraints,omitempty"`
}

// Rect returns the block's rectangle.
func (b Block) Rect() geom.Rect { return geom.NewRect(b.X, b.Y, b.Width, b.Height) }

// Text returns the label, or the id when no label is set.
func (b Block) Text() string {
	if b.Label != "" {
		return b.Label
	}
	return b.ID
}

// Link is one resolved constraint edge, from the declaring element to its
// target.
type Link struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
	Kind string `json:"kind" bson:"kind"`
}

// =============================================================================
// Result Serialization API
// =============================================================================

// MarshalResult serializes a Result to pretty-printed JSON bytes.
func MarshalResult(r *Result) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// UnmarshalResult deserializes JSON bytes into a Result.
func UnmarshalResult(data []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	if len(r.Blocks) == 0 {
		return nil, fmt.Errorf("result must contain blocks")
	}
	return &r, nil
}

// WriteResult writes a Result as indented JSON.
func WriteResult(r *Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteResultFile writes a Result to a JSON file.
func WriteResultFile(r *Result, path string) error {
	data, err := MarshalResult(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadResultFile reads a Result from a JSON file.
func ReadResultFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalResult(data)
}
