package cache

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of a solved layout.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the solve options that change a layout. Zero sizes mean
// the scene's own size.
type LayoutKeyOpts struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Labels  bool    `json:"labels,omitempty"`
	Links   bool    `json:"links,omitempty"`
	Scale   float64 `json:"scale,omitempty"`
	Padding float64 `json:"padding,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
