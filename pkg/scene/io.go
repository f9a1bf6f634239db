package scene

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/relpanel/pkg/errors"
)

// =============================================================================
// Scene Serialization API
// =============================================================================

// Format names a scene encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf infers the encoding from a file extension. Unknown extensions
// are read as TOML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTOML
}

// ReadTOML decodes a scene from TOML. Keys that do not map to a field are
// rejected so that typos in constraint names do not pass silently.
func ReadTOML(r io.Reader) (*Scene, error) {
	var s Scene
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml scene")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidScene, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return &s, nil
}

// ReadJSON decodes a scene from JSON, rejecting unknown fields.
func ReadJSON(r io.Reader) (*Scene, error) {
	var s Scene
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json scene")
	}
	return &s, nil
}

// Read decodes a scene in the given format.
func Read(r io.Reader, f Format) (*Scene, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML, "":
		return ReadTOML(r)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported scene format %q", f)
	}
}

// Parse decodes a scene from bytes in the given format.
func Parse(data []byte, f Format) (*Scene, error) {
	return Read(bytes.NewReader(data), f)
}

// ReadFile reads a scene file, picking the decoder by extension.
func ReadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, FormatOf(path))
}

// Write encodes a scene in the given format.
func Write(s *Scene, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatTOML, "":
		return toml.NewEncoder(w).Encode(s)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported scene format %q", f)
	}
}

// Marshal encodes a scene to bytes in the given format.
func Marshal(s *Scene, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(s, &buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes a scene, picking the encoder by extension.
func WriteFile(s *Scene, path string) error {
	data, err := Marshal(s, FormatOf(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
