package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// converter is the librsvg command line tool used for PDF and PNG output.
const converter = "rsvg-convert"

// Formats lists every output format the renderers understand.
var Formats = []string{"svg", "png", "pdf", "json", "dot"}

// IsFormat reports whether f is a known output format.
func IsFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// NeedsConverter reports whether producing format f requires rsvg-convert.
func NeedsConverter(f string) bool { return f == "png" || f == "pdf" }

// ConverterAvailable reports whether rsvg-convert is on PATH.
func ConverterAvailable() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}

// ToPDF converts SVG to PDF.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "-f", "pdf")
}

// ToPNG converts SVG to PNG at the given scale. A non-positive scale means 1.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(svg, "-f", "png", "-z", strconv.FormatFloat(scale, 'f', -1, 64))
}

func convert(svg []byte, args ...string) ([]byte, error) {
	path, err := exec.LookPath(converter)
	if err != nil {
		return nil, fmt.Errorf("%s not found: install librsvg", converter)
	}

	cmd := exec.Command(path, args...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", converter, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", converter, err)
	}
	return stdout.Bytes(), nil
}
