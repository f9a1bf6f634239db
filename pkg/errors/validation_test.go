package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateElementName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "red", false},
		{"with dash", "side-bar", false},
		{"with dot", "header.title", false},
		{"leading underscore", "_hidden", false},
		{"digits", "row2", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"leading digit", "2row", true},
		{"space", "my box", true},
		{"slash", "a/b", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateElementName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateElementName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidScene) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidScene)
			}
		})
	}
}

func TestValidateSize(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 640, false},
		{"fraction", 12.5, false},

		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
		{"too large", MaxPanelSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSize("width", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSize(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSize) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidSize)
			}
		})
	}
}
