package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/relpanel/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("missing file should yield defaults (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `
[layout]
width = 1024

[render]
format = "svg,png"
labels = true

[cache]
redis_addr = "localhost:6379"

[storage]
mongo_uri = "mongodb://localhost:27017"
database = "layouts"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := DefaultConfig()
	want.Layout.Width = 1024
	want.Render.Format = "svg,png"
	want.Render.Labels = true
	want.Cache.RedisAddr = "localhost:6379"
	want.Storage.MongoURI = "mongodb://localhost:27017"
	want.Storage.Database = "layouts"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"malformed", "[layout\nwidth = 1", errors.ErrCodeInvalidFormat},
		{"unknown key", "[layout]\nwidht = 10\n", errors.ErrCodeInvalidFormat},
		{"unknown section", "[colors]\nbg = \"#fff\"\n", errors.ErrCodeInvalidFormat},
		{"negative width", "[layout]\nwidth = -5\n", errors.ErrCodeInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("LoadConfig() expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}
