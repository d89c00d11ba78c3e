package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Config
		wantErr string
	}{
		{name: "empty", input: "", want: DefaultConfig()},
		{
			name:  "partial",
			input: "locations: true\n",
			want:  Config{Locations: true, Format: FormatJSON, Color: true},
		},
		{
			name:  "full",
			input: "locations: true\nformat: yaml\ncolor: false\ndebug: true\n",
			want:  Config{Locations: true, Format: FormatYAML, Color: false, Debug: true},
		},
		{name: "unknown key", input: "colour: false\n", wantErr: "field colour not found"},
		{name: "bad format", input: "format: xml\n", wantErr: `unknown output format "xml"`},
		{name: "bad type", input: "locations: maybe\n", wantErr: "cannot unmarshal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeConfig(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("format: pretty\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, FormatPretty, cfg.Format)
	assert.True(t, cfg.Color)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("nope: 1\n"), 0o644))
	_, err = LoadConfig(bad)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), bad+": "), err.Error())

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.True(t, os.IsNotExist(err))
}
