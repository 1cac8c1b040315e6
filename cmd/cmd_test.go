package cmd

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/blurimg/internal/config"
	"github.com/AnyUserName/blurimg/internal/manifest"
	"github.com/AnyUserName/blurimg/internal/profile"
)

func validManifest() *manifest.Manifest {
	m := manifest.New("placeholder")
	m.Entries["banner"] = manifest.Entry{
		Source: manifest.SourceInfo{
			Width: 64, Height: 64, Format: "png", Size: 1234, Hash: "0123456789abcdef",
		},
		BlurHash:    "L4TI:j|cfQ|c|cjtfQjtfQfQfQfQ",
		Components:  manifest.Components{X: 4, Y: 3},
		AspectRatio: 1,
		AvgColor:    &[3]uint8{255, 0, 0},
	}
	m.ComputeStats()
	return m
}

func TestValidateManifest(t *testing.T) {
	assert.Empty(t, validateManifest(validManifest()))
}

func TestValidateManifest_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *manifest.Manifest)
	}{
		{"version", func(m *manifest.Manifest) { m.Version = 7 }},
		{"bad hash", func(m *manifest.Manifest) {
			e := m.Entries["banner"]
			e.BlurHash = "L4TI:j|cfQ|c|cjtfQjtfQfQfQf"
			m.Entries["banner"] = e
			m.ComputeStats()
		}},
		{"components", func(m *manifest.Manifest) {
			e := m.Entries["banner"]
			e.Components.Y = 4
			m.Entries["banner"] = e
		}},
		{"avg color", func(m *manifest.Manifest) {
			e := m.Entries["banner"]
			e.AvgColor = &[3]uint8{1, 2, 3}
			m.Entries["banner"] = e
		}},
		{"aspect ratio", func(m *manifest.Manifest) {
			e := m.Entries["banner"]
			e.AspectRatio = 2
			m.Entries["banner"] = e
		}},
		{"dimensions", func(m *manifest.Manifest) {
			e := m.Entries["banner"]
			e.Source.Width = 0
			m.Entries["banner"] = e
		}},
		{"stats", func(m *manifest.Manifest) { m.Stats.TotalEntries = 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validManifest()
			tt.mutate(m)
			assert.NotEmpty(t, validateManifest(m))
		})
	}
}

func TestCheckComponents(t *testing.T) {
	assert.NoError(t, checkComponents(0, 0))
	assert.NoError(t, checkComponents(1, 9))
	assert.Error(t, checkComponents(4, 0))
	assert.Error(t, checkComponents(10, 3))
	assert.Error(t, checkComponents(-1, -1))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KB", formatBytes(1536))
	assert.Equal(t, "2.0 MB", formatBytes(2<<20))
}

func TestTruncKey(t *testing.T) {
	assert.Equal(t, "short", truncKey("short", 10))
	got := truncKey("photos/2024/summer/beach", 12)
	assert.Len(t, got, 12)
	assert.Equal(t, "...mer/beach", got)
}

func TestBuildAndValidate(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 6), G: uint8(y * 12), B: 90, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(in, "wide.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	rootCmd.SetArgs([]string{"build", in, "-o", out, "--compress", "zstd", "-w", "1"})
	require.NoError(t, rootCmd.Execute())

	path, err := manifest.Find(out)
	require.NoError(t, err)
	assert.Equal(t, ".zst", filepath.Ext(path))

	m, err := manifest.Read(path)
	require.NoError(t, err)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, "zstd", m.BuildInfo.Encoding)
	assert.Empty(t, validateManifest(m))

	hash, err := encodeFile(filepath.Join(in, "wide.png"), profile.Get("placeholder"), 64)
	require.NoError(t, err)
	assert.Equal(t, m.Entries["wide"].BlurHash, hash, "encode and build agree")

	rootCmd.SetArgs([]string{"validate", out})
	require.NoError(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"inspect", m.Entries["wide"].BlurHash})
	require.NoError(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"inspect", "not-a-hash"})
	require.Error(t, rootCmd.Execute())
}

func TestEncode_ProfileFromConfig(t *testing.T) {
	t.Cleanup(func() {
		configPath = ""
		config.Config = config.Default()
	})
	dir := t.TempDir()
	cfg := filepath.Join(dir, "blurimg.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[build]\nprofile = \"minimal\"\n"), 0o644))

	img := image.NewNRGBA(image.Rect(0, 0, 30, 10))
	f, err := os.Create(filepath.Join(dir, "strip.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	rootCmd.SetArgs([]string{"encode", "-c", cfg, filepath.Join(dir, "strip.png")})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "minimal", config.Config.Build.Profile)

	assert.Contains(t, encodeCmd.Flags().Lookup("profile").Usage, "detailed, minimal, placeholder")
}
