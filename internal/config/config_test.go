package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Empty(t, cfg.Gemini.APIKey)
	assert.Equal(t, "google/vit-base-patch16-224", cfg.HuggingFace.Model)
	assert.Equal(t, 1200, cfg.Board.Width)
	assert.Equal(t, "#FFFFFF", cfg.Board.Background)
	assert.NotZero(t, cfg.Board.BrushWidth)
	assert.False(t, cfg.Share.Enabled)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key-123")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("HF_API_TOKEN", "hf-456")
	t.Setenv("SKETCHBOARD_WIDTH", "640")
	t.Setenv("SKETCHBOARD_BRUSH_WIDTH", "7.5")
	t.Setenv("SKETCHBOARD_SHARE", "true")
	t.Setenv("SKETCHBOARD_SHARE_PORT", "9100")

	cfg := FromEnv()
	assert.Equal(t, "key-123", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "hf-456", cfg.HuggingFace.Token)
	assert.Equal(t, 640, cfg.Board.Width)
	assert.Equal(t, float32(7.5), cfg.Board.BrushWidth)
	assert.True(t, cfg.Share.Enabled)
	assert.Equal(t, 9100, cfg.Share.Port)
}

func TestFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("SKETCHBOARD_WIDTH", "not-a-number")
	t.Setenv("SKETCHBOARD_BRUSH_WIDTH", "-2")

	cfg := FromEnv()
	assert.Equal(t, Default().Board.Width, cfg.Board.Width)
	assert.Equal(t, Default().Board.BrushWidth, cfg.Board.BrushWidth)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n" +
		"GEMINI_API_KEY=from-file\n" +
		"export HF_API_TOKEN='quoted-token'\n" +
		"HF_MODEL=\"quoted/model\"\n" +
		"\n" +
		"MALFORMED LINE\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// Existing environment wins over the file.
	t.Setenv("HF_MODEL", "env/model")
	t.Setenv("GEMINI_API_KEY", "")
	os.Unsetenv("GEMINI_API_KEY")
	t.Setenv("HF_API_TOKEN", "")
	os.Unsetenv("HF_API_TOKEN")

	require.NoError(t, LoadDotEnv(path))

	assert.Equal(t, "from-file", os.Getenv("GEMINI_API_KEY"))
	assert.Equal(t, "quoted-token", os.Getenv("HF_API_TOKEN"))
	assert.Equal(t, "env/model", os.Getenv("HF_MODEL"))
}

func TestLoadDotEnvMissingFileIsFine(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}
