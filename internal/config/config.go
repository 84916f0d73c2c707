// Package config assembles application settings from defaults, an optional
// .env file and the process environment. Environment names follow the
// conventional AI-provider variables plus a SKETCHBOARD_ prefix for
// app-local settings.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Gemini holds Google Gemini critique settings.
type Gemini struct {
	APIKey string
	Model  string
}

// HuggingFace holds Hugging Face inference API settings.
type HuggingFace struct {
	Token string
	Model string
}

// Board holds canvas geometry and brush defaults.
type Board struct {
	Width      int
	Height     int
	Background string
	BrushColor string
	BrushWidth float32
}

// Share holds the read-only LAN spectator feed settings.
type Share struct {
	Enabled bool
	Port    int
}

type Config struct {
	Gemini      Gemini
	HuggingFace HuggingFace
	Board       Board
	Share       Share
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Gemini:      Gemini{Model: "gemini-1.5-flash"},
		HuggingFace: HuggingFace{Model: "google/vit-base-patch16-224"},
		Board: Board{
			Width:      1200,
			Height:     800,
			Background: "#FFFFFF",
			BrushColor: "#000000",
			BrushWidth: 4,
		},
		Share: Share{Port: 8888},
	}
}

// FromEnv layers environment overrides over the defaults.
func FromEnv() Config {
	cfg := Default()

	setString(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "GEMINI_MODEL")
	setString(&cfg.HuggingFace.Token, "HF_API_TOKEN")
	setString(&cfg.HuggingFace.Model, "HF_MODEL")
	setString(&cfg.Board.Background, "SKETCHBOARD_BACKGROUND")
	setString(&cfg.Board.BrushColor, "SKETCHBOARD_BRUSH_COLOR")
	setInt(&cfg.Board.Width, "SKETCHBOARD_WIDTH")
	setInt(&cfg.Board.Height, "SKETCHBOARD_HEIGHT")
	setFloat32(&cfg.Board.BrushWidth, "SKETCHBOARD_BRUSH_WIDTH")
	setBool(&cfg.Share.Enabled, "SKETCHBOARD_SHARE")
	setInt(&cfg.Share.Port, "SKETCHBOARD_SHARE_PORT")

	return cfg
}

// Load reads a .env file next to the binary if one exists, then builds the
// config from the environment.
func Load() Config {
	_ = LoadDotEnv(".env")
	return FromEnv()
}

// LoadDotEnv reads KEY=VALUE lines and exports any key not already present
// in the environment. A missing file is not an error. Lines starting with
// '#' and blank lines are skipped; values may be single- or double-quoted.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		if key == "" {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("config: set %s: %w", key, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = n
		}
	}
}

func setFloat32(dst *float32, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			*dst = float32(f)
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
