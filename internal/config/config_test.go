package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves the test into an empty directory so no .env file is picked up.
func chdir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"BBY_LOG_LEVEL", "BBY_LOG_FILE", "BBY_UI", "BBY_TYPING_DELAY",
		"BBY_WRAP_WIDTH", "GEMINI_API_KEY", "GEMINI_MODEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t)
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, &Config{
		LogLevel:    "info",
		UI:          UIPlain,
		TypingDelay: 15 * time.Millisecond,
		WrapWidth:   80,
		GeminiModel: "gemini-2.5-flash",
	}, cfg)
}

func TestLoadConfigFromEnv(t *testing.T) {
	chdir(t)
	clearEnv(t)
	t.Setenv("BBY_LOG_LEVEL", "debug")
	t.Setenv("BBY_LOG_FILE", "/tmp/bby.log")
	t.Setenv("BBY_UI", "TUI")
	t.Setenv("BBY_TYPING_DELAY", "0")
	t.Setenv("BBY_WRAP_WIDTH", "0")
	t.Setenv("GEMINI_API_KEY", "abc")
	t.Setenv("GEMINI_MODEL", "gemini-pro")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, &Config{
		LogLevel:     "debug",
		LogFile:      "/tmp/bby.log",
		UI:           UITUI,
		TypingDelay:  0,
		WrapWidth:    0,
		GeminiAPIKey: "abc",
		GeminiModel:  "gemini-pro",
	}, cfg)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)
	require.NoError(t, os.Unsetenv("BBY_UI"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BBY_UI=tui\nBBY_WRAP_WIDTH=60\n"), 0o644))
	t.Setenv("BBY_WRAP_WIDTH", "100")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, UITUI, cfg.UI)
	assert.Equal(t, 100, cfg.WrapWidth)
}

func TestLoadConfigInvalid(t *testing.T) {
	chdir(t)
	clearEnv(t)
	t.Setenv("BBY_TYPING_DELAY", "soon")
	t.Setenv("BBY_WRAP_WIDTH", "wide")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.ErrorContains(t, err, "parsing BBY_TYPING_DELAY")
	assert.ErrorContains(t, err, "parsing BBY_WRAP_WIDTH")
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		cfg     Config
		expErrs []string
	}{
		"valid": {
			cfg: Config{LogLevel: "warn", UI: UIPlain},
		},
		"bad level": {
			cfg:     Config{LogLevel: "loud", UI: UIPlain},
			expErrs: []string{"BBY_LOG_LEVEL"},
		},
		"bad ui": {
			cfg:     Config{LogLevel: "info", UI: "gui"},
			expErrs: []string{`BBY_UI must be "plain" or "tui", got "gui"`},
		},
		"negative numbers": {
			cfg:     Config{LogLevel: "info", UI: UITUI, TypingDelay: -time.Second, WrapWidth: -1},
			expErrs: []string{"BBY_TYPING_DELAY must not be negative", "BBY_WRAP_WIDTH must not be negative"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.expErrs) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, e := range tt.expErrs {
				assert.ErrorContains(t, err, e)
			}
		})
	}
}
