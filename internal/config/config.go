package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces environment overrides, e.g. WCA_LOG_LEVEL.
const EnvPrefix = "wca"

type Config struct {
	Transcript Transcript `toml:"transcript"`
	Lexicon    Lexicon    `toml:"lexicon"`
	Advice     Advice     `toml:"advice"`
	Log        Log        `toml:"log"`
}

type Transcript struct {
	DateOrder string `toml:"date_order" split_words:"true" validate:"oneof=auto dmy mdy ymd"`
	Timezone  string `toml:"timezone"   validate:"omitempty,timezone"`
}

type Lexicon struct {
	StopWordsPath       string `toml:"stop_words_path"        split_words:"true"`
	LegacyStopWordMatch bool   `toml:"legacy_stop_word_match" split_words:"true"`
	TopWords            int    `toml:"top_words"              split_words:"true" validate:"min=1,max=200"`
}

// Advice configures the remote advice model. The API key may also come from
// a bare OPENAI_API_KEY.
type Advice struct {
	BaseURL        string  `toml:"base_url"        split_words:"true"        validate:"omitempty,url"`
	Model          string  `toml:"model"           validate:"required"`
	APIKey         string  `toml:"api_key"         envconfig:"OPENAI_API_KEY"`
	TimeoutSeconds int     `toml:"timeout_seconds" split_words:"true"        validate:"min=1,max=600"`
	MaxMessages    int     `toml:"max_messages"    split_words:"true"        validate:"min=1"`
	Temperature    float32 `toml:"temperature"     validate:"min=0,max=2"`
	MaxTokens      int     `toml:"max_tokens"      split_words:"true"        validate:"min=1"`
	Retries        int     `toml:"retries"         validate:"min=0,max=10"`
}

func (a Advice) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

type Log struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `toml:"json"`
}

func Default() *Config {
	return &Config{
		Transcript: Transcript{DateOrder: "auto"},
		Lexicon:    Lexicon{TopWords: 20},
		Advice: Advice{
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 20,
			MaxMessages:    200,
			Temperature:    0.7,
			MaxTokens:      400,
			Retries:        2,
		},
		Log: Log{Level: "warn"},
	}
}

// Path is the default config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wca", "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile layers defaults, the TOML file at path (if present) and WCA_*
// environment variables, then validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	// expand ~ in paths
	if home, err := os.UserHomeDir(); err == nil {
		cfg.Lexicon.StopWordsPath = expandHome(cfg.Lexicon.StopWordsPath, home)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Location resolves the transcript timezone; empty means the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Transcript.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Transcript.Timezone)
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
