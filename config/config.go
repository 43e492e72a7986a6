// Package config loads the JSON configuration file and resolves the LLM API
// key from the environment. A missing key is not an error: the pipeline runs
// in demo mode with the mock client instead.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Config holds everything the CLI and server need.
type Config struct {
	LLM                 *LLMConfig   `json:"llm,omitempty"`
	OutputDir           string       `json:"output_dir,omitempty"`
	HistoryDB           string       `json:"history_db,omitempty"`
	ServerAddr          string       `json:"server_addr,omitempty"`
	SceneCount          int          `json:"scene_count,omitempty"`
	RequestTimeoutSec   int          `json:"request_timeout_sec,omitempty"`
	ExportRetentionDays int          `json:"export_retention_days,omitempty"`
	Render              RenderConfig `json:"render,omitempty"`
}

// LLMConfig selects and authenticates the text-generation provider.
// APIKeyEnv names an environment variable consulted when APIKey is empty.
// Temperature is a pointer so an explicit 0 is distinguishable from unset.
type LLMConfig struct {
	Provider    string   `json:"provider,omitempty"`
	Model       string   `json:"model,omitempty"`
	APIKey      string   `json:"api_key,omitempty"`
	APIKeyEnv   string   `json:"api_key_env,omitempty"`
	BaseURL     string   `json:"base_url,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
}

// RenderConfig controls the encoded output.
type RenderConfig struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
	FPS    int `json:"fps,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		LLM: &LLMConfig{
			Provider:    "groq",
			Model:       "llama-3.3-70b-versatile",
			APIKeyEnv:   "GROQ_API_KEY",
			Temperature: floatPtr(0.7),
			MaxTokens:   1000,
		},
		OutputDir:           "output",
		HistoryDB:           "output/history.db",
		ServerAddr:          ":8080",
		SceneCount:          6,
		RequestTimeoutSec:   30,
		ExportRetentionDays: 7,
		Render:              RenderConfig{Width: 1920, Height: 1080, FPS: 24},
	}
}

// Load reads JSON config from disk and fills unset fields with defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadOrDefault behaves like Load but treats a missing file as the default
// configuration so the tool works out of the box.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.LLM == nil {
		c.LLM = def.LLM
	} else {
		if c.LLM.Provider == "" {
			c.LLM.Provider = def.LLM.Provider
		}
		if c.LLM.Model == "" {
			c.LLM.Model = def.LLM.Model
		}
		if c.LLM.APIKeyEnv == "" && c.LLM.APIKey == "" {
			c.LLM.APIKeyEnv = def.LLM.APIKeyEnv
		}
		if c.LLM.Temperature == nil {
			c.LLM.Temperature = def.LLM.Temperature
		}
		if c.LLM.MaxTokens == 0 {
			c.LLM.MaxTokens = def.LLM.MaxTokens
		}
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.HistoryDB == "" {
		c.HistoryDB = def.HistoryDB
	}
	if c.ServerAddr == "" {
		c.ServerAddr = def.ServerAddr
	}
	if c.SceneCount == 0 {
		c.SceneCount = def.SceneCount
	}
	if c.RequestTimeoutSec == 0 {
		c.RequestTimeoutSec = def.RequestTimeoutSec
	}
	if c.ExportRetentionDays == 0 {
		c.ExportRetentionDays = def.ExportRetentionDays
	}
	if c.Render.Width == 0 {
		c.Render.Width = def.Render.Width
	}
	if c.Render.Height == 0 {
		c.Render.Height = def.Render.Height
	}
	if c.Render.FPS == 0 {
		c.Render.FPS = def.Render.FPS
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

// ResolveAPIKey returns the configured key, consulting the environment when
// only the variable name is set. Empty means demo mode.
func (c *Config) ResolveAPIKey() string {
	if c.LLM == nil {
		return ""
	}
	if c.LLM.APIKey != "" {
		return c.LLM.APIKey
	}
	if c.LLM.APIKeyEnv != "" {
		return os.Getenv(c.LLM.APIKeyEnv)
	}
	return ""
}
