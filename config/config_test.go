package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeConfig(t, `{"llm": {"provider": "openai", "model": "gpt-4o-mini"}}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("explicit llm settings lost: %+v", cfg.LLM)
	}
	if cfg.SceneCount != 6 {
		t.Errorf("SceneCount = %d, want default 6", cfg.SceneCount)
	}
	if cfg.OutputDir != "output" || cfg.ServerAddr != ":8080" {
		t.Errorf("output defaults not applied: %+v", cfg)
	}
	if cfg.Render.Width != 1920 || cfg.Render.FPS != 24 {
		t.Errorf("render defaults not applied: %+v", cfg.Render)
	}
	if cfg.LLM.Temperature == nil || *cfg.LLM.Temperature != 0.7 || cfg.LLM.MaxTokens != 1000 {
		t.Errorf("llm defaults not applied: %+v", cfg.LLM)
	}
}

func TestLoadKeepsZeroTemperature(t *testing.T) {
	path := writeConfig(t, `{"llm": {"temperature": 0}}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Temperature == nil || *cfg.LLM.Temperature != 0 {
		t.Errorf("explicit temperature 0 overridden: %+v", cfg.LLM.Temperature)
	}
}

func TestLoadKeepsPartialRenderConfig(t *testing.T) {
	path := writeConfig(t, `{"render": {"height": 720}}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Height != 720 {
		t.Errorf("explicit height lost: %+v", cfg.Render)
	}
	if cfg.Render.Width != 1920 || cfg.Render.FPS != 24 {
		t.Errorf("unset render fields should default individually: %+v", cfg.Render)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.LLM == nil || cfg.LLM.Provider != "groq" {
		t.Errorf("expected default groq provider, got %+v", cfg.LLM)
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolveAPIKey(t *testing.T) {
	t.Run("inline key wins", func(t *testing.T) {
		cfg := Config{LLM: &LLMConfig{APIKey: "inline", APIKeyEnv: "UNSET_TEST_VAR"}}
		if got := cfg.ResolveAPIKey(); got != "inline" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("env var consulted", func(t *testing.T) {
		t.Setenv("VIDEO_GEN_TEST_KEY", "from-env")
		cfg := Config{LLM: &LLMConfig{APIKeyEnv: "VIDEO_GEN_TEST_KEY"}}
		if got := cfg.ResolveAPIKey(); got != "from-env" {
			t.Errorf("got %q", got)
		}
	})
	t.Run("missing key means demo mode", func(t *testing.T) {
		cfg := Config{LLM: &LLMConfig{APIKeyEnv: "DEFINITELY_UNSET_VAR_42"}}
		if got := cfg.ResolveAPIKey(); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}
