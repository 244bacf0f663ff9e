package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Session.MaxSteps != DefaultSessionMaxSteps {
		t.Errorf("Expected default max steps %d, got %d", DefaultSessionMaxSteps, cfg.Session.MaxSteps)
	}
	if cfg.Session.PageSize != DefaultSessionPageSize {
		t.Errorf("Expected default page size %d, got %d", DefaultSessionPageSize, cfg.Session.PageSize)
	}
	if cfg.Agent.Name != DefaultAgentName {
		t.Errorf("Expected default agent name %s, got %s", DefaultAgentName, cfg.Agent.Name)
	}
	if cfg.Agent.Model != DefaultAgentModel {
		t.Errorf("Expected default model %s, got %s", DefaultAgentModel, cfg.Agent.Model)
	}
	if cfg.Environment.Type != DefaultEnvironmentType {
		t.Errorf("Expected default environment type %s, got %s", DefaultEnvironmentType, cfg.Environment.Type)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Expected default log level %s, got %s", DefaultLogLevel, cfg.Log.Level)
	}
	if cfg.Environment.Path == "" {
		t.Error("Expected environment path to default to the working directory")
	}
}

func TestLoadWithConfigFlag(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := []byte(`
session:
  max_steps: 7
agent:
  model: custom-model
`)
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "config file path")
	if err := cmd.Flags().Set("config", configPath); err != nil {
		t.Fatalf("failed to set config flag: %v", err)
	}

	cfg, err := Load(cmd)
	if err != nil {
		t.Fatalf("failed to load config with --config: %v", err)
	}

	if cfg.Session.MaxSteps != 7 {
		t.Fatalf("expected max steps 7, got %d", cfg.Session.MaxSteps)
	}
	if cfg.Agent.Model != "custom-model" {
		t.Fatalf("expected model custom-model, got %s", cfg.Agent.Model)
	}
}

func TestLoadWithMissingConfigFlagReturnsError(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "config file path")
	if err := cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Fatalf("failed to set config flag: %v", err)
	}

	if _, err := Load(cmd); err == nil {
		t.Fatal("expected error when --config points to missing file")
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RONIN_AGENT_MODEL", "gpt-4o-mini")
	t.Setenv("RONIN_LOG_LEVEL", "debug")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Agent.Model != "gpt-4o-mini" {
		t.Errorf("expected env override gpt-4o-mini, got %s", cfg.Agent.Model)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected env override debug, got %s", cfg.Log.Level)
	}
}

func TestLoadFlagsTakePrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RONIN_SESSION_MAX_STEPS", "5")

	cmd := &cobra.Command{}
	cmd.Flags().Int("session.max_steps", 0, "step bound")
	if err := cmd.Flags().Set("session.max_steps", "3"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	cfg, err := Load(cmd)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Session.MaxSteps != 3 {
		t.Fatalf("expected flag value 3 to win, got %d", cfg.Session.MaxSteps)
	}
}
