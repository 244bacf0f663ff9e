package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

type Config struct {
	Session     SessionConfig     `koanf:"session"`
	Agent       AgentConfig       `koanf:"agent"`
	Environment EnvironmentConfig `koanf:"environment"`
	Workspace   WorkspaceConfig   `koanf:"workspace"`
	Log         LogConfig         `koanf:"log"`
}

type SessionConfig struct {
	MaxSteps int `koanf:"max_steps"`
	PageSize int `koanf:"page_size"`
}

type AgentConfig struct {
	Name        string  `koanf:"name"`
	Model       string  `koanf:"model"`
	Temperature float32 `koanf:"temperature"`
	APIKey      string  `koanf:"api_key"`
	BaseURL     string  `koanf:"base_url"`
}

type EnvironmentConfig struct {
	Type string `koanf:"type"`
	Path string `koanf:"path"`
}

type WorkspaceConfig struct {
	Path string `koanf:"path"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

const (
	DefaultSessionMaxSteps   = 100
	DefaultSessionPageSize   = 200
	DefaultAgentName         = "ronin"
	DefaultAgentModel        = "gpt-4o"
	DefaultAgentTemperature  = 0.0
	DefaultEnvironmentType   = "local"
	DefaultLogLevel          = "info"
	DefaultOpenAIBaseURL     = "https://api.openai.com/v1"
)

// Load merges hardcoded defaults, an optional YAML file, RONIN_-prefixed
// environment variables, and the command's flags, in that precedence order.
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"session.max_steps": DefaultSessionMaxSteps,
		"session.page_size": DefaultSessionPageSize,
		"agent.name":        DefaultAgentName,
		"agent.model":       DefaultAgentModel,
		"agent.temperature": DefaultAgentTemperature,
		"agent.base_url":    DefaultOpenAIBaseURL,
		"environment.type":  DefaultEnvironmentType,
		"environment.path":  "",
		"workspace.path":    filepath.Join(os.Getenv("HOME"), ".ronin", "workspace"),
		"log.level":         DefaultLogLevel,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	configPath := ""
	if cmd != nil {
		if flag := cmd.Flags().Lookup("config"); flag != nil {
			configPath = strings.TrimSpace(flag.Value.String())
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, err
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			globalPath := filepath.Join(home, ".ronin", "config.yaml")
			if err := k.Load(file.Provider(globalPath), yaml.Parser()); err != nil {
				slog.Debug("Global config not found or invalid", "path", globalPath, "error", err)
			}
		}
	}

	k.Load(env.Provider("RONIN_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "RONIN_")), "_", ".", -1)
	}), nil)

	if cmd != nil {
		k.Load(posflag.Provider(cmd.Flags(), ".", k), nil)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	if cfg.Agent.APIKey == "" {
		cfg.Agent.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Environment.Path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		cfg.Environment.Path = cwd
	}

	return &cfg, nil
}
