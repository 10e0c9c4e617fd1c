package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	xdgAppName = "budgetsync"
	configFile = "config.json"
)

// Config holds everything the service needs at startup. Values come from an
// optional JSON file with environment variables taking precedence; the
// service itself persists nothing.
type Config struct {
	// AsanaToken is the personal access token for the remote API.
	AsanaToken string `json:"asana_token"`
	// TemplateProjectGID anchors workspace discovery: its workspace is the
	// one scanned on fallback and subscribed to on webhook registration.
	TemplateProjectGID string `json:"template_project_gid"`
	// Custom field display names that mark a project as eligible.
	EstimatedCostField string `json:"estimated_cost_field"`
	ActualCostField    string `json:"actual_cost_field"`
	// PublicBaseURL is the externally reachable base URL used when
	// registering the webhook subscription.
	PublicBaseURL string `json:"public_base_url"`
	ListenAddr    string `json:"listen_addr"`
	// ReconcileConcurrency bounds per-project fan-out within one pass.
	ReconcileConcurrency int `json:"reconcile_concurrency"`
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName, configFile), nil
}

// Load reads the config file if present, fills in defaults, and applies
// environment overrides.
func Load() (*Config, error) {
	cfg := &Config{}

	path, err := GetConfigPath()
	if err == nil {
		f, err := os.Open(path)
		if err == nil {
			defer f.Close()
			if err := json.NewDecoder(f).Decode(cfg); err != nil {
				return nil, fmt.Errorf("failed to decode config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.EstimatedCostField == "" {
		c.EstimatedCostField = "Budget"
	}
	if c.ActualCostField == "" {
		c.ActualCostField = "Actual Cost"
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.ReconcileConcurrency == 0 {
		c.ReconcileConcurrency = 4
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ASANA_TOKEN"); v != "" {
		c.AsanaToken = v
	}
	if v := os.Getenv("TEMPLATE_PROJECT_GID"); v != "" {
		c.TemplateProjectGID = v
	}
	if v := os.Getenv("ESTIMATED_COST_FIELD"); v != "" {
		c.EstimatedCostField = v
	}
	if v := os.Getenv("ACTUAL_COST_FIELD"); v != "" {
		c.ActualCostField = v
	}
	if v := os.Getenv("PUBLIC_BASE_URL"); v != "" {
		c.PublicBaseURL = v
	}
	// PORT is what PaaS runtimes inject; LISTEN_ADDR wins when both are set.
	if v := os.Getenv("PORT"); v != "" {
		c.ListenAddr = ":" + v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("RECONCILE_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.ReconcileConcurrency = n
		}
	}
}

// Validate fails fast on the inputs nothing can run without. PublicBaseURL
// is deliberately not required here: only webhook registration needs it.
func (c *Config) Validate() error {
	if c.AsanaToken == "" {
		return fmt.Errorf("ASANA_TOKEN is required")
	}
	if c.TemplateProjectGID == "" {
		return fmt.Errorf("TEMPLATE_PROJECT_GID is required")
	}
	return nil
}
