// Package config loads project configuration from pgasync.yaml.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConnectionConfig is the connection section of pgasync.yaml.
type ConnectionConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"sslmode"`
	AppName        string `yaml:"application_name,omitempty"`
	MaxConns       int32  `yaml:"max_conns,omitempty"`
	AuthMethod     string `yaml:"auth_method,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
}

// DispatcherConfig is the dispatcher section of pgasync.yaml.
type DispatcherConfig struct {
	// MaxWorkers is the number of concurrent blocking slots (0 = default).
	MaxWorkers int `yaml:"max_workers,omitempty"`

	// Mode is the blocking strategy: "worker" (default) or "inline".
	Mode string `yaml:"mode,omitempty"`
}

// ProjectConfig is the full pgasync.yaml document.
type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Dispatcher DispatcherConfig `yaml:"dispatcher"`
	Timeout    string           `yaml:"timeout,omitempty"`
}

const ConfigFileName = "pgasync.yaml"

// Load reads ConfigFileName from dir.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
