package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := Load()

	if cfg.Port != "5001" {
		t.Errorf("Port = %q, want 5001", cfg.Port)
	}
	if cfg.OllamaModel != "llama3" {
		t.Errorf("OllamaModel = %q, want llama3", cfg.OllamaModel)
	}
	if cfg.SearchTopK != 3 {
		t.Errorf("SearchTopK = %d, want 3", cfg.SearchTopK)
	}
	if cfg.ScrapeListingLimit != 5 {
		t.Errorf("ScrapeListingLimit = %d, want 5", cfg.ScrapeListingLimit)
	}
	if cfg.PriceLookupTimeout != 15*time.Second {
		t.Errorf("PriceLookupTimeout = %v, want 15s", cfg.PriceLookupTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "missing api key", mutate: func(c *Config) { c.OpenAIAPIKey = "" }, wantErr: true},
		{name: "missing database url", mutate: func(c *Config) { c.DatabaseURL = "" }, wantErr: true},
		{name: "empty model", mutate: func(c *Config) { c.OllamaModel = "" }, wantErr: true},
		{name: "top k below one", mutate: func(c *Config) { c.SearchTopK = 0 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "VERBOSE" }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port:               "5001",
				DatabaseURL:        "postgres://localhost/tripplanner?sslmode=disable",
				OpenAIAPIKey:       "sk-test",
				OllamaModel:        "llama3",
				SearchTopK:         3,
				ScrapeListingLimit: 5,
				LogLevel:           "INFO",
				LogFormat:          "text",
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}
