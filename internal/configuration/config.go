package configuration

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	AppPort        int      `json:"app_port"`
	SocketPort     int      `json:"socket_port"`
	AllowedOrigins []string `json:"allowed_origins"`
}

type BackendConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type MongoConfig struct {
	Uri                string `json:"uri"`
	Database           string `json:"database"`
	SessionsCollection string `json:"sessionsCollection"`
}

// DemoConfig controls the simulation scaffolding: the client-local match
// coin flip and the chat auto-replies. Both are stand-ins for
// server-authoritative behavior and must be off in production.
type DemoConfig struct {
	Enabled          bool    `json:"enabled"`
	MatchProbability float64 `json:"match_probability"`
	Seed             int64   `json:"seed"`
}

type LiveKitConfig struct {
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
	URL       string `json:"url"`
}

type Config struct {
	Server  ServerConfig  `json:"server"`
	Backend BackendConfig `json:"backend"`
	Cache   MongoConfig   `json:"mongo"`
	Demo    DemoConfig    `json:"demo"`
	LiveKit LiveKitConfig `json:"livekit"`
}

// DefaultConfig matches a local development setup against a core backend on
// localhost:3001.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			AppPort:        8080,
			SocketPort:     8081,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Backend: BackendConfig{
			BaseURL:        "http://localhost:3001",
			TimeoutSeconds: 15,
		},
		Cache: MongoConfig{
			SessionsCollection: "sessions",
		},
		Demo: DemoConfig{
			Enabled:          true,
			MatchProbability: 0.3,
		},
	}
}

// LoadConfig reads the JSON config file and applies environment overrides.
// A missing file is not an error: defaults plus environment apply.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(configPath)
	if err == nil {
		if err := json.Unmarshal(file, config); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnv(config)
	return config, nil
}

// applyEnv layers environment values over the file. A .env file is honored
// when present.
func applyEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("STREAMMATCH_API_URL"); v != "" {
		config.Backend.BaseURL = v
	}
	if v := os.Getenv("STREAMMATCH_APP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.AppPort = port
		}
	}
	if v := os.Getenv("STREAMMATCH_SOCKET_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.SocketPort = port
		}
	}
	if v := os.Getenv("STREAMMATCH_DEMO"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			config.Demo.Enabled = enabled
		}
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		config.Cache.Uri = v
	}
	if v := os.Getenv("MONGO_DATABASE"); v != "" {
		config.Cache.Database = v
	}
	if v := os.Getenv("LIVEKIT_API_KEY"); v != "" {
		config.LiveKit.APIKey = v
	}
	if v := os.Getenv("LIVEKIT_API_SECRET"); v != "" {
		config.LiveKit.APISecret = v
	}
	if v := os.Getenv("LIVEKIT_URL"); v != "" {
		config.LiveKit.URL = v
	}
}
