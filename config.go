package main

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Storage struct {
		Database string `yaml:"database"`
	} `yaml:"storage"`
	API struct {
		Port string `yaml:"port"`
		Key  string `yaml:"key"`
	} `yaml:"api"`
	Telegram struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"telegram"`
}

func LoadConfig() *Config {
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		log.Printf("Failed to read config file, using defaults: %v", err)
		return defaultConfig()
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		log.Printf("Failed to parse config file, using defaults: %v", err)
		return defaultConfig()
	}

	// Override API key from environment variable if set
	if envAPIKey := os.Getenv("TGCLOUD_API_KEY"); envAPIKey != "" {
		config.API.Key = envAPIKey
	}
	applyDefaults(&config)

	// Log only a hash prefix of the API key to avoid exposing it
	if config.API.Key != "" {
		hasher := sha256.New()
		hasher.Write([]byte(config.API.Key))
		hashBytes := hasher.Sum(nil)[:8]
		log.Printf("API Key configured (hash prefix: %s...)", hex.EncodeToString(hashBytes))
	}

	return &config
}

func defaultConfig() *Config {
	apiKey := os.Getenv("TGCLOUD_API_KEY")
	if apiKey == "" {
		log.Fatal("API key must be set via TGCLOUD_API_KEY environment variable or config file")
	}

	config := &Config{}
	config.API.Key = apiKey
	applyDefaults(config)
	return config
}

func applyDefaults(config *Config) {
	if config.Storage.Database == "" {
		config.Storage.Database = "./sessions.db"
	}
	if config.API.Port == "" {
		config.API.Port = "8080"
	}
	if config.Telegram.BaseURL == "" {
		config.Telegram.BaseURL = "https://api.telegram.org"
	}
	if config.Telegram.TimeoutSeconds <= 0 {
		config.Telegram.TimeoutSeconds = 60
	}
}
