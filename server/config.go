// Copyright 2025 Tastegraph
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the HTTP server binary's configuration, loaded from a .env
// file and RECIPECHAT_-prefixed environment variables.
type Config struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Debug        bool          `mapstructure:"debug"`
	DataDir      string        `mapstructure:"data_dir"`
	AllowOrigins []string      `mapstructure:"allow_origins"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// SessionBackend selects where session state lives: "badger" keeps it
	// next to the corpus, "redis" moves it out for multi-process setups.
	SessionBackend string `mapstructure:"session_backend"`
	RedisAddr      string `mapstructure:"redis_addr"`
	RedisPassword  string `mapstructure:"redis_password"`
	RedisDB        int    `mapstructure:"redis_db"`

	// AIHost is the OpenAI-compatible service endpoint used for both
	// embedding and query extraction.
	AIHost         string `mapstructure:"ai_host"`
	ExtractorModel string `mapstructure:"extractor_model"`
	EmbeddingModel string `mapstructure:"embedding_model"`
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks the configuration for obvious misconfiguration.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir required")
	}
	switch c.SessionBackend {
	case "badger", "redis":
	default:
		return fmt.Errorf("invalid session_backend: %q", c.SessionBackend)
	}
	if c.SessionBackend == "redis" && c.RedisAddr == "" {
		return fmt.Errorf("redis_addr required for the redis session backend")
	}
	return nil
}

// LoadConfig reads the configuration: a .env file when present, then the
// environment, with defaults for everything not set.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; the environment alone may carry everything.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("debug", false)
	v.SetDefault("data_dir", "./data")
	v.SetDefault("allow_origins", []string{"*"})
	v.SetDefault("read_timeout", 30*time.Second)
	v.SetDefault("write_timeout", 60*time.Second)
	v.SetDefault("session_backend", "badger")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("ai_host", "http://localhost:11434/v1")
	v.SetDefault("extractor_model", "qwen2.5:3b")
	v.SetDefault("embedding_model", "embeddinggemma")

	v.SetEnvPrefix("RECIPECHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
