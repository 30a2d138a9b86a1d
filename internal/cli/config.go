package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds CLI settings; flags override the environment
type Config struct {
	ServerURL string `env:"BSCTL_SERVER" envDefault:"http://localhost:3000"`
	Token     string `env:"BSCTL_TOKEN"`
	TokenFile string `env:"BSCTL_TOKEN_FILE"`
	Output    string `env:"BSCTL_OUTPUT" envDefault:"text"`
	Verbose   bool   `env:"BSCTL_VERBOSE"`
}

// ConfigFromEnv reads the BSCTL_* variables
func ConfigFromEnv() (*Config, error) {
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if c.TokenFile == "" {
		c.TokenFile = defaultTokenFile()
	}
	return c, nil
}

// LoadToken reads the saved token unless one was given explicitly
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("read token file: %w", err)
	}

	c.Token = strings.TrimSpace(string(data))
	return nil
}

// SaveToken stores the token for later invocations
func (c *Config) SaveToken(token string) error {
	c.Token = token

	if err := os.MkdirAll(filepath.Dir(c.TokenFile), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	return os.WriteFile(c.TokenFile, []byte(token+"\n"), 0o600)
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".bsctl", "token")
	}
	return filepath.Join(home, ".bsctl", "token")
}
