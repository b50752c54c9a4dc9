// Package config handles the XDG configuration directory and the stored
// Twilio credentials.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "twilly"

	// CredentialsFile is the credentials filename.
	CredentialsFile = "config.yaml"

	// Environment variables that override stored credentials.
	EnvAccountSID = "TWILIO_ACCOUNT_SID"
	EnvAuthToken  = "TWILIO_AUTH_TOKEN"
)

// ErrNoCredentials is returned when neither the credentials file nor the
// environment supply an account.
var ErrNoCredentials = errors.New("no credentials configured")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// Credentials is the content of config.yaml.
type Credentials struct {
	AccountSID string       `yaml:"account_sid"`
	AuthToken  string       `yaml:"auth_token,omitempty"`
	OAuth      *OAuthClient `yaml:"oauth,omitempty"`
	BaseURLs   BaseURLs     `yaml:"base_urls,omitempty"`
}

// OAuthClient holds client credentials for the OAuth2 client credentials grant.
type OAuthClient struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	TokenURL     string `yaml:"token_url,omitempty"`
}

// BaseURLs overrides the API hosts. Empty fields use the public endpoints.
type BaseURLs struct {
	Conversations string `yaml:"conversations,omitempty"`
	Sync          string `yaml:"sync,omitempty"`
}

// Validate checks that the credentials can authenticate a request.
func (c Credentials) Validate() error {
	if c.AccountSID == "" {
		return ErrNoCredentials
	}
	if c.OAuth != nil {
		if c.OAuth.ClientID == "" || c.OAuth.ClientSecret == "" {
			return errors.New("oauth client_id and client_secret are required")
		}
		return nil
	}
	if c.AuthToken == "" {
		return fmt.Errorf("auth token missing for account %s", c.AccountSID)
	}
	return nil
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/twilly or $HOME/.config/twilly.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// CredentialsPath returns the path to the credentials file.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.Dir, CredentialsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasCredentials checks if the credentials file exists.
func (c *Config) HasCredentials() bool {
	_, err := os.Stat(c.CredentialsPath())
	return err == nil
}

// LoadCredentials reads the credentials file and applies environment
// overrides. A missing file is not an error.
func (c *Config) LoadCredentials() (Credentials, error) {
	var creds Credentials

	data, err := os.ReadFile(c.CredentialsPath())
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &creds); err != nil {
			return Credentials{}, fmt.Errorf("parse %s: %w", c.CredentialsPath(), err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Credentials{}, fmt.Errorf("read credentials: %w", err)
	}

	if v, ok := os.LookupEnv(EnvAccountSID); ok && v != "" {
		creds.AccountSID = v
	}
	if v, ok := os.LookupEnv(EnvAuthToken); ok && v != "" {
		creds.AuthToken = v
	}
	return creds, nil
}

// SaveCredentials writes creds with mode 0600, creating the directory.
func (c *Config) SaveCredentials(creds Credentials) error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	return os.WriteFile(c.CredentialsPath(), data, 0600)
}

// RemoveCredentials deletes the credentials file.
func (c *Config) RemoveCredentials() error {
	return os.Remove(c.CredentialsPath())
}
