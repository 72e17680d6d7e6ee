package internal

import (
	"log/slog"
	"net"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Authentication modes accepted by AuthConfig.Mode.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config is the full server configuration tree.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Data    DataConfig        `yaml:"data"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Auth    AuthConfig        `yaml:"auth"`
	Manager ManagerConfig     `yaml:"manager"`
}

// Validate checks every section, stopping at the first failure.
func (c *Config) Validate() error {
	sections := []interface{ Validate() error }{
		&c.App, &c.Data, &c.SQLite, &c.Auth, &c.Manager,
	}
	for _, s := range sections {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ApplicationConfig holds process-level settings: log verbosity and the
// HTTP listener.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds the REST listener settings. An empty Host binds all
// interfaces.
type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Address renders the listen address for http.Server.
func (c *HTTPConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks the port is in the usable range.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// DataConfig holds the path to the record data directory.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

func (c *DataConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// SQLiteConfig holds the location of the search index database.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig controls access to the REST API. Two modes exist:
// "disabled" (the default) serves everything without credentials, and
// "token" requires a Bearer token on every request.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate normalises an unset mode to "disabled" and requires a token
// whenever token auth is selected.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.In(AuthModeDisabled, AuthModeToken)),
		validation.Field(&c.Token, validation.When(c.Mode == AuthModeToken, validation.Required.Error("token is empty"))),
	)
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// ManagerConfig identifies the operator. Processed transcripts file a
// leadership coaching note on this profile, creating it on first use. An
// empty name disables coaching notes.
type ManagerConfig struct {
	Name       string `yaml:"name"`
	Role       string `yaml:"role"`
	Department string `yaml:"department"`
}

// Validate validates the manager configuration. Role and department only
// make sense on a named operator.
func (c *ManagerConfig) Validate() error {
	nameless := c.Name == ""
	return validation.ValidateStruct(c,
		validation.Field(&c.Role, validation.When(nameless, validation.Empty.Error("set manager.name to use manager.role"))),
		validation.Field(&c.Department, validation.When(nameless, validation.Empty.Error("set manager.name to use manager.department"))),
	)
}

// NewDefaultConfig returns the configuration the server runs on when no
// file overrides it: local data dir, local index, no auth.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP:     HTTPConfig{Port: 8080},
		},
		Data:   DataConfig{Dir: "./data"},
		SQLite: SQLiteConfig{Path: "./mannaz.db"},
		Auth:   AuthConfig{Mode: AuthModeDisabled},
	}
}
