package internal

import "fmt"

// Option configures the application before Run or RunMCP starts it.
type Option func(*application)

type application struct {
	config *Config
}

// newApplication applies opts and checks that a configuration was given.
func newApplication(opts ...Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}
