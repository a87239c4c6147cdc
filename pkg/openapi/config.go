package openapi

import "os"

// Config holds the descriptive metadata of the generated API document.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// Env maps configuration fields to environment variable names.
type Env struct {
	Title       string
	Description string
}

func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "PDF Editor API"
	}
	if c.Description == "" {
		c.Description = "Document, page and text region mutations for the interactive PDF editor."
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Title != "" {
		if v := os.Getenv(env.Title); v != "" {
			c.Title = v
		}
	}
	if env.Description != "" {
		if v := os.Getenv(env.Description); v != "" {
			c.Description = v
		}
	}
}
