package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/docker/go-units"
)

const (
	EnvEditorServiceURL     = "EDITOR_SERVICE_URL"
	EnvEditorRequestTimeout = "EDITOR_REQUEST_TIMEOUT"
	EnvEditorOutput         = "EDITOR_OUTPUT"
	EnvEditorWorkDir        = "EDITOR_WORK_DIR"
	EnvEditorMaxUploadSize  = "EDITOR_MAX_UPLOAD_SIZE"
)

// EditorConfig contains settings for the interactive editing client.
type EditorConfig struct {
	// ServiceURL is the mutation service API root, including its base path.
	ServiceURL     string `toml:"service_url"`
	RequestTimeout string `toml:"request_timeout"`

	// Output is the PNG file the composed viewport is written to after every redraw.
	Output string `toml:"output"`

	// WorkDir holds temporary copies of loaded documents for the rasterizer.
	// Empty uses the system temp directory.
	WorkDir string `toml:"work_dir"`

	// InsertText is the placeholder content of regions created by the insert gesture.
	InsertText string `toml:"insert_text"`

	MaxUploadSize    string `toml:"max_upload_size"`
	maxUploadSizeVal int64
}

func (c *EditorConfig) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

func (c *EditorConfig) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

func (c *EditorConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *EditorConfig) Merge(overlay *EditorConfig) {
	if overlay.ServiceURL != "" {
		c.ServiceURL = overlay.ServiceURL
	}
	if overlay.RequestTimeout != "" {
		c.RequestTimeout = overlay.RequestTimeout
	}
	if overlay.Output != "" {
		c.Output = overlay.Output
	}
	if overlay.WorkDir != "" {
		c.WorkDir = overlay.WorkDir
	}
	if overlay.InsertText != "" {
		c.InsertText = overlay.InsertText
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
}

func (c *EditorConfig) loadDefaults() {
	if c.ServiceURL == "" {
		c.ServiceURL = "http://localhost:8080/api"
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = "30s"
	}
	if c.Output == "" {
		c.Output = "viewport.png"
	}
	if c.InsertText == "" {
		c.InsertText = "New text"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "100MB"
	}
}

func (c *EditorConfig) loadEnv() {
	if v := os.Getenv(EnvEditorServiceURL); v != "" {
		c.ServiceURL = v
	}
	if v := os.Getenv(EnvEditorRequestTimeout); v != "" {
		c.RequestTimeout = v
	}
	if v := os.Getenv(EnvEditorOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvEditorWorkDir); v != "" {
		c.WorkDir = v
	}
	if v := os.Getenv(EnvEditorMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
}

func (c *EditorConfig) validate() error {
	u, err := url.Parse(c.ServiceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid service_url: %q", c.ServiceURL)
	}
	if d, err := time.ParseDuration(c.RequestTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid request_timeout: %q", c.RequestTimeout)
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size
	return nil
}
