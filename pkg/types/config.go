package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Analysis of a large document
	// can take minutes when the backend runs a local LLM.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-analyzer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// GatewayConfig holds settings for the analyzer backend gateway.
type GatewayConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the analyzer backend root (e.g. "http://localhost:8000").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxRetries bounds the transparent backoff retries on HTTP 429
	// (default 3). Other failures are never retried automatically.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CatalogBackend selects the catalog persistence implementation.
type CatalogBackend string

const (
	CatalogSQLite CatalogBackend = "sqlite"
	CatalogFile   CatalogBackend = "file"
)

// CatalogConfig holds settings for the local paper catalog.
type CatalogConfig struct {
	// Backend selects the storage implementation: sqlite or file.
	Backend CatalogBackend `json:"backend" yaml:"backend"`

	// Path is the catalog location: a database file for sqlite, a JSON
	// file for file.
	Path string `json:"path" yaml:"path"`

	// ExportDir is where catalog export writes export.yaml and export.json.
	ExportDir string `json:"export_dir" yaml:"export_dir"`
}

// BackendConfig holds settings for running the analyzer backend in a
// local container.
type BackendConfig struct {
	// Image is the analyzer container image.
	Image string `json:"image" yaml:"image"`

	// Name is the container name used for start/stop/status.
	Name string `json:"name" yaml:"name"`

	// Port is the host port published to the backend's HTTP port.
	Port int `json:"port" yaml:"port"`
}
