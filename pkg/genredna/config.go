package genredna

import (
	"net/http"
	"time"

	"github.com/himanishpuri/GenreDNA/pkg/genredna/simulate"
)

const (
	DefaultMockDelayMin = 1500 * time.Millisecond
	DefaultMockDelayMax = 2500 * time.Millisecond
)

type Config struct {
	BaseURL      string
	MockDelayMin time.Duration
	MockDelayMax time.Duration
	DBPath       string
	HTTPClient   *http.Client
	Logger       Logger
	Catalog      Catalog
	Rand         simulate.Source
}

type Option func(*Config)

// WithBaseURL sets the prediction API root. An empty URL selects the
// simulated backend.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.BaseURL = baseURL
	}
}

// WithMockDelay sets the range of the artificial latency of the simulated
// backend. Zero values disable it.
func WithMockDelay(min, max time.Duration) Option {
	return func(c *Config) {
		c.MockDelayMin = min
		c.MockDelayMax = max
	}
}

// WithDBPath loads the simulated backend's catalog from a SQLite file.
func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func WithCatalog(cat Catalog) Option {
	return func(c *Config) {
		c.Catalog = cat
	}
}

func WithRandSource(rng simulate.Source) Option {
	return func(c *Config) {
		c.Rand = rng
	}
}

func defaultConfig() *Config {
	return &Config{
		MockDelayMin: DefaultMockDelayMin,
		MockDelayMax: DefaultMockDelayMax,
		HTTPClient:   &http.Client{},
	}
}
