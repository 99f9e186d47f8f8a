package genredna

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/himanishpuri/GenreDNA/pkg/genredna/catalog"
	"github.com/himanishpuri/GenreDNA/pkg/logger"
)

// NewBackend resolves the prediction backend once. Without a base URL the
// simulated backend is returned; otherwise requests go to the remote API.
func NewBackend(opts ...Option) (PredictionBackend, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	if strings.TrimSpace(cfg.BaseURL) == "" {
		backend, err := newSimulatedBackend(cfg)
		if err != nil {
			return nil, err
		}
		cfg.Logger.Infof("No prediction API configured, using simulated backend")
		return backend, nil
	}

	backend, err := newRemoteBackend(cfg)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Infof("Using prediction API at %s", backend.baseURL)
	return backend, nil
}

// NewSimulatedBackend builds the simulated backend regardless of BaseURL.
func NewSimulatedBackend(opts ...Option) (*SimulatedBackend, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}
	return newSimulatedBackend(cfg)
}

// NewRemoteBackend builds a client for the prediction API at baseURL.
func NewRemoteBackend(baseURL string, opts ...Option) (*RemoteBackend, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.BaseURL = baseURL
	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}
	return newRemoteBackend(cfg)
}

func newSimulatedBackend(cfg *Config) (*SimulatedBackend, error) {
	cat := cfg.Catalog
	if cat == nil {
		if cfg.DBPath != "" {
			loaded, err := NewSQLiteCatalog(cfg.DBPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load catalog: %w", err)
			}
			cat = loaded
		} else {
			cat = catalog.Default()
		}
	}
	if cfg.MockDelayMax < cfg.MockDelayMin {
		return nil, fmt.Errorf("mock delay max %v is below min %v", cfg.MockDelayMax, cfg.MockDelayMin)
	}
	return &SimulatedBackend{
		catalog:  cat,
		rng:      cfg.Rand,
		delayMin: cfg.MockDelayMin,
		delayMax: cfg.MockDelayMax,
		log:      cfg.Logger,
	}, nil
}

func newRemoteBackend(cfg *Config) (*RemoteBackend, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid prediction API URL %q: %w", cfg.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid prediction API URL %q: expected http(s)://host", cfg.BaseURL)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &RemoteBackend{
		baseURL: base,
		http:    client,
		log:     cfg.Logger,
	}, nil
}
