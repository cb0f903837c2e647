package main

import (
	"fmt"

	"github.com/studyhub/backend/internal/catalog"
	"github.com/studyhub/backend/internal/config"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// loadCatalog loads the embedded content overlaid with dir, falling back to
// the configured content directory when dir is empty.
func loadCatalog(dir string) (*catalog.Catalog, error) {
	if dir == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		dir = cfg.Content.Dir
	}
	source, err := catalog.NewSource(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return source.Current(), nil
}
