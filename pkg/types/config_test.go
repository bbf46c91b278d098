package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.Database = "/tmp/pretalx.db"

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:    "default config with database is valid",
			mutate:  func(c *Config) {},
			wantErr: nil,
		},
		{
			name:    "empty backend returns ErrBackendEmpty",
			mutate:  func(c *Config) { c.Backend = "" },
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			mutate:  func(c *Config) { c.Backend = "postgres" },
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "empty database returns ErrDatabaseEmpty",
			mutate:  func(c *Config) { c.Database = "" },
			wantErr: ErrDatabaseEmpty,
		},
		{
			name:    "input order is valid",
			mutate:  func(c *Config) { c.Allocation.Order = OrderInput },
			wantErr: nil,
		},
		{
			name:    "unknown order returns ErrOrderUnknown",
			mutate:  func(c *Config) { c.Allocation.Order = "random" },
			wantErr: ErrOrderUnknown,
		},
		{
			name:    "empty catalog returns ErrCatalogEmpty",
			mutate:  func(c *Config) { c.Catalog.Themes = nil },
			wantErr: ErrCatalogEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			cfg.Catalog = DefaultCatalog()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
