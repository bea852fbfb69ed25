package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     DatabaseConfig
		wantErr bool
	}{
		{name: "postgres", cfg: DatabaseConfig{URL: "postgres://u:p@localhost:5432/products", Timeout: time.Second}},
		{name: "postgresql", cfg: DatabaseConfig{URL: "postgresql://localhost/products", Timeout: time.Second}},
		{name: "postgres without timeout", cfg: DatabaseConfig{URL: "postgres://localhost/products"}, wantErr: true},
		{name: "sqlite", cfg: DatabaseConfig{URL: "sqlite://products.db"}},
		{name: "sqlite without path", cfg: DatabaseConfig{URL: "sqlite://"}, wantErr: true},
		{name: "memory", cfg: DatabaseConfig{URL: "memory://"}},
		{name: "empty", cfg: DatabaseConfig{}, wantErr: true},
		{name: "unknown scheme", cfg: DatabaseConfig{URL: "mysql://localhost/products"}, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTelemetryConfig_Validate(t *testing.T) {
	t.Run("traces disabled skips otlp settings", func(t *testing.T) {
		cfg := TelemetryConfig{}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("traces enabled requires endpoint", func(t *testing.T) {
		cfg := TelemetryConfig{}
		cfg.Traces.Enabled = true
		cfg.Traces.OtlpHttp.Timeout = time.Second
		assert.Error(t, cfg.Validate())
	})

	t.Run("traces enabled requires timeout", func(t *testing.T) {
		cfg := TelemetryConfig{}
		cfg.Traces.Enabled = true
		cfg.Traces.OtlpHttp.Endpoint = "localhost:4318"
		assert.Error(t, cfg.Validate())
	})
}

func TestPProfConfig_Validate(t *testing.T) {
	assert.NoError(t, (&PProfConfig{}).Validate())
	assert.Error(t, (&PProfConfig{Enabled: true}).Validate())
	assert.NoError(t, (&PProfConfig{Enabled: true, Addr: ":6060"}).Validate())
}
