package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			config: Default(),
		},
		{
			name: "missing listen",
			config: &Config{
				Server:   ServerConfig{Timeout: 30 * time.Second},
				Database: DatabaseConfig{DSN: "file:test.db"},
				Store:    StoreConfig{HistorySize: 10},
			},
			wantErr: true,
			errMsg:  "server.listen is required",
		},
		{
			name: "missing timeout",
			config: &Config{
				Server:   ServerConfig{Listen: ":8080"},
				Database: DatabaseConfig{DSN: "file:test.db"},
				Store:    StoreConfig{HistorySize: 10},
			},
			wantErr: true,
			errMsg:  "server.timeout is required",
		},
		{
			name: "missing dsn",
			config: &Config{
				Server: ServerConfig{Listen: ":8080", Timeout: time.Second},
				Store:  StoreConfig{HistorySize: 10},
			},
			wantErr: true,
			errMsg:  "database.dsn is required",
		},
		{
			name: "missing history size",
			config: &Config{
				Server:   ServerConfig{Listen: ":8080", Timeout: time.Second},
				Database: DatabaseConfig{DSN: "file:test.db"},
			},
			wantErr: true,
			errMsg:  "store.history_size is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyAgainstEmbeddedSchema(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema()
	require.NotNil(t, schema)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	for _, key := range []string{"server", "database", "store", "history_size", "autosave"} {
		assert.Contains(t, string(data), `"`+key+`"`)
	}
}

func TestEmbeddedSchemaMatchesConfig(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &schema))
	defs, ok := schema["$defs"].(map[string]any)
	require.True(t, ok)
	for _, name := range []string{"Config", "ServerConfig", "DatabaseConfig", "StoreConfig"} {
		assert.Contains(t, defs, name)
	}
}
