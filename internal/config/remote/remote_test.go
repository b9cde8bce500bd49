package remote

import (
	"net/url"
	"testing"

	"github.com/IlianBuh/Wall-service/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const key = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9"

func TestIsConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"empty", Config{}, false},
		{"only url", Config{URL: "postgres://db.example.com:5432/wall"}, false},
		{"only key", Config{APIKey: key}, false},
		{"valid", Config{URL: "postgres://db.example.com:5432/wall", APIKey: key}, true},
		{"postgresql scheme", Config{URL: "postgresql://db.example.com/wall", APIKey: key}, true},
		{"http scheme", Config{URL: "https://project.supabase.co", APIKey: key}, false},
		{"no host", Config{URL: "postgres:///wall", APIKey: key}, false},
		{"garbage url", Config{URL: "::not a url", APIKey: key}, false},
		{"short key", Config{URL: "postgres://db.example.com/wall", APIKey: "placeholder-key"}, false},
		{"key with space", Config{URL: "postgres://db.example.com/wall", APIKey: "eyJhbGciOiJIUzI1NiIs InR5cCI6"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.IsConfigured())
		})
	}
}

func TestStatus(t *testing.T) {
	cfg := Config{URL: "https://project.supabase.co", APIKey: key}

	assert.Equal(t, models.RemoteStatus{
		HasURL:       true,
		HasKey:       true,
		URLValid:     false,
		KeyValid:     true,
		IsConfigured: false,
	}, cfg.Status())
}

func TestDSN(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		_, err := Config{}.DSN()
		require.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("default user", func(t *testing.T) {
		dsn, err := Config{URL: "postgres://db.example.com:5432/wall?sslmode=disable", APIKey: key}.DSN()
		require.NoError(t, err)

		u, err := url.Parse(dsn)
		require.NoError(t, err)
		pass, _ := u.User.Password()
		assert.Equal(t, "postgres", u.User.Username())
		assert.Equal(t, key, pass)
		assert.Equal(t, "disable", u.Query().Get("sslmode"))
	})

	t.Run("explicit user", func(t *testing.T) {
		dsn, err := Config{URL: "postgres://wall@db.example.com/wall", APIKey: key}.DSN()
		require.NoError(t, err)

		u, err := url.Parse(dsn)
		require.NoError(t, err)
		assert.Equal(t, "wall", u.User.Username())
	})
}
