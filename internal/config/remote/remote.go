package remote

import (
	"errors"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/IlianBuh/Wall-service/internal/domain/models"
)

const (
	// MinAPIKeyLength is the shortest key accepted as well-formed
	MinAPIKeyLength = 20

	defaultUser = "postgres"
)

var ErrNotConfigured = errors.New("remote backend is not configured")

// Config of the remote backend. APIKey is passed to the database as password
type Config struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api-key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// IsConfigured reports whether both URL and API key are well-formed
func (c Config) IsConfigured() bool {
	return validURL(c.URL) && validKey(c.APIKey)
}

// Status returns configuration state for debugging
func (c Config) Status() models.RemoteStatus {
	return models.RemoteStatus{
		HasURL:       c.URL != "",
		HasKey:       c.APIKey != "",
		URLValid:     validURL(c.URL),
		KeyValid:     validKey(c.APIKey),
		IsConfigured: c.IsConfigured(),
	}
}

// DSN assembles connection string for the postgres driver.
// Returns ErrNotConfigured if configuration is not well-formed
func (c Config) DSN() (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return "", err
	}

	user := defaultUser
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, c.APIKey)

	return u.String(), nil
}

func validURL(raw string) bool {
	if raw == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return false
	}

	return u.Hostname() != ""
}

func validKey(key string) bool {
	if len(key) < MinAPIKeyLength {
		return false
	}

	return !strings.ContainsFunc(key, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
}
