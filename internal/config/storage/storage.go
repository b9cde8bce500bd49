package storage

// Config of the local store. Empty path means that local storage
// is unavailable in current environment
type Config struct {
	Path string `mapstructure:"path"`
}
