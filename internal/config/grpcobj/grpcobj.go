package grpcobj

import (
	"time"
)

// Config object representation of grpc server settings
type Config struct {
	Port    int           `mapstructure:"port"`
	Timeout time.Duration `mapstructure:"timeout"`
}
