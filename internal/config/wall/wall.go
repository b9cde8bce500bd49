package wall

import (
	"time"
)

type Config struct {
	RefreshInterval time.Duration `mapstructure:"refresh-interval"`
	Timeout         time.Duration `mapstructure:"timeout"`
}
