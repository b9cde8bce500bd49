package kafka

import "time"

// Config of event producer. Producer is disabled when Addrs is empty
type Config struct {
	Addrs   []string      `mapstructure:"addrs"`
	Topic   string        `mapstructure:"topic"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
}

func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}
