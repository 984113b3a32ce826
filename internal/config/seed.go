package config

import "time"

type Seed struct {
	// Source is an http(s) URL or a local file path holding the seed
	// record array. Empty disables seeding.
	Source  string        `env:"SEED_SOURCE"`
	Timeout time.Duration `env:"SEED_TIMEOUT" envDefault:"10s"`
}
