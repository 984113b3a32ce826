package config

import (
	"fmt"
	"strings"
)

type Store struct {
	Driver StoreDriver `env:"STORE_DRIVER" envDefault:"REDIS"`
	Key    string      `env:"STORE_KEY" envDefault:"stocklight:products"`
}

// StoreDriver selects the record store backend.
type StoreDriver uint8

const (
	StoreDriverRedis StoreDriver = iota
	StoreDriverPostgres
	StoreDriverMemory
)

func (d StoreDriver) String() string {
	return []string{"REDIS", "POSTGRES", "MEMORY"}[d]
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *StoreDriver) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "REDIS":
		*d = StoreDriverRedis
	case "POSTGRES":
		*d = StoreDriverPostgres
	case "MEMORY":
		*d = StoreDriverMemory
	default:
		return fmt.Errorf("unknown store driver: %s", text)
	}
	return nil
}

func (d StoreDriver) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
