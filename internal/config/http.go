package config

type HTTP struct {
	Port    uint32 `env:"HTTP_PORT" envDefault:"8000"`
	Swagger bool   `env:"HTTP_SWAGGER" envDefault:"true"`

	// RateLimit is the per-IP request budget per minute. Zero disables
	// rate limiting.
	RateLimit int `env:"HTTP_RATE_LIMIT" envDefault:"300"`
}
