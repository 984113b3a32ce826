package config

import "time"

type View struct {
	// SearchDebounce is how long search input must stay idle before the
	// effective term is committed.
	SearchDebounce time.Duration `env:"VIEW_SEARCH_DEBOUNCE" envDefault:"500ms"`
}
