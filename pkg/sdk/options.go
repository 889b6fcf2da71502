package cocreate

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/obinss/CoCreate-MVP/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	db config.DatabaseConfig

	items       []Item
	catalogPath string
	watch       bool

	keyPrefix    string
	historyScope string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey keeps the search history in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = config.DatabaseConfig{Driver: config.DriverValkey, Addrs: []string{addr}, Password: password}
	})
}

// WithRedis keeps the search history in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = config.DatabaseConfig{Driver: config.DriverRedis, Addrs: []string{addr}, Password: password}
	})
}

// WithBadger keeps the search history in an embedded Badger database at dir.
func WithBadger(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = config.DatabaseConfig{Driver: config.DriverBadger, Path: dir}
	})
}

// WithItems searches a fixed slice of listings.
func WithItems(items []Item) Option {
	return optionFunc(func(c *clientConfig) {
		c.items = items
		c.catalogPath = ""
	})
}

// WithCatalogFile searches the listings in a JSON file (an array or {"results": [...]}).
// With watch set the file is reloaded when it changes until Close.
func WithCatalogFile(path string, watch bool) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogPath = path
		c.watch = watch
		c.items = nil
	})
}

// WithKeyPrefix namespaces the history keys in a shared database.
// Default: "cocreate:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithHistoryScope separates histories, for example per user.
// Default: "global".
func WithHistoryScope(scope string) Option {
	return optionFunc(func(c *clientConfig) {
		c.historyScope = scope
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
