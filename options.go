package contentsearch

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	driver   string
	addrs    []string
	username string
	password string
	db       int
	memory   bool

	logger *zap.Logger

	suggestMinLength   int
	suggestCacheTTL    time.Duration
	analyticsCacheTTL  time.Duration
	excludeZeroResults bool
	tracking           bool
}

// WithRedis connects the client to a Redis deployment.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = addrs
	}
}

// WithValkey connects the client to a Valkey deployment.
func WithValkey(addrs ...string) Option {
	return func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = addrs
	}
}

// WithAuth sets database credentials.
func WithAuth(username, password string) Option {
	return func(c *clientConfig) {
		c.username = username
		c.password = password
	}
}

// WithDB selects a logical database number.
func WithDB(db int) Option {
	return func(c *clientConfig) {
		c.db = db
	}
}

// WithMemory runs the engine fully in-process with no external store.
// Intended for tests and small embedded deployments; nothing survives
// a restart.
func WithMemory() Option {
	return func(c *clientConfig) {
		c.memory = true
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithSuggestMinLength sets the shortest partial query served by the
// suggestion engine.
func WithSuggestMinLength(n int) Option {
	return func(c *clientConfig) {
		c.suggestMinLength = n
	}
}

// WithSuggestCacheTTL sets the suggestion cache TTL.
func WithSuggestCacheTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.suggestCacheTTL = ttl
	}
}

// WithAnalyticsCacheTTL sets the analytics report cache TTL.
func WithAnalyticsCacheTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.analyticsCacheTTL = ttl
	}
}

// WithExcludeZeroResults drops zero-result searches from popularity
// reports.
func WithExcludeZeroResults() Option {
	return func(c *clientConfig) {
		c.excludeZeroResults = true
	}
}

// WithoutTracking disables analytics event emission on searches.
func WithoutTracking() Option {
	return func(c *clientConfig) {
		c.tracking = false
	}
}
