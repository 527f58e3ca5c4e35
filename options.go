package feedsearch

import (
	"go.uber.org/zap"

	"github.com/konectfeed/feedsearch/internal/domain/search/plan"
	"github.com/konectfeed/feedsearch/internal/domain/search/sortkey"
	"github.com/konectfeed/feedsearch/internal/domain/search/strategy"
	listingrepo "github.com/konectfeed/feedsearch/internal/repository/listing"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs           []string
	username        string
	password        string
	keyPrefix       string
	candidateWindow int
	requireFilter   bool
	strategy        strategy.Strategy
	fieldMatch      plan.MatchPolicy
	secondarySort   sortkey.SecondaryKey
	maxLimit        int
	logger          *zap.Logger
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		keyPrefix:       "konectfeed:listing:",
		candidateWindow: listingrepo.DefaultCandidateWindow,
		requireFilter:   true,
		strategy:        strategy.Tokenized,
		fieldMatch:      plan.MatchSubstring,
		secondarySort:   sortkey.SecondaryRating,
		maxLimit:        plan.DefaultMaxLimit,
		logger:          zap.NewNop(),
	}
}

// WithRedis sets the store addresses.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) { c.addrs = addrs }
}

// WithAuth sets store credentials.
func WithAuth(username, password string) Option {
	return func(c *clientConfig) {
		c.username = username
		c.password = password
	}
}

// WithKeyPrefix sets the hash key namespace listings live under.
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) { c.keyPrefix = prefix }
}

// WithCandidateWindow bounds the per-search candidate fetch.
func WithCandidateWindow(n int) Option {
	return func(c *clientConfig) { c.candidateWindow = n }
}

// WithRequireFilter controls whether unfiltered queries are rejected.
func WithRequireFilter(require bool) Option {
	return func(c *clientConfig) { c.requireFilter = require }
}

// WithSubstringStrategy switches free-text search to per-field substring
// matching for stores without a text index.
func WithSubstringStrategy() Option {
	return func(c *clientConfig) { c.strategy = strategy.Substring }
}

// WithExactFieldMatch switches city/category/subcategory filters to exact
// matching.
func WithExactFieldMatch() Option {
	return func(c *clientConfig) { c.fieldMatch = plan.MatchExact }
}

// WithPriceSecondarySort ranks by price ascending instead of rating
// descending after sponsorship and score.
func WithPriceSecondarySort() Option {
	return func(c *clientConfig) { c.secondarySort = sortkey.SecondaryPrice }
}

// WithMaxLimit caps the per-request result count.
func WithMaxLimit(n int) Option {
	return func(c *clientConfig) { c.maxLimit = n }
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}
