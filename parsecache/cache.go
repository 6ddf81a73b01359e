// Package parsecache memoizes parse results by source content.
package parsecache

import (
	"sync/atomic"

	spooky "github.com/dgryski/go-spooky"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/example/jsparse/ast"
	"github.com/example/jsparse/parser"
)

// DefaultSize is the number of programs kept by a cache built with New.
const DefaultSize = 1000

// Cache is an LRU cache of parse results keyed by a hash of the source.
// Failures are cached as well as successes. Programs returned from the
// cache are shared and must not be modified. Cache is safe for concurrent
// use.
type Cache struct {
	hits   uint64 // first for 64-bit atomic alignment
	misses uint64

	entries *lru.Cache
	opts    parser.Options
}

type parseEntry struct {
	prog *ast.Program
	err  error
}

// Stats counts cache lookups.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// New returns a cache holding up to size programs parsed with
// parser.DefaultOptions.
func New(size int) (*Cache, error) {
	return NewWithOptions(size, parser.DefaultOptions)
}

// NewWithOptions returns a cache holding up to size programs parsed
// with opts.
func NewWithOptions(size int, opts parser.Options) (*Cache, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrapf(err, "creating parse cache of size %d", size)
	}
	return &Cache{entries: entries, opts: opts}, nil
}

// Parse returns the cached result for src, parsing it on a miss. Errors
// are wrapped; errors.Cause returns the *lexer.Error or *parser.SyntaxError.
func (c *Cache) Parse(src string) (*ast.Program, error) {
	hash := hashContents(src)
	if v, ok := c.entries.Get(hash); ok {
		atomic.AddUint64(&c.hits, 1)
		entry := v.(*parseEntry)
		return entry.prog, entry.err
	}
	atomic.AddUint64(&c.misses, 1)

	prog, err := parser.ParseWithOptions(src, c.opts)
	if err != nil {
		err = errors.Wrapf(err, "parsing source %016x", hash)
	}
	c.entries.Add(hash, &parseEntry{prog: prog, err: err})
	return prog, err
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached result.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Stats returns the lookup counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:   atomic.LoadUint64(&c.hits),
		Misses: atomic.LoadUint64(&c.misses),
	}
}

func hashContents(src string) uint64 {
	return spooky.Hash64([]byte(src))
}
