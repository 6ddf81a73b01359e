package parsecache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/jsparse/lexer"
	"github.com/example/jsparse/parser"
)

func TestParseCache(t *testing.T) {
	c, err := New(100)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len(), "parse cache should be empty on start")

	// add ten entries
	for i := 0; i < 10; i++ {
		_, err := c.Parse(fmt.Sprintf("a%d = %d;", i, i))
		require.NoError(t, err)
	}
	assert.Equal(t, 10, c.Len(), "parse cache should have ten entries")

	// parsing the same sources should not add entries
	for i := 0; i < 10; i++ {
		_, err := c.Parse(fmt.Sprintf("a%d = %d;", i, i))
		require.NoError(t, err)
	}
	assert.Equal(t, 10, c.Len(), "parse cache should have ten entries")
	assert.Equal(t, Stats{Hits: 10, Misses: 10}, c.Stats())

	c.Purge()
	assert.Equal(t, 0, c.Len(), "parse cache should be empty after purge")
}

func TestSharedProgram(t *testing.T) {
	c, err := New(10)
	require.NoError(t, err)

	first, err := c.Parse("f(1);")
	require.NoError(t, err)
	second, err := c.Parse("f(1);")
	require.NoError(t, err)
	assert.True(t, first == second, "expected the cached program to be returned")

	other, err := c.Parse("f(2);")
	require.NoError(t, err)
	assert.False(t, first == other)
}

func TestFailuresAreCached(t *testing.T) {
	c, err := New(10)
	require.NoError(t, err)

	_, err = c.Parse("return;")
	require.Error(t, err)
	assert.IsType(t, &parser.SyntaxError{}, errors.Cause(err))

	_, again := c.Parse("return;")
	assert.Equal(t, err, again)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, Stats{Hits: 1, Misses: 1}, c.Stats())

	_, err = c.Parse("x = 'open")
	require.Error(t, err)
	assert.IsType(t, &lexer.Error{}, errors.Cause(err))
}

func TestEviction(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	for _, src := range []string{"a;", "b;", "c;"} {
		_, err := c.Parse(src)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Len())

	// "a;" was evicted and is parsed again
	_, err = c.Parse("a;")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), c.Stats().Misses)
}

func TestInvalidSize(t *testing.T) {
	c, err := New(0)
	assert.Nil(t, c)
	assert.Error(t, err)
}

func TestConcurrentParse(t *testing.T) {
	c, err := New(DefaultSize)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, err := c.Parse(fmt.Sprintf("x = %d;", j%5))
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, c.Len())
	stats := c.Stats()
	assert.Equal(t, uint64(400), stats.Hits+stats.Misses)
}
