package cellval

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringCache_InternReturnsSameString(t *testing.T) {
	cache := NewStringCache(0)
	a := cache.Intern("hello")
	b := cache.Intern("hello")
	assert.Equal(t, "hello", a)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, cache.Len())
}

func TestStringCache_EmptyStringBypassed(t *testing.T) {
	cache := NewStringCache(0)
	assert.Equal(t, "", cache.Intern(""))
	assert.Equal(t, 0, cache.Len())
}

func TestStringCache_LongStringBypassed(t *testing.T) {
	cache := NewStringCache(0)
	long := strings.Repeat("x", 101)
	assert.Equal(t, long, cache.Intern(long))
	assert.Equal(t, 0, cache.Len())
}

func TestStringCache_CapacityBound(t *testing.T) {
	cache := NewStringCache(10)
	for i := 0; i < 100; i++ {
		cache.Intern(fmt.Sprintf("value-%d", i))
	}
	assert.Equal(t, 10, cache.Len())

	// Entries inserted before the cap still hit.
	assert.Equal(t, "value-0", cache.Intern("value-0"))
	assert.Equal(t, 10, cache.Len())
}

func TestStringCache_ConcurrentPopulation(t *testing.T) {
	cache := NewStringCache(1000)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				got := cache.Intern(fmt.Sprintf("shared-%d", i%100))
				assert.Equal(t, fmt.Sprintf("shared-%d", i%100), got)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, cache.Len())
}

func TestNewStringCache_DefaultCapacity(t *testing.T) {
	cache := NewStringCache(-5)
	assert.Equal(t, int64(DefaultCacheCapacity), cache.capacity)
}
