package cache

import (
	"sync"
	"testing"
)

func TestGetOrCreateBuildsOnce(t *testing.T) {
	c := New[string, int](0)

	calls := 0
	build := func() int {
		calls++
		return 42
	}

	for i := 0; i < 5; i++ {
		if v := c.GetOrCreate("decode/2.2", build); v != 42 {
			t.Fatalf("GetOrCreate = %d, want 42", v)
		}
	}
	if calls != 1 {
		t.Errorf("build called %d times, want 1", calls)
	}
	if c.Builds() != 1 {
		t.Errorf("Builds() = %d, want 1", c.Builds())
	}
	if v, ok := c.Get("decode/2.2"); !ok || v != 42 {
		t.Errorf("Get = %d, %v; want 42, true", v, ok)
	}
	if _, ok := c.Get("encode/0.45"); ok {
		t.Error("Get found a key that was never created")
	}
}

func TestEvictionKeepsRecent(t *testing.T) {
	c := New[int, int](4)

	for i := 0; i < 4; i++ {
		c.GetOrCreate(i, func() int { return i })
	}
	// Touch 3 so it is the most recent.
	c.Get(3)
	c.GetOrCreate(4, func() int { return 4 })

	if n := c.Len(); n > 4 {
		t.Errorf("Len() = %d, want <= 4 after eviction", n)
	}
	if _, ok := c.Get(3); !ok {
		t.Error("recently used entry was evicted")
	}
	if _, ok := c.Get(4); !ok {
		t.Error("newest entry was evicted")
	}
	if _, ok := c.Get(0); ok {
		t.Error("oldest entry survived eviction")
	}
}

func TestClear(t *testing.T) {
	c := New[int, int](0)
	c.GetOrCreate(1, func() int { return 1 })
	c.Clear()
	if c.Len() != 0 || c.Builds() != 0 {
		t.Errorf("after Clear: Len=%d Builds=%d", c.Len(), c.Builds())
	}
}

func TestConcurrentGetOrCreate(t *testing.T) {
	c := New[int, int](0)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				c.GetOrCreate(i%4, func() int { return i % 4 })
			}
		}()
	}
	wg.Wait()

	if b := c.Builds(); b != 4 {
		t.Errorf("Builds() = %d, want 4", b)
	}
}
