package lrucache

import "testing"

func TestPutGetRoundTrip(t *testing.T) {
	c := New[string](2)
	if _, evicted := c.Put("a", "A"); evicted {
		t.Fatal("unexpected eviction on first insert")
	}
	v, ok := c.Get("a")
	if !ok || v != "A" {
		t.Fatalf("Get(a) = %q, %v; want A, true", v, ok)
	}
}

func TestPutEvictsFrontOfRecency(t *testing.T) {
	// With capacity 2, a, b, c inserted in order should evict a when c
	// arrives.
	c := New[string](2)
	c.Put("a", "A")
	c.Put("b", "B")
	evictedKey, evicted := c.Put("c", "C")
	if !evicted || evictedKey != "a" {
		t.Fatalf("Put(c) evicted=%v key=%q; want true, \"a\"", evicted, evictedKey)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("evicted key a still present")
	}
}

func TestGetMovesToBack(t *testing.T) {
	c := New[string](2)
	c.Put("a", "A")
	c.Put("b", "B")
	// Touch a so b becomes the least-recently-used entry.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a present")
	}
	evictedKey, evicted := c.Put("c", "C")
	if !evicted || evictedKey != "b" {
		t.Fatalf("Put(c) evicted=%v key=%q; want true, \"b\"", evicted, evictedKey)
	}
}

func TestPutSameKeyNoEviction(t *testing.T) {
	c := New[string](1)
	c.Put("a", "A")
	if _, evicted := c.Put("a", "A2"); evicted {
		t.Fatal("overwrite of present key must never evict")
	}
	v, _ := c.Get("a")
	if v != "A2" {
		t.Fatalf("Get(a) = %q, want A2", v)
	}
}

func TestPutSameKeySameValueStillTouchesRecency(t *testing.T) {
	c := New[string](2)
	c.Put("a", "A")
	c.Put("b", "B")
	c.Put("a", "A") // same key, same value: must still move a to the back
	evictedKey, evicted := c.Put("c", "C")
	if !evicted || evictedKey != "b" {
		t.Fatalf("Put(c) evicted=%v key=%q; want true, \"b\"", evicted, evictedKey)
	}
}

func TestRemove(t *testing.T) {
	c := New[string](2)
	c.Put("a", "A")
	c.Remove("a")
	if c.Len() != 0 {
		t.Fatalf("Len() = %d after Remove, want 0", c.Len())
	}
	c.Remove("a") // no-op, must not panic
}

func TestIsFull(t *testing.T) {
	c := New[string](1)
	if c.IsFull() {
		t.Fatal("empty cache reported full")
	}
	c.Put("a", "A")
	if !c.IsFull() {
		t.Fatal("cache at capacity not reported full")
	}
}

func TestNewPanicsOnZeroCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero capacity")
		}
	}()
	New[string](0)
}

func TestKeysOrderLRUToMRU(t *testing.T) {
	c := New[string](3)
	c.Put("a", "A")
	c.Put("b", "B")
	c.Put("c", "C")
	c.Get("a") // a becomes most recently used
	got := c.Keys()
	want := []string{"b", "c", "a"}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", got, want)
		}
	}
}

func TestLRUBoundInvariant(t *testing.T) {
	c := New[string](4)
	for i := 0; i < 100; i++ {
		c.Put(string(rune('a'+i%26)), "v")
		if c.Len() > 4 {
			t.Fatalf("Len() = %d exceeds capacity 4", c.Len())
		}
	}
}
