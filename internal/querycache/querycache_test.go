package querycache

import "testing"

func TestBuildKeyIsDeterministic(t *testing.T) {
	c := &QueryCache{}
	a := c.buildKey(map[string]any{"term": "lyra", "limit": 10})
	b := c.buildKey(map[string]any{"term": "lyra", "limit": 10})
	if a != b {
		t.Fatalf("expected identical keys, got %q and %q", a, b)
	}
}

func TestBuildKeyDiffersOnInput(t *testing.T) {
	c := &QueryCache{}
	a := c.buildKey(map[string]any{"term": "lyra", "limit": 10})
	b := c.buildKey(map[string]any{"term": "lyra", "limit": 20})
	if a == b {
		t.Fatal("expected different keys for different params")
	}
}

func TestBuildKeyHasPrefix(t *testing.T) {
	c := &QueryCache{}
	key := c.buildKey(map[string]any{"term": "lyra"})
	if len(key) <= len(keyPrefix) || key[:len(keyPrefix)] != keyPrefix {
		t.Fatalf("got %q", key)
	}
}
