package cache

import (
	"testing"
	"time"
)

func TestTTL_SetGet(t *testing.T) {
	c := NewTTL[int](time.Minute)
	c.Set("a", 42)

	v, ok := c.Get("a")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
}

func TestTTL_MissOnUnknownKey(t *testing.T) {
	c := NewTTL[string](time.Minute)
	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestTTL_Expiry(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTL[int](time.Minute).WithClock(func() time.Time { return current })

	c.Set("a", 1)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected hit before expiry")
	}

	current = current.Add(61 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("expected miss after expiry")
	}
	if c.Len() != 0 {
		t.Errorf("expected expired entry evicted on read, got len %d", c.Len())
	}
}

func TestTTL_ZeroTTLDisablesCaching(t *testing.T) {
	c := NewTTL[int](0)
	c.Set("a", 1)
	if _, ok := c.Get("a"); ok {
		t.Error("expected disabled cache to always miss")
	}
	if c.Len() != 0 {
		t.Errorf("expected nothing stored, got len %d", c.Len())
	}
}

func TestTTL_NilReceiverSafe(t *testing.T) {
	var c *TTL[int]
	c.Set("a", 1)
	if _, ok := c.Get("a"); ok {
		t.Error("expected nil cache to miss")
	}
	if c.Purge() != 0 || c.Len() != 0 {
		t.Error("expected nil cache to report zero entries")
	}
}

func TestTTL_Purge(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTL[int](time.Minute).WithClock(func() time.Time { return current })

	c.Set("old", 1)
	current = current.Add(30 * time.Second)
	c.Set("fresh", 2)
	current = current.Add(45 * time.Second) // "old" expired, "fresh" not

	if remain := c.Purge(); remain != 1 {
		t.Errorf("expected 1 entry remaining, got %d", remain)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("expected fresh entry to survive purge")
	}
}
