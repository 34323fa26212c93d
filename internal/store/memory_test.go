package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"iotshop/internal/domain"
)

func TestMemoryGetMissing(t *testing.T) {
	kv := NewMemory()
	_, err := kv.Get(context.Background(), "cart:none")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemorySetGetDelete(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()

	if err := kv.Set(ctx, "cart:s1", []byte(`{"items":[]}`), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := kv.Get(ctx, "cart:s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"items":[]}` {
		t.Fatalf("unexpected value %q", got)
	}

	if err := kv.Delete(ctx, "cart:s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kv.Get(ctx, "cart:s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestMemoryValueIsCopied(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()

	src := []byte("original")
	if err := kv.Set(ctx, "k", src, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	src[0] = 'X'

	got, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "original" {
		t.Fatalf("stored value aliased caller buffer: %q", got)
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()

	if err := kv.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := kv.Get(ctx, "k"); err != nil {
		t.Fatalf("get before expiry: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if _, err := kv.Get(ctx, "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after ttl, got %v", err)
	}
}
