package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/ryhazerus/appirater/store"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStoreCommitAndLoad(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()

	batch := store.NewRecord()
	batch.SetInt("launch_count", 3)
	batch.SetInt("app_version_code", -2147483648)
	batch.SetBool("do_not_show_again", true)
	if err := s.Commit(ctx, "com.example.app", batch); err != nil {
		t.Fatal(err)
	}

	r, err := s.Load(ctx, "com.example.app")
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Int("launch_count", 0); got != 3 {
		t.Errorf("launch_count: got %d, want 3", got)
	}
	if got := r.Int("app_version_code", 0); got != -2147483648 {
		t.Errorf("app_version_code: got %d, want -2147483648", got)
	}
	if !r.Bool("do_not_show_again", false) {
		t.Error("do_not_show_again: got false, want true")
	}
}

func TestRedisStoreLoadUnknown(t *testing.T) {
	s, _ := newTestRedisStore(t)

	r, err := s.Load(context.Background(), "missing")
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != 0 {
		t.Errorf("unknown namespace: got %d values, want 0", r.Len())
	}
}

func TestRedisStoreCommitMerges(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()

	first := store.NewRecord()
	first.SetInt("launch_count", 1)
	first.SetInt("version_launch_count", 1)
	s.Commit(ctx, "app", first)

	second := store.NewRecord()
	second.SetInt("launch_count", 2)
	s.Commit(ctx, "app", second)

	r, _ := s.Load(ctx, "app")
	if got := r.Int("launch_count", 0); got != 2 {
		t.Errorf("launch_count: got %d, want 2", got)
	}
	if got := r.Int("version_launch_count", 0); got != 1 {
		t.Errorf("version_launch_count: got %d, want 1", got)
	}
}

func TestRedisStoreLayout(t *testing.T) {
	s, mr := newTestRedisStore(t)

	batch := store.NewRecord()
	batch.SetInt("launch_count", 7)
	if err := s.Commit(context.Background(), "app", batch); err != nil {
		t.Fatal(err)
	}

	if got := mr.HGet("appirater:app", "i:launch_count"); got != "7" {
		t.Errorf("hash field: got %q, want %q", got, "7")
	}
}

func TestRedisStoreReset(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()

	batch := store.NewRecord()
	batch.SetInt("launch_count", 5)
	s.Commit(ctx, "app", batch)
	s.Reset(ctx, "app")

	r, _ := s.Load(ctx, "app")
	if got := r.Int("launch_count", 0); got != 0 {
		t.Errorf("after reset: got %d, want 0", got)
	}
}
