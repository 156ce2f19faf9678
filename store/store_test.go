package store

import (
	"context"
	"testing"
)

// testStoreContract exercises the behaviour every Store implementation shares.
func testStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("load unknown namespace", func(t *testing.T) {
		s := newStore(t)
		r, err := s.Load(context.Background(), "com.example.unknown")
		if err != nil {
			t.Fatal(err)
		}
		if r.Len() != 0 {
			t.Errorf("unknown namespace: got %d values, want 0", r.Len())
		}
		if got := r.Int("launch_count", 7); got != 7 {
			t.Errorf("default int: got %d, want 7", got)
		}
	})

	t.Run("commit and load", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		batch := NewRecord()
		batch.SetInt("launch_count", 3)
		batch.SetInt("first_launch_date", 1705329000000)
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
		if got := r.Int("first_launch_date", 0); got != 1705329000000 {
			t.Errorf("first_launch_date: got %d, want 1705329000000", got)
		}
		if got := r.Int("app_version_code", 0); got != -2147483648 {
			t.Errorf("app_version_code: got %d, want -2147483648", got)
		}
		if got := r.Bool("do_not_show_again", false); !got {
			t.Error("do_not_show_again: got false, want true")
		}
	})

	t.Run("commit merges", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		first := NewRecord()
		first.SetInt("launch_count", 1)
		first.SetInt("version_launch_count", 1)
		s.Commit(ctx, "app", first)

		second := NewRecord()
		second.SetInt("launch_count", 2)
		second.SetBool("do_not_show_again", false)
		s.Commit(ctx, "app", second)

		r, err := s.Load(ctx, "app")
		if err != nil {
			t.Fatal(err)
		}
		if got := r.Int("launch_count", 0); got != 2 {
			t.Errorf("launch_count: got %d, want 2", got)
		}
		if got := r.Int("version_launch_count", 0); got != 1 {
			t.Errorf("untouched version_launch_count: got %d, want 1", got)
		}
		if _, ok := r.Bools["do_not_show_again"]; !ok {
			t.Error("expected do_not_show_again to be stored")
		}
	})

	t.Run("namespaces are isolated", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		a := NewRecord()
		a.SetInt("launch_count", 10)
		s.Commit(ctx, "app.a", a)

		r, _ := s.Load(ctx, "app.b")
		if r.Len() != 0 {
			t.Errorf("app.b: got %d values, want 0", r.Len())
		}
	})

	t.Run("reset", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		batch := NewRecord()
		batch.SetInt("launch_count", 5)
		s.Commit(ctx, "app", batch)

		if err := s.Reset(ctx, "app"); err != nil {
			t.Fatal(err)
		}

		r, _ := s.Load(ctx, "app")
		if got := r.Int("launch_count", 0); got != 0 {
			t.Errorf("after reset: got %d, want 0", got)
		}
	})

	t.Run("loaded record is a copy", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		batch := NewRecord()
		batch.SetInt("launch_count", 1)
		s.Commit(ctx, "app", batch)

		r, _ := s.Load(ctx, "app")
		r.SetInt("launch_count", 99)

		again, _ := s.Load(ctx, "app")
		if got := again.Int("launch_count", 0); got != 1 {
			t.Errorf("store mutated through loaded record: got %d, want 1", got)
		}
	})
}
