package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	if err := s.Set(ctx, "key", []string{"Q1"}); err != nil {
		t.Errorf("Set error: %v", err)
	}

	var got []string
	hit, err := s.Get(ctx, "key", &got)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullStore should not store data")
	}
	if err := s.Flush(ctx); err != nil {
		t.Errorf("Flush error: %v", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "qid_to_parents.json")

	s, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("OpenFileStore() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}

	if err := s.Set(ctx, "Q33", []string{"Q79890"}); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := s.Set(ctx, "Q1412", []string{}); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Nothing on disk until Flush.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file exists before Flush: %v", err)
	}

	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush error: %v", err)
	}

	reopened, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("OpenFileStore() error = %v", err)
	}
	var parents []string
	hit, err := reopened.Get(ctx, "Q33", &parents)
	if err != nil || !hit {
		t.Fatalf("Get(Q33) = %v, %v; want hit", hit, err)
	}
	if len(parents) != 1 || parents[0] != "Q79890" {
		t.Errorf("Get(Q33) = %v, want [Q79890]", parents)
	}

	var empty []string
	hit, _ = reopened.Get(ctx, "Q1412", &empty)
	if !hit {
		t.Error("cached empty result should be a hit")
	}

	if got := reopened.Keys(); len(got) != 2 || got[0] != "Q1412" {
		t.Errorf("Keys() = %v, want [Q1412 Q33]", got)
	}
}

func TestFileStoreCloseFlushes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "labels.json")
	s, err := OpenFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Set(context.Background(), "Uralic", "Q79890")
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Close() did not write file: %v", err)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFileStore(path); err == nil {
		t.Error("OpenFileStore() should fail on corrupt file")
	}
}

func TestScoped(t *testing.T) {
	ctx := context.Background()
	inner, err := OpenFileStore(filepath.Join(t.TempDir(), "shared.json"))
	if err != nil {
		t.Fatal(err)
	}

	labels := NewScoped(inner, "label:")
	if err := labels.Set(ctx, "Q33", "Finno-Ugric"); err != nil {
		t.Fatal(err)
	}

	var got string
	if hit, _ := inner.Get(ctx, "label:Q33", &got); !hit || got != "Finno-Ugric" {
		t.Errorf("inner Get(label:Q33) = %q, %v", got, hit)
	}
	if hit, _ := inner.Get(ctx, "Q33", &got); hit {
		t.Error("unprefixed key should miss")
	}

	if NewScoped(nil, "x:") == nil {
		t.Error("NewScoped(nil) returned nil")
	}
}

func TestRange(t *testing.T) {
	ctx := context.Background()
	inner, err := OpenFileStore(filepath.Join(t.TempDir(), "shared.json"))
	if err != nil {
		t.Fatal(err)
	}
	_ = inner.Set(ctx, "cache_label_to_qid:Uralic", "Q1")
	_ = inner.Set(ctx, "cache_label_to_qid:Finnic", "Q2")
	_ = inner.Set(ctx, "cache_qid_to_label:Q1", "Uralic")

	got := map[string]string{}
	var order []string
	ok, err := Range(ctx, NewScoped(inner, "cache_label_to_qid:"), func(key string, decode func(any) error) error {
		var id string
		if err := decode(&id); err != nil {
			return err
		}
		got[key] = id
		order = append(order, key)
		return nil
	})
	if !ok || err != nil {
		t.Fatalf("Range() = %v, %v", ok, err)
	}
	if len(got) != 2 || got["Uralic"] != "Q1" || got["Finnic"] != "Q2" {
		t.Errorf("Range() entries = %v", got)
	}
	if order[0] != "Finnic" {
		t.Errorf("Range() order = %v, want key order", order)
	}

	if ok, _ := Range(ctx, NewNullStore(), func(string, func(any) error) error { return nil }); ok {
		t.Error("Range(NullStore) should report false")
	}
}
