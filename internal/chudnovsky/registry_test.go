package chudnovsky

import (
	"reflect"
	"testing"
)

func TestDefaultFactory(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	if got, want := f.List(), []string{"chunked", "sequential"}; !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
	if !f.Has("sequential") || f.Has("leibniz") {
		t.Error("Has reports the wrong registrations")
	}

	a, err := f.Get("chunked")
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.Get("chunked")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("Get should cache engine instances")
	}
	if a.Name() != "chunked" {
		t.Errorf("Name() = %q", a.Name())
	}

	if _, err := f.Get("leibniz"); err == nil {
		t.Error("expected error for unknown engine")
	}
}

func TestFactoryRegisterReplaces(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	before, _ := f.Get("sequential")
	f.Register("sequential", func() coreEngine { return stubCore{name: "sequential"} })
	after, err := f.Get("sequential")
	if err != nil {
		t.Fatal(err)
	}
	if before == after {
		t.Error("Register should drop the cached engine")
	}
}

func TestChunkRanges(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		offset  uint64
		workers int
		size    int
		limit   uint64
		want    []chunk
	}{
		{"full batch", 0, 3, 4, 0, []chunk{{1, 4}, {5, 4}, {9, 4}}},
		{"later batch", 12, 2, 5, 0, []chunk{{13, 5}, {18, 5}}},
		{"limit truncates last chunk", 0, 3, 4, 10, []chunk{{1, 4}, {5, 4}, {9, 2}}},
		{"limit drops idle workers", 0, 4, 5, 7, []chunk{{1, 5}, {6, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := chunkRanges(tt.offset, tt.workers, tt.size, tt.limit)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("chunkRanges() = %v, want %v", got, tt.want)
			}
		})
	}
}
