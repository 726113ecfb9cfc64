package trace

import (
	"strings"
	"testing"
)

func TestReaderNext(t *testing.T) {
	r := New(strings.NewReader("a\nb\nc"), 0)

	var got []string
	for {
		line, ok, err := r.Next()
		if err != nil {
			t.Fatalf("Next: %s", err)
		}
		if !ok {
			break
		}
		got = append(got, line)
	}

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReaderEmpty(t *testing.T) {
	r := New(strings.NewReader(""), 0)
	_, ok, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %s", err)
	}
	if ok {
		t.Fatal("expected EOF on empty input")
	}
}

func TestReaderMaxLineBytes(t *testing.T) {
	r := New(strings.NewReader(strings.Repeat("x", 300)), 256)
	_, _, err := r.Next()
	if err == nil {
		t.Fatal("expected an error for a line exceeding the configured bound")
	}
}
