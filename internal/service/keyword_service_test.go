package service

import (
	"context"
	"reflect"
	"testing"
)

type stubKeywordSource struct {
	values []*string
}

func (s *stubKeywordSource) KeywordValues(context.Context) ([]*string, error) {
	return s.values, nil
}

func strp(s string) *string { return &s }

func TestKeywordsNormalized(t *testing.T) {
	source := &stubKeywordSource{values: []*string{
		strp("Go, rust"),
		strp("RUST, go "),
		nil,
		strp(""),
		strp(" ,  , databases"),
	}}
	svc := NewKeywordService(source)

	got, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	want := []string{"databases", "go", "rust"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("keywords = %v, want %v", got, want)
	}
}

func TestKeywordsIdempotent(t *testing.T) {
	source := &stubKeywordSource{values: []*string{strp("a,b"), strp("B, c")}}
	svc := NewKeywordService(source)

	first, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	second, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated calls differ: %v vs %v", first, second)
	}
}

func TestKeywordsEmptySource(t *testing.T) {
	svc := NewKeywordService(&stubKeywordSource{})
	got, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}
