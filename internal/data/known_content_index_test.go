package data

import (
	"context"
	"testing"

	"videomod/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
)

type staticKnownContent []*biz.KnownContent

func (s staticKnownContent) ListAll(context.Context) ([]*biz.KnownContent, error) {
	return s, nil
}

func (s staticKnownContent) Add(context.Context, string, uint64) (*biz.KnownContent, error) {
	return nil, nil
}

func (s staticKnownContent) Remove(context.Context, int64) error { return nil }

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestKnownContentIndexFindSimilar(t *testing.T) {
	corpus := staticKnownContent{
		{ID: 1, Label: "film-a", PHash: 0xF0F0F0F0F0F0F0F0},
		{ID: 2, Label: "film-b", PHash: 0x0000000000000000},
	}
	idx := NewKnownContentIndex(corpus, log.NewStdLogger(discard{}))

	// Exact match.
	label, dist, ok := idx.FindSimilar(0xF0F0F0F0F0F0F0F0, 10)
	if !ok || label != "film-a" || dist != 0 {
		t.Errorf("exact match = %q/%d/%v, want film-a/0/true", label, dist, ok)
	}

	// Within distance: flip 3 bits of film-b.
	label, dist, ok = idx.FindSimilar(0x0000000000000007, 10)
	if !ok || label != "film-b" || dist != 3 {
		t.Errorf("near match = %q/%d/%v, want film-b/3/true", label, dist, ok)
	}

	// Outside distance: halfway between the two entries.
	if _, _, ok := idx.FindSimilar(0xFFFF0000FFFF0000, 5); ok {
		t.Error("distant hash matched")
	}
}

func TestKnownContentIndexEmptyCorpus(t *testing.T) {
	idx := NewKnownContentIndex(staticKnownContent{}, log.NewStdLogger(discard{}))
	if _, _, ok := idx.FindSimilar(42, 64); ok {
		t.Error("empty corpus produced a match")
	}
}
