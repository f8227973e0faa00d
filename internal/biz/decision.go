package biz

import (
	"context"

	"videomod/internal/pkg/engine"
)

// DecisionRepo persists moderation decisions. The engine keeps its own
// in-memory history; the repo is the durable record.
type DecisionRepo interface {
	Save(ctx context.Context, decision *engine.Decision) error
	FindByID(ctx context.Context, id string) (*engine.Decision, error)
	// FindLatestByFileHash returns the most recent decision for a file
	// content hash, or nil when the file has never been moderated.
	FindLatestByFileHash(ctx context.Context, fileHash string) (*engine.Decision, error)
	List(ctx context.Context, outcome string, limit, offset int32) ([]*engine.Decision, error)
	Count(ctx context.Context, outcome string) (int64, error)
}

// KnownContent is one fingerprinted entry of the copyrighted-content
// corpus the copyright extractor matches sampled frames against.
type KnownContent struct {
	ID    int64
	Label string
	PHash uint64
}

// KnownContentRepo stores the known-content corpus.
type KnownContentRepo interface {
	ListAll(ctx context.Context) ([]*KnownContent, error)
	Add(ctx context.Context, label string, phash uint64) (*KnownContent, error)
	Remove(ctx context.Context, id int64) error
}
