package biz

import (
	"context"
	"fmt"

	"videomod/internal/pkg/bloom"
	"videomod/internal/pkg/engine"
	"videomod/internal/pkg/filter"
	"videomod/internal/pkg/hash"

	"github.com/go-kratos/kratos/v2/log"
)

// ModerationUsecase orchestrates video moderation: duplicate-upload
// short-circuit, pipeline invocation, decision persistence, and fraud
// phrase list maintenance.
type ModerationUsecase struct {
	engine    *engine.Engine
	decisions DecisionRepo
	terms     FraudTermRepo
	seen      *bloom.Filter // optional prefilter over file hashes
	log       *log.Helper
}

// NewModerationUsecase creates a new ModerationUsecase. seen may be nil
// when no redis-backed prefilter is configured.
func NewModerationUsecase(
	eng *engine.Engine,
	decisions DecisionRepo,
	terms FraudTermRepo,
	seen *bloom.Filter,
	logger log.Logger,
) *ModerationUsecase {
	return &ModerationUsecase{
		engine:    eng,
		decisions: decisions,
		terms:     terms,
		seen:      seen,
		log:       log.NewHelper(logger),
	}
}

// ModerateUpload analyzes an uploaded video file and returns the
// decision. A file whose content hash already has a stored decision is
// short-circuited to that decision instead of re-running the pipeline.
func (uc *ModerationUsecase) ModerateUpload(ctx context.Context, path string, cfg engine.ModerationConfig) (*engine.Decision, error) {
	digest, err := hash.DigestFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to hash upload: %w", err)
	}

	if cached := uc.lookupPrior(ctx, digest.Sha256); cached != nil {
		uc.log.Infof("duplicate upload %s, reusing decision %s", digest.Sha256[:12], cached.ID)
		return cached, nil
	}

	decision, err := uc.engine.Moderate(ctx, path, cfg)
	if err != nil {
		return nil, err
	}

	if uc.decisions != nil {
		if err := uc.decisions.Save(ctx, decision); err != nil {
			// Persistence failure does not invalidate the verdict.
			uc.log.Errorf("failed to persist decision %s: %v", decision.ID, err)
		}
	}
	uc.markSeen(ctx, digest.Sha256)

	return decision, nil
}

// lookupPrior checks the bloom prefilter, then the decision store, for a
// prior verdict on the same content hash. Any error degrades to a miss.
func (uc *ModerationUsecase) lookupPrior(ctx context.Context, fileHash string) *engine.Decision {
	if uc.decisions == nil {
		return nil
	}
	if uc.seen != nil {
		ok, err := uc.seen.Exists(ctx, hash.FastHash(fileHash))
		if err != nil {
			uc.log.Warnf("bloom check failed: %v", err)
		} else if !ok {
			// Definite miss, skip the store round trip.
			return nil
		}
	}
	prior, err := uc.decisions.FindLatestByFileHash(ctx, fileHash)
	if err != nil {
		uc.log.Warnf("prior decision lookup failed: %v", err)
		return nil
	}
	return prior
}

func (uc *ModerationUsecase) markSeen(ctx context.Context, fileHash string) {
	if uc.seen == nil {
		return
	}
	if err := uc.seen.Add(ctx, hash.FastHash(fileHash)); err != nil {
		uc.log.Warnf("bloom add failed: %v", err)
	}
}

// GetDecision fetches a persisted decision by id.
func (uc *ModerationUsecase) GetDecision(ctx context.Context, id string) (*engine.Decision, error) {
	return uc.decisions.FindByID(ctx, id)
}

// ListDecisions lists persisted decisions, optionally filtered by
// outcome ("approved"/"rejected").
func (uc *ModerationUsecase) ListDecisions(ctx context.Context, outcome string, limit, offset int32) ([]*engine.Decision, int64, error) {
	decisions, err := uc.decisions.List(ctx, outcome, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.decisions.Count(ctx, outcome)
	if err != nil {
		return nil, 0, err
	}
	return decisions, total, nil
}

// Statistics summarizes the in-process decision history.
func (uc *ModerationUsecase) Statistics() *engine.Statistics {
	return uc.engine.Statistics()
}

// RecentDecisions returns the most recent in-process decisions.
func (uc *ModerationUsecase) RecentDecisions(limit int) []*engine.Decision {
	return uc.engine.RecentDecisions(limit)
}

// ExportHistory serializes the in-process decision history as JSON.
func (uc *ModerationUsecase) ExportHistory() ([]byte, error) {
	return uc.engine.ExportHistory()
}

// ClearHistory discards the in-process decision history. Persisted
// decisions are unaffected.
func (uc *ModerationUsecase) ClearHistory() {
	uc.engine.ClearHistory()
}

// RebuildFraudTerms reloads the fraud phrase matcher from the term store
// layered over the built-in list. Returns the total phrase count.
func (uc *ModerationUsecase) RebuildFraudTerms(ctx context.Context) (int, error) {
	uc.log.Info("rebuilding fraud phrase matcher from store")

	stored, err := uc.terms.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	patterns := engine.BuiltinFraudTerms()
	for _, t := range stored {
		patterns = append(patterns, filter.Pattern{Term: t.Term, Category: t.Category})
	}
	uc.engine.Fraud().SetTerms(patterns)

	uc.log.Infof("rebuilt fraud phrase matcher with %d phrases", len(patterns))
	return len(patterns), nil
}
