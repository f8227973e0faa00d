package service

import (
	"context"

	"videomod/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
)

// AdminService manages the fraud phrase list.
type AdminService struct {
	termUc       *biz.FraudTermUsecase
	moderationUc *biz.ModerationUsecase
	log          *log.Helper
}

// NewAdminService creates a new AdminService.
func NewAdminService(termUc *biz.FraudTermUsecase, moderationUc *biz.ModerationUsecase, logger log.Logger) *AdminService {
	return &AdminService{
		termUc:       termUc,
		moderationUc: moderationUc,
		log:          log.NewHelper(logger),
	}
}

// FraudTermEntry is the transport shape of a stored fraud term.
type FraudTermEntry struct {
	Term     string `json:"term"`
	Category string `json:"category"`
	AddedBy  string `json:"added_by"`
	AddedAt  int64  `json:"added_at"`
}

// AddFraudTerm stores a new fraud phrase and rebuilds the matcher.
func (s *AdminService) AddFraudTerm(ctx context.Context, term, category, addedBy string) error {
	if _, err := s.termUc.AddTerm(ctx, term, category, addedBy); err != nil {
		return err
	}
	_, err := s.moderationUc.RebuildFraudTerms(ctx)
	return err
}

// RemoveFraudTerm deletes a fraud phrase and rebuilds the matcher.
func (s *AdminService) RemoveFraudTerm(ctx context.Context, term string) error {
	if err := s.termUc.RemoveTerm(ctx, term); err != nil {
		return err
	}
	_, err := s.moderationUc.RebuildFraudTerms(ctx)
	return err
}

// ListFraudTerms lists stored fraud phrases.
func (s *AdminService) ListFraudTerms(ctx context.Context, category string, limit, offset int32) ([]FraudTermEntry, int64, error) {
	terms, total, err := s.termUc.ListTerms(ctx, category, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]FraudTermEntry, len(terms))
	for i, t := range terms {
		entries[i] = FraudTermEntry{
			Term:     t.Term,
			Category: t.Category,
			AddedBy:  t.AddedBy,
			AddedAt:  t.CreatedAt.Unix(),
		}
	}
	return entries, total, nil
}

// RebuildFraudTerms reloads the phrase matcher from the store and
// returns the phrase count.
func (s *AdminService) RebuildFraudTerms(ctx context.Context) (int, error) {
	return s.moderationUc.RebuildFraudTerms(ctx)
}
