package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

// FraudTerm is a fraud phrase the text scanner matches against on-screen
// text, on top of the built-in list.
type FraudTerm struct {
	ID        int64
	Term      string
	Category  string
	AddedBy   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FraudTermRepo is a FraudTerm repository interface.
type FraudTermRepo interface {
	Create(context.Context, *FraudTerm) (*FraudTerm, error)
	Delete(ctx context.Context, term string) error
	FindByTerm(ctx context.Context, term string) (*FraudTerm, error)
	List(ctx context.Context, category string, limit, offset int32) ([]*FraudTerm, error)
	ListAll(context.Context) ([]*FraudTerm, error)
	Count(ctx context.Context, category string) (int64, error)
}

// FraudTermUsecase is a FraudTerm usecase.
type FraudTermUsecase struct {
	repo FraudTermRepo
	log  *log.Helper
}

// NewFraudTermUsecase new a FraudTerm usecase.
func NewFraudTermUsecase(repo FraudTermRepo, logger log.Logger) *FraudTermUsecase {
	return &FraudTermUsecase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// AddTerm adds a new fraud term.
func (uc *FraudTermUsecase) AddTerm(ctx context.Context, term, category, addedBy string) (*FraudTerm, error) {
	uc.log.Infof("AddTerm: %s, category: %s", term, category)
	return uc.repo.Create(ctx, &FraudTerm{
		Term:     term,
		Category: category,
		AddedBy:  addedBy,
	})
}

// RemoveTerm removes a fraud term.
func (uc *FraudTermUsecase) RemoveTerm(ctx context.Context, term string) error {
	uc.log.Infof("RemoveTerm: %s", term)
	return uc.repo.Delete(ctx, term)
}

// ListTerms lists fraud terms.
func (uc *FraudTermUsecase) ListTerms(ctx context.Context, category string, limit, offset int32) ([]*FraudTerm, int64, error) {
	terms, err := uc.repo.List(ctx, category, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.repo.Count(ctx, category)
	if err != nil {
		return nil, 0, err
	}
	return terms, total, nil
}

// GetAllTerms gets all fraud terms for rebuilding the phrase matcher.
func (uc *FraudTermUsecase) GetAllTerms(ctx context.Context) ([]*FraudTerm, error) {
	return uc.repo.ListAll(ctx)
}
