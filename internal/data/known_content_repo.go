package data

import (
	"context"
	"sync"

	"videomod/internal/biz"
	"videomod/internal/pkg/engine"
	"videomod/internal/pkg/hash"

	"github.com/go-kratos/kratos/v2/log"
)

type knownContentRepo struct {
	data *Data
	log  *log.Helper
}

// NewKnownContentRepo creates a new KnownContentRepo.
func NewKnownContentRepo(data *Data, logger log.Logger) biz.KnownContentRepo {
	return &knownContentRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// ListAll implements biz.KnownContentRepo.
func (r *knownContentRepo) ListAll(ctx context.Context) ([]*biz.KnownContent, error) {
	rows, err := r.data.Pool.Query(ctx,
		`SELECT id, label, phash FROM known_content ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*biz.KnownContent
	for rows.Next() {
		var kc biz.KnownContent
		var phash int64 // stored as BIGINT
		if err := rows.Scan(&kc.ID, &kc.Label, &phash); err != nil {
			return nil, err
		}
		kc.PHash = uint64(phash)
		entries = append(entries, &kc)
	}
	return entries, rows.Err()
}

// Add implements biz.KnownContentRepo.
func (r *knownContentRepo) Add(ctx context.Context, label string, phash uint64) (*biz.KnownContent, error) {
	var kc biz.KnownContent
	var stored int64
	err := r.data.Pool.QueryRow(ctx, `
		INSERT INTO known_content (label, phash) VALUES ($1, $2)
		RETURNING id, label, phash`,
		label, int64(phash)).Scan(&kc.ID, &kc.Label, &stored)
	if err != nil {
		return nil, err
	}
	kc.PHash = uint64(stored)
	return &kc, nil
}

// Remove implements biz.KnownContentRepo.
func (r *knownContentRepo) Remove(ctx context.Context, id int64) error {
	_, err := r.data.Pool.Exec(ctx, `DELETE FROM known_content WHERE id = $1`, id)
	return err
}

// knownContentIndex is an in-memory snapshot of the known-content corpus
// used for per-frame lookups during analysis. The corpus is small; a
// linear Hamming scan is fine.
type knownContentIndex struct {
	mu      sync.RWMutex
	entries []*biz.KnownContent
	log     *log.Helper
}

// NewKnownContentIndex loads the corpus snapshot. A load failure logs and
// returns an empty index so analysis can proceed without matches.
func NewKnownContentIndex(repo biz.KnownContentRepo, logger log.Logger) engine.KnownContentIndex {
	idx := &knownContentIndex{log: log.NewHelper(logger)}

	entries, err := repo.ListAll(context.Background())
	if err != nil {
		idx.log.Warnf("failed to load known-content corpus: %v", err)
		return idx
	}
	idx.entries = entries
	idx.log.Infof("loaded %d known-content fingerprints", len(entries))
	return idx
}

// FindSimilar implements engine.KnownContentIndex.
func (idx *knownContentIndex) FindSimilar(phash uint64, maxDistance int) (string, int, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	bestLabel := ""
	bestDist := maxDistance + 1
	for _, kc := range idx.entries {
		if d := hash.HammingDistance(phash, kc.PHash); d < bestDist {
			bestLabel, bestDist = kc.Label, d
		}
	}
	if bestDist > maxDistance {
		return "", 0, false
	}
	return bestLabel, bestDist, true
}
