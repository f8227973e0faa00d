package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"videomod/internal/biz"
	"videomod/internal/pkg/engine"
	pkgredis "videomod/internal/pkg/redis"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5"
)

// verdictCacheTTL bounds how long a cached verdict can outlive its row.
const verdictCacheTTL = 24 * time.Hour

type decisionRepo struct {
	data  *Data
	cache pkgredis.Cache
	log   *log.Helper
}

// NewDecisionRepo creates a new DecisionRepo. Verdicts for recently seen
// file hashes are cached in redis so repeat uploads skip postgres.
func NewDecisionRepo(data *Data, cache pkgredis.Cache, logger log.Logger) biz.DecisionRepo {
	return &decisionRepo{
		data:  data,
		cache: cache,
		log:   log.NewHelper(logger),
	}
}

const decisionColumns = `id, video_path, outcome, confidence, reasoning, violations,
	overall_risk_score, analysis_details, config_used, processed_at, processing_time`

// Save implements biz.DecisionRepo.
func (r *decisionRepo) Save(ctx context.Context, d *engine.Decision) error {
	violations, err := json.Marshal(d.Violations)
	if err != nil {
		return fmt.Errorf("failed to encode violations: %w", err)
	}
	details, err := json.Marshal(d.AnalysisDetails)
	if err != nil {
		return fmt.Errorf("failed to encode analysis details: %w", err)
	}
	cfg, err := json.Marshal(d.ConfigUsed)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	fileHash := ""
	if d.AnalysisDetails != nil && d.AnalysisDetails.FileInfo != nil {
		fileHash = d.AnalysisDetails.FileInfo.FileHash
	}

	_, err = r.data.Pool.Exec(ctx, `
		INSERT INTO decisions (id, video_path, outcome, confidence, reasoning, violations,
			overall_risk_score, analysis_details, config_used, file_hash, processed_at, processing_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		d.ID, d.VideoPath, d.Outcome, d.Confidence, d.Reasoning, violations,
		d.OverallRiskScore, details, cfg, fileHash, d.ProcessedAt, d.ProcessingTime,
	)
	if err != nil {
		return err
	}
	if fileHash != "" {
		r.cacheVerdict(ctx, fileHash, d)
	}
	return nil
}

// FindByID implements biz.DecisionRepo.
func (r *decisionRepo) FindByID(ctx context.Context, id string) (*engine.Decision, error) {
	row := r.data.Pool.QueryRow(ctx,
		`SELECT `+decisionColumns+` FROM decisions WHERE id = $1`, id)
	return scanDecision(row)
}

// FindLatestByFileHash implements biz.DecisionRepo.
func (r *decisionRepo) FindLatestByFileHash(ctx context.Context, fileHash string) (*engine.Decision, error) {
	if cached := r.cachedVerdict(ctx, fileHash); cached != nil {
		return cached, nil
	}

	row := r.data.Pool.QueryRow(ctx,
		`SELECT `+decisionColumns+` FROM decisions
		 WHERE file_hash = $1 ORDER BY processed_at DESC LIMIT 1`, fileHash)
	d, err := scanDecision(row)
	if err == nil && d != nil {
		r.cacheVerdict(ctx, fileHash, d)
	}
	return d, err
}

func verdictKey(fileHash string) string {
	return "videomod:verdict:" + fileHash
}

// cachedVerdict returns the cached decision for a file hash, or nil on
// any miss or cache error.
func (r *decisionRepo) cachedVerdict(ctx context.Context, fileHash string) *engine.Decision {
	if r.cache == nil || fileHash == "" {
		return nil
	}
	raw, err := r.cache.GetBytes(ctx, verdictKey(fileHash))
	if err != nil || len(raw) == 0 {
		return nil
	}
	var d engine.Decision
	if err := json.Unmarshal(raw, &d); err != nil {
		r.log.Warnf("corrupt cached verdict for %s: %v", fileHash, err)
		return nil
	}
	return &d
}

func (r *decisionRepo) cacheVerdict(ctx context.Context, fileHash string, d *engine.Decision) {
	if r.cache == nil {
		return
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return
	}
	if err := r.cache.SetBytes(ctx, verdictKey(fileHash), raw, verdictCacheTTL); err != nil {
		r.log.Warnf("failed to cache verdict for %s: %v", fileHash, err)
	}
}

// List implements biz.DecisionRepo.
func (r *decisionRepo) List(ctx context.Context, outcome string, limit, offset int32) ([]*engine.Decision, error) {
	var rows pgx.Rows
	var err error

	if outcome != "" {
		rows, err = r.data.Pool.Query(ctx,
			`SELECT `+decisionColumns+` FROM decisions
			 WHERE outcome = $1 ORDER BY processed_at DESC LIMIT $2 OFFSET $3`,
			outcome, limit, offset)
	} else {
		rows, err = r.data.Pool.Query(ctx,
			`SELECT `+decisionColumns+` FROM decisions
			 ORDER BY processed_at DESC LIMIT $1 OFFSET $2`,
			limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decisions []*engine.Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

// Count implements biz.DecisionRepo.
func (r *decisionRepo) Count(ctx context.Context, outcome string) (int64, error) {
	var total int64
	var err error
	if outcome != "" {
		err = r.data.Pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM decisions WHERE outcome = $1`, outcome).Scan(&total)
	} else {
		err = r.data.Pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM decisions`).Scan(&total)
	}
	return total, err
}

// scanDecision reads one decision row, reassembling the JSONB columns. A
// missing row maps to (nil, nil).
func scanDecision(row pgx.Row) (*engine.Decision, error) {
	var d engine.Decision
	var violations, details, cfg []byte

	err := row.Scan(&d.ID, &d.VideoPath, &d.Outcome, &d.Confidence, &d.Reasoning, &violations,
		&d.OverallRiskScore, &details, &cfg, &d.ProcessedAt, &d.ProcessingTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(violations, &d.Violations); err != nil {
		return nil, fmt.Errorf("failed to decode violations: %w", err)
	}
	if err := json.Unmarshal(details, &d.AnalysisDetails); err != nil {
		return nil, fmt.Errorf("failed to decode analysis details: %w", err)
	}
	if err := json.Unmarshal(cfg, &d.ConfigUsed); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &d, nil
}
