// Package engine implements the frame-sampling analysis pipeline and
// decision aggregation for uploaded videos: five independent heuristic
// signal extractors, a threshold-based aggregator, confidence estimation,
// and an append-only in-process decision history.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"videomod/internal/pkg/facedet"
	"videomod/internal/pkg/hash"
	"videomod/internal/pkg/textextract"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// Decision outcomes.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// Decision is the final structured verdict for one analyzed video.
// Immutable once produced; appended to the engine history.
type Decision struct {
	ID               string           `json:"id"`
	VideoPath        string           `json:"video_path"`
	Outcome          string           `json:"decision"`
	Confidence       float64          `json:"confidence"`
	Reasoning        string           `json:"reasoning"`
	Violations       []Violation      `json:"violations"`
	OverallRiskScore float64          `json:"overall_risk_score"`
	AnalysisDetails  *AnalysisDetails `json:"analysis_details"`
	ConfigUsed       ModerationConfig `json:"config_used"`
	ProcessedAt      time.Time        `json:"processed_at"`
	ProcessingTime   float64          `json:"processing_time"` // seconds, aggregation only
}

// Statistics summarizes all decisions produced since process start (or
// the last ClearHistory).
type Statistics struct {
	TotalProcessed        int            `json:"total_processed"`
	Approved              int            `json:"approved"`
	Rejected              int            `json:"rejected"`
	ApprovalRate          float64        `json:"approval_rate"`
	RejectionRate         float64        `json:"rejection_rate"`
	ViolationBreakdown    map[string]int `json:"violation_breakdown"`
	AverageProcessingTime float64        `json:"average_processing_time"`
	LastUpdated           time.Time      `json:"last_updated"`
}

// Engine orchestrates sampling, extraction, aggregation, and history.
// Safe for concurrent Moderate calls; the history is the only shared
// mutable state and is guarded by a single mutex.
type Engine struct {
	open      Opener
	nudity    *NudityExtractor
	copyright *CopyrightExtractor
	fraud     *FraudExtractor
	blur      *BlurRequirementExtractor
	quality   *TechnicalQualityExtractor
	log       *log.Helper

	mu      sync.Mutex
	history []*Decision
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	opener Opener
	texts  textextract.Extractor
	faces  facedet.Detector
	known  KnownContentIndex
}

// WithOpener replaces the default ffmpeg-backed source opener.
func WithOpener(o Opener) Option {
	return func(opts *options) { opts.opener = o }
}

// WithTextExtractor wires an on-screen text engine for the fraud signal.
func WithTextExtractor(t textextract.Extractor) Option {
	return func(opts *options) { opts.texts = t }
}

// WithFaceDetector wires a face detector for the blur signal.
func WithFaceDetector(d facedet.Detector) Option {
	return func(opts *options) { opts.faces = d }
}

// WithKnownContent wires a known-content perceptual hash index for
// copyright evidence.
func WithKnownContent(idx KnownContentIndex) Option {
	return func(opts *options) { opts.known = idx }
}

// New creates an Engine.
func New(logger log.Logger, opts ...Option) *Engine {
	o := &options{
		opener: DefaultOpener,
		texts:  textextract.Noop{},
		faces:  facedet.NewHeuristic(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Engine{
		open:      o.opener,
		nudity:    NewNudityExtractor(logger),
		copyright: NewCopyrightExtractor(o.known, logger),
		fraud:     NewFraudExtractor(o.texts, logger),
		blur:      NewBlurRequirementExtractor(o.faces, logger),
		quality:   NewTechnicalQualityExtractor(logger),
		log:       log.NewHelper(logger),
	}
}

// Fraud exposes the fraud extractor for phrase-list rebuilds.
func (e *Engine) Fraud() *FraudExtractor {
	return e.fraud
}

// Moderate analyzes the video at path under cfg and returns the verdict.
// A wholly unreadable source returns an error and no Decision; individual
// extractor failures degrade to evidence gaps inside the Decision.
func (e *Engine) Moderate(ctx context.Context, path string, cfg ModerationConfig) (*Decision, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src, err := e.open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video source: %w", err)
	}
	defer src.Close()

	details := e.analyze(ctx, src, path, cfg)

	// Aggregation is timed separately from extraction.
	start := time.Now()
	violations, riskScore := aggregate(details, cfg)
	outcome := DecisionApproved
	if len(violations) > 0 {
		outcome = DecisionRejected
	}

	decision := &Decision{
		ID:               uuid.NewString(),
		VideoPath:        path,
		Outcome:          outcome,
		Confidence:       estimateConfidence(riskScore, len(violations)),
		Reasoning:        buildReasoning(violations),
		Violations:       violations,
		OverallRiskScore: riskScore,
		AnalysisDetails:  details,
		ConfigUsed:       cfg,
		ProcessedAt:      time.Now(),
		ProcessingTime:   time.Since(start).Seconds(),
	}

	e.mu.Lock()
	e.history = append(e.history, decision)
	e.mu.Unlock()

	e.log.Infof("moderated %s: %s (confidence %.2f, %d violations)",
		filepath.Base(path), decision.Outcome, decision.Confidence, len(violations))
	return decision, nil
}

// analyze runs all extractors. They are independent and read-only over
// the source, so order does not matter.
func (e *Engine) analyze(ctx context.Context, src Source, path string, cfg ModerationConfig) *AnalysisDetails {
	return &AnalysisDetails{
		FileInfo:  fileInfo(src, path),
		Nudity:    e.nudity.Extract(ctx, src, cfg),
		Copyright: e.copyright.Extract(ctx, src, path, cfg),
		Fraud:     e.fraud.Extract(ctx, src, cfg),
		Blur:      e.blur.Extract(ctx, src, cfg),
		Quality:   e.quality.Extract(ctx, src),
		Timestamp: time.Now(),
	}
}

// fileInfo collects basic file facts for the result record. Hashing
// failures only drop the hash field.
func fileInfo(src Source, path string) *FileInfo {
	meta := src.Metadata()
	info := &FileInfo{
		Filename:   filepath.Base(path),
		Duration:   meta.Duration,
		FPS:        meta.FPS,
		Resolution: fmt.Sprintf("%dx%d", meta.Width, meta.Height),
		Format:     strings.ToLower(filepath.Ext(path)),
	}
	if digest, err := hash.DigestFile(path); err == nil {
		info.FileHash = digest.Sha256
		info.FileSize = digest.Size
	}
	return info
}

// RecentDecisions returns up to limit most recent decisions.
func (e *Engine) RecentDecisions(limit int) []*Decision {
	e.mu.Lock()
	defer e.mu.Unlock()

	if limit <= 0 || limit > len(e.history) {
		limit = len(e.history)
	}
	out := make([]*Decision, limit)
	copy(out, e.history[len(e.history)-limit:])
	return out
}

// Statistics summarizes the decision history.
func (e *Engine) Statistics() *Statistics {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := &Statistics{
		ViolationBreakdown: make(map[string]int),
		LastUpdated:        time.Now(),
	}
	if len(e.history) == 0 {
		return stats
	}

	totalTime := 0.0
	for _, d := range e.history {
		stats.TotalProcessed++
		if d.Outcome == DecisionApproved {
			stats.Approved++
		} else {
			stats.Rejected++
		}
		totalTime += d.ProcessingTime
		for _, v := range d.Violations {
			stats.ViolationBreakdown[v.Type]++
		}
	}

	total := float64(stats.TotalProcessed)
	stats.ApprovalRate = float64(stats.Approved) / total
	stats.RejectionRate = float64(stats.Rejected) / total
	stats.AverageProcessingTime = totalTime / total
	return stats
}

// ExportHistory serializes the full decision history as JSON.
func (e *Engine) ExportHistory() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return json.MarshalIndent(e.history, "", "  ")
}

// ClearHistory discards all recorded decisions.
func (e *Engine) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = nil
}
