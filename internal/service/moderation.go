package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"videomod/internal/biz"
	"videomod/internal/conf"
	"videomod/internal/pkg/engine"
	"videomod/internal/pkg/pagination"

	"github.com/go-kratos/kratos/v2/log"
)

// ConfigOverrides are the per-request policy knobs a caller may set.
// Unset fields keep the default policy.
type ConfigOverrides struct {
	NuditySensitivity  string `json:"nudity_sensitivity,omitempty"`
	FraudSensitivity   string `json:"fraud_sensitivity,omitempty"`
	CopyrightThreshold *int   `json:"copyright_threshold,omitempty"`
	RejectPoorQuality  *bool  `json:"reject_poor_quality,omitempty"`
	BlurFaces          *bool  `json:"blur_faces,omitempty"`
	BlurViolence       *bool  `json:"blur_violence,omitempty"`
}

// Apply merges the overrides onto a base config.
func (o ConfigOverrides) Apply(base engine.ModerationConfig) engine.ModerationConfig {
	if o.NuditySensitivity != "" {
		base.NuditySensitivity = engine.Sensitivity(o.NuditySensitivity)
	}
	if o.FraudSensitivity != "" {
		base.FraudSensitivity = engine.Sensitivity(o.FraudSensitivity)
	}
	if o.CopyrightThreshold != nil {
		base.CopyrightThreshold = *o.CopyrightThreshold
	}
	if o.RejectPoorQuality != nil {
		base.RejectPoorQuality = *o.RejectPoorQuality
	}
	if o.BlurFaces != nil {
		base.BlurFaces = *o.BlurFaces
	}
	if o.BlurViolence != nil {
		base.BlurViolence = *o.BlurViolence
	}
	return base
}

// ModerationService exposes the moderation pipeline to the transport
// layer.
type ModerationService struct {
	uc        *biz.ModerationUsecase
	uploadDir string
	log       *log.Helper
}

// NewModerationService creates a new ModerationService.
func NewModerationService(uc *biz.ModerationUsecase, mc *conf.Moderation, logger log.Logger) *ModerationService {
	return &ModerationService{
		uc:        uc,
		uploadDir: mc.UploadDir,
		log:       log.NewHelper(logger),
	}
}

// ModerateUpload spools an uploaded video to disk, runs moderation, and
// removes the spool file. filename is only used for its extension and
// copyright source annotation.
func (s *ModerationService) ModerateUpload(ctx context.Context, upload io.Reader, filename string, overrides ConfigOverrides) (*engine.Decision, error) {
	cfg := overrides.Apply(engine.DefaultConfig())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path, err := s.spool(upload, filename)
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(filepath.Dir(path))

	return s.uc.ModerateUpload(ctx, path, cfg)
}

// spool writes the upload to the configured directory, keeping the
// original base name so the pipeline sees its extension and keywords.
func (s *ModerationService) spool(upload io.Reader, filename string) (string, error) {
	dir, err := os.MkdirTemp(s.uploadDir, "upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create spool dir: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(filename))
	f, err := os.Create(path)
	if err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("failed to create spool file: %w", err)
	}
	if _, err := io.Copy(f, upload); err != nil {
		f.Close()
		os.RemoveAll(dir)
		return "", fmt.Errorf("failed to write spool file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	return path, nil
}

// GetDecision fetches a persisted decision by id; nil when unknown.
func (s *ModerationService) GetDecision(ctx context.Context, id string) (*engine.Decision, error) {
	return s.uc.GetDecision(ctx, id)
}

// ListDecisions returns a page of persisted decisions.
func (s *ModerationService) ListDecisions(ctx context.Context, outcome string, req *pagination.OffsetRequest) (*pagination.OffsetResponse[*engine.Decision], error) {
	decisions, total, err := s.uc.ListDecisions(ctx, outcome,
		int32(req.GetPageSize()), int32(req.GetOffset()))
	if err != nil {
		return nil, err
	}
	return pagination.BuildOffsetResponse(decisions, req, total), nil
}

// Statistics summarizes the in-process decision history.
func (s *ModerationService) Statistics() *engine.Statistics {
	return s.uc.Statistics()
}

// RecentDecisions returns the most recent in-process decisions.
func (s *ModerationService) RecentDecisions(limit int) []*engine.Decision {
	return s.uc.RecentDecisions(limit)
}

// ExportHistory serializes the in-process decision history as JSON.
func (s *ModerationService) ExportHistory() ([]byte, error) {
	return s.uc.ExportHistory()
}

// ClearHistory discards the in-process decision history.
func (s *ModerationService) ClearHistory() {
	s.uc.ClearHistory()
}
