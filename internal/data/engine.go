package data

import (
	"videomod/internal/conf"
	"videomod/internal/pkg/bloom"
	"videomod/internal/pkg/engine"
	"videomod/internal/pkg/facedet"
	pkgredis "videomod/internal/pkg/redis"
	"videomod/internal/pkg/textextract"

	"github.com/go-kratos/kratos/v2/log"
)

// NewEngine builds the analysis engine from configuration: optional
// on-screen text service, face detection, and the known-content index.
func NewEngine(mc *conf.Moderation, known engine.KnownContentIndex, logger log.Logger) *engine.Engine {
	helper := log.NewHelper(logger)
	opts := []engine.Option{engine.WithKnownContent(known)}

	if mc.TextExtractor.Enabled {
		cfg := textextract.DefaultConfig()
		if mc.TextExtractor.BaseURL != "" {
			cfg.BaseURL = mc.TextExtractor.BaseURL
		}
		if mc.TextExtractor.Timeout > 0 {
			cfg.Timeout = mc.TextExtractor.Timeout.AsDuration()
		}
		helper.Infof("on-screen text service enabled at %s", cfg.BaseURL)
		opts = append(opts, engine.WithTextExtractor(textextract.NewHTTPClient(cfg)))
	} else {
		helper.Info("on-screen text service disabled")
		opts = append(opts, engine.WithTextExtractor(textextract.Noop{}))
	}

	if !mc.FaceDetection {
		opts = append(opts, engine.WithFaceDetector(facedet.Noop{}))
	}

	return engine.New(logger, opts...)
}

// NewSeenFilter builds the duplicate-upload bloom prefilter, or nil when
// deduplication is disabled.
func NewSeenFilter(mc *conf.Moderation, cache pkgredis.Cache, logger log.Logger) *bloom.Filter {
	if !mc.Dedupe.Enabled {
		log.NewHelper(logger).Info("duplicate-upload prefilter disabled")
		return nil
	}
	return bloom.NewBloomFilter(cache, mc.Dedupe.BloomKey, mc.Dedupe.BloomBits, mc.Dedupe.BloomHashes)
}
