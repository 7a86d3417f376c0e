package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"sanctuary/internal/domain"

	"go.uber.org/zap"
)

// IngestOutcome is the result of submitting one line of an ingest list.
type IngestOutcome struct {
	Line     int
	Input    string
	VideoID  string
	CacheHit bool
	Err      error
}

// IngestSummary totals a batch.
type IngestSummary struct {
	Archived int
	CacheHit int
	Failed   int
	Outcomes []IngestOutcome
}

// IngestService pre-warms the library by pushing a list of links through the
// verification pipeline, one at a time.
type IngestService interface {
	Ingest(ctx context.Context, r io.Reader) (*IngestSummary, error)
}

type ingestService struct {
	verifier VerificationService
	logger   *zap.Logger
}

func NewIngestService(verifier VerificationService, logger *zap.Logger) IngestService {
	return &ingestService{verifier: verifier, logger: logger}
}

// Ingest reads one link per line. Blank lines and lines starting with '#'
// are skipped. A failed link does not stop the batch; a cancelled context
// does.
func (s *ingestService) Ingest(ctx context.Context, r io.Reader) (*IngestSummary, error) {
	s.logger.Info("Starting ingest", zap.Time("start_time", time.Now()))
	summary := &IngestSummary{}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		input := strings.TrimSpace(scanner.Text())
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		outcome := IngestOutcome{Line: line, Input: input}
		result, err := s.verifier.Submit(ctx, SubmitInput{URL: input})
		switch {
		case err != nil:
			outcome.Err = err
			summary.Failed++
			code := domain.CodeInternal
			var de *domain.DomainError
			if errors.As(err, &de) {
				code = de.Code
			}
			s.logger.Warn("Ingest line failed", zap.Int("line", line), zap.String("input", input), zap.String("code", string(code)))
		case result.CacheHit:
			outcome.VideoID = result.VideoID
			outcome.CacheHit = true
			summary.CacheHit++
		default:
			outcome.VideoID = result.VideoID
			summary.Archived++
			s.logger.Info("Ingested video", zap.Int("line", line), zap.String("video_id", result.VideoID),
				zap.String("root_category", result.RootCategory))
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}
	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("failed to read ingest list: %w", err)
	}

	s.logger.Info("Ingest finished",
		zap.Int("archived", summary.Archived),
		zap.Int("cache_hit", summary.CacheHit),
		zap.Int("failed", summary.Failed))
	return summary, nil
}
