package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"sanctuary/internal/config"
	"sanctuary/internal/domain"
	"sanctuary/internal/logger"

	"go.uber.org/zap"
)

const proxyKeyHeader = "x-api-key"

// ProxyAcquirer calls a paid transcript proxy that returns timed segments.
type ProxyAcquirer struct {
	fetcher   *httpFetcher
	endpoint  string
	apiKey    string
	languages []string
}

func NewProxyAcquirer(cfg config.TranscriptConfig) *ProxyAcquirer {
	return &ProxyAcquirer{
		fetcher:   newHTTPFetcher(cfg),
		endpoint:  cfg.Proxy.URL,
		apiKey:    cfg.Proxy.APIKey,
		languages: cfg.Languages,
	}
}

func (p *ProxyAcquirer) Name() string { return config.StrategyProxy }

type proxySegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Offset   float64 `json:"offset"`
	Duration float64 `json:"duration"`
}

func (p *ProxyAcquirer) Acquire(ctx context.Context, videoID string) (string, error) {
	if p.apiKey == "" || p.endpoint == "" {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonMissingCredential,
			errors.New("transcript.proxy.url and transcript.proxy.api_key are required"))
	}

	u, err := url.Parse(p.endpoint)
	if err != nil {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonMissingCredential, fmt.Errorf("invalid proxy url: %w", err))
	}
	q := u.Query()
	q.Set("video_id", videoID)
	if len(p.languages) > 0 {
		q.Set("lang", p.languages[0])
	}
	u.RawQuery = q.Encode()

	body, status, err := p.fetcher.get(ctx, u.String(), http.Header{proxyKeyHeader: {p.apiKey}})
	if err != nil {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonNetwork, err)
	}
	switch {
	case status == http.StatusNotFound:
		return "", domain.NewAcquisitionError(videoID, domain.ReasonNoTranscript, errors.New("proxy has no transcript"))
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return "", domain.NewAcquisitionError(videoID, domain.ReasonMissingCredential, fmt.Errorf("proxy rejected key: HTTP %d", status))
	case status != http.StatusOK:
		return "", domain.NewAcquisitionError(videoID, domain.ReasonNetwork, fmt.Errorf("proxy returned HTTP %d", status))
	}

	segments, err := decodeProxySegments(body)
	if err != nil {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonMalformed, err)
	}

	texts := make([]string, len(segments))
	for i, s := range segments {
		texts[i] = s.Text
	}
	text := joinLines(texts, " ")
	if text == "" {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonNoTranscript, errors.New("proxy returned no segments"))
	}

	logger.Get().Info("Transcript acquired",
		zap.String("video_id", videoID),
		zap.String("strategy", p.Name()),
		zap.Int("segments", len(segments)),
	)
	return text, nil
}

// decodeProxySegments accepts a bare segment list or one wrapped in
// "content" or "segments".
func decodeProxySegments(body []byte) ([]proxySegment, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var segments []proxySegment
		if err := json.Unmarshal(body, &segments); err != nil {
			return nil, fmt.Errorf("decode proxy segments: %w", err)
		}
		return segments, nil
	}

	var wrapped struct {
		Content  []proxySegment `json:"content"`
		Segments []proxySegment `json:"segments"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode proxy response: %w", err)
	}
	if len(wrapped.Content) > 0 {
		return wrapped.Content, nil
	}
	return wrapped.Segments, nil
}
