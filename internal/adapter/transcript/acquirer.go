package transcript

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sanctuary/internal/config"
	"sanctuary/internal/domain"

	"golang.org/x/time/rate"
)

const (
	userAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	maxBodyBytes   = 4 << 20
	defaultTimeout = 20 * time.Second
)

// NewAcquirer returns the strategy selected by cfg.Strategy. Missing
// credentials do not fail construction; the strategy reports them per call.
func NewAcquirer(ctx context.Context, cfg config.TranscriptConfig) (domain.TranscriptAcquirer, error) {
	switch cfg.Strategy {
	case config.StrategyScraper, "":
		return NewScraperAcquirer(cfg), nil
	case config.StrategyOfficial:
		return NewOfficialAcquirer(ctx, cfg)
	case config.StrategyProxy:
		return NewProxyAcquirer(cfg), nil
	case config.StrategyManual:
		return NewManualAcquirer(), nil
	default:
		return nil, fmt.Errorf("unsupported transcript strategy %q", cfg.Strategy)
	}
}

// httpFetcher performs rate-limited GETs for the HTTP based strategies.
type httpFetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

func newHTTPFetcher(cfg config.TranscriptConfig) *httpFetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &httpFetcher{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// get returns the body and status code. Only transport failures are errors.
func (f *httpFetcher) get(ctx context.Context, url string, header http.Header) ([]byte, int, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// captionTrack is a caption track offered for a video.
type captionTrack struct {
	ID           string
	BaseURL      string
	LanguageCode string
	// Auto is true for speech-recognised (ASR) tracks.
	Auto bool
}

// pickBestTrack prefers manual over automatic tracks in the preferred
// languages, then any other English variant. Non-English tracks are never
// chosen.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	if len(langs) == 0 {
		langs = []string{"en", "en-US"}
	}
	for _, auto := range []bool{false, true} {
		for _, lang := range langs {
			for _, t := range tracks {
				if t.Auto == auto && strings.EqualFold(t.LanguageCode, lang) {
					return t, true
				}
			}
		}
	}
	for _, auto := range []bool{false, true} {
		for _, t := range tracks {
			if t.Auto == auto && strings.HasPrefix(strings.ToLower(t.LanguageCode), "en") {
				return t, true
			}
		}
	}
	return captionTrack{}, false
}

// joinLines trims each line and drops empty ones.
func joinLines(lines []string, sep string) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, sep)
}
