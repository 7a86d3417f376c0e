package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"sanctuary/internal/config"
	"sanctuary/internal/domain"
	"sanctuary/internal/logger"

	"go.uber.org/zap"
)

const defaultWatchBaseURL = "https://www.youtube.com"

const playerResponseMarker = "ytInitialPlayerResponse"

var (
	errNoPlayerResponse = errors.New("ytInitialPlayerResponse not found in watch page")
	tagPattern          = regexp.MustCompile(`<[^>]+>`)
)

// ScraperAcquirer reads caption tracks from the public watch page and
// downloads the chosen track.
type ScraperAcquirer struct {
	fetcher   *httpFetcher
	baseURL   string
	languages []string
}

func NewScraperAcquirer(cfg config.TranscriptConfig) *ScraperAcquirer {
	return &ScraperAcquirer{
		fetcher:   newHTTPFetcher(cfg),
		baseURL:   defaultWatchBaseURL,
		languages: cfg.Languages,
	}
}

func (s *ScraperAcquirer) Name() string { return config.StrategyScraper }

func (s *ScraperAcquirer) Acquire(ctx context.Context, videoID string) (string, error) {
	l := logger.Get().With(zap.String("video_id", videoID), zap.String("strategy", s.Name()))

	watchURL := fmt.Sprintf("%s/watch?v=%s&hl=en", s.baseURL, url.QueryEscape(videoID))
	page, status, err := s.fetcher.get(ctx, watchURL, http.Header{"Cookie": {"CONSENT=YES+1"}})
	if err != nil {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonNetwork, err)
	}
	if status != http.StatusOK {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonNetwork, fmt.Errorf("watch page returned HTTP %d", status))
	}

	player, err := parsePlayerResponse(page)
	if err != nil {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonMalformed, err)
	}

	tracks := player.tracks()
	if len(tracks) == 0 {
		reason := player.PlayabilityStatus.Reason
		return "", domain.NewAcquisitionError(videoID, domain.ReasonNoTranscript,
			fmt.Errorf("no caption tracks (playability %s %s)", player.PlayabilityStatus.Status, reason))
	}

	track, ok := pickBestTrack(tracks, s.languages)
	if !ok {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonNoTranscript, errors.New("no English caption track"))
	}
	l.Debug("Selected caption track", zap.String("language", track.LanguageCode), zap.Bool("auto", track.Auto))

	body, status, err := s.fetcher.get(ctx, withJSON3Format(track.BaseURL), nil)
	if err != nil {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonNetwork, err)
	}
	if status != http.StatusOK {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonNetwork, fmt.Errorf("caption track returned HTTP %d", status))
	}

	text, err := parseCaptionBody(body)
	if err != nil {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonMalformed, err)
	}
	if text == "" {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonNoTranscript, errors.New("caption track is empty"))
	}

	l.Info("Transcript acquired", zap.Int("chars", len(text)))
	return text, nil
}

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions struct {
		Renderer struct {
			CaptionTracks []struct {
				BaseURL      string `json:"baseUrl"`
				LanguageCode string `json:"languageCode"`
				Kind         string `json:"kind"`
				VssID        string `json:"vssId"`
			} `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

func (p *playerResponse) tracks() []captionTrack {
	raw := p.Captions.Renderer.CaptionTracks
	tracks := make([]captionTrack, 0, len(raw))
	for _, t := range raw {
		if t.BaseURL == "" {
			continue
		}
		tracks = append(tracks, captionTrack{
			ID:           t.VssID,
			BaseURL:      t.BaseURL,
			LanguageCode: t.LanguageCode,
			Auto:         t.Kind == "asr",
		})
	}
	return tracks
}

// parsePlayerResponse decodes the JSON object assigned to
// ytInitialPlayerResponse, ignoring whatever script follows it.
func parsePlayerResponse(page []byte) (*playerResponse, error) {
	idx := bytes.Index(page, []byte(playerResponseMarker))
	if idx < 0 {
		return nil, errNoPlayerResponse
	}
	rest := page[idx+len(playerResponseMarker):]
	start := bytes.IndexByte(rest, '{')
	if start < 0 {
		return nil, errNoPlayerResponse
	}

	var player playerResponse
	if err := json.NewDecoder(bytes.NewReader(rest[start:])).Decode(&player); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	return &player, nil
}

func withJSON3Format(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	q := u.Query()
	q.Set("fmt", "json3")
	u.RawQuery = q.Encode()
	return u.String()
}

// json3Events is the JSON event-list caption shape.
type json3Events struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// timedText covers both the legacy <transcript><text> and the srv3
// <timedtext><body><p> XML shapes.
type timedText struct {
	Texts      []string `xml:"text"`
	Paragraphs []struct {
		Inner string `xml:",innerxml"`
	} `xml:"body>p"`
}

// parseCaptionBody reads a caption download. It accepts the JSON event list,
// timedtext XML, and finally plain text.
func parseCaptionBody(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", nil
	}

	switch trimmed[0] {
	case '{':
		var events json3Events
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return "", fmt.Errorf("decode json3 captions: %w", err)
		}
		lines := make([]string, 0, len(events.Events))
		for _, ev := range events.Events {
			var sb strings.Builder
			for _, seg := range ev.Segs {
				sb.WriteString(seg.UTF8)
			}
			lines = append(lines, strings.ReplaceAll(sb.String(), "\n", " "))
		}
		return joinLines(lines, "\n"), nil
	case '<':
		var tt timedText
		if err := xml.Unmarshal(trimmed, &tt); err != nil {
			return "", fmt.Errorf("decode timedtext captions: %w", err)
		}
		lines := make([]string, 0, len(tt.Texts)+len(tt.Paragraphs))
		for _, text := range tt.Texts {
			lines = append(lines, html.UnescapeString(text))
		}
		for _, p := range tt.Paragraphs {
			// innerxml is still entity-encoded.
			lines = append(lines, html.UnescapeString(html.UnescapeString(tagPattern.ReplaceAllString(p.Inner, ""))))
		}
		return joinLines(lines, "\n"), nil
	default:
		return joinLines(strings.Split(string(trimmed), "\n"), "\n"), nil
	}
}
