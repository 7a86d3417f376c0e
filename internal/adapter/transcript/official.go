package transcript

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"sanctuary/internal/config"
	"sanctuary/internal/domain"
	"sanctuary/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var errNoOAuthToken = errors.New("captions download requires transcript.oauth_token")

// OfficialAcquirer uses the YouTube Data API captions resource. Listing
// tracks works with an API key; downloading needs an OAuth bearer token.
type OfficialAcquirer struct {
	svc       *youtube.Service
	languages []string
	hasToken  bool
	initErr   error
}

// NewOfficialAcquirer builds the API client from cfg. Extra client options
// are appended last so tests can point the client at a fake endpoint.
func NewOfficialAcquirer(ctx context.Context, cfg config.TranscriptConfig, extra ...option.ClientOption) (*OfficialAcquirer, error) {
	a := &OfficialAcquirer{languages: cfg.Languages, hasToken: cfg.OAuthToken != ""}

	var opts []option.ClientOption
	switch {
	case cfg.OAuthToken != "":
		opts = append(opts, option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.OAuthToken,
			TokenType:   "Bearer",
		})))
	case cfg.YouTubeAPIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.YouTubeAPIKey))
	case len(extra) == 0:
		logger.Get().Warn("Official transcript strategy has no credentials; acquisitions will fail")
		a.initErr = errNoOAuthToken
		return a, nil
	}
	opts = append(opts, extra...)

	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	a.svc = svc
	return a, nil
}

func (a *OfficialAcquirer) Name() string { return config.StrategyOfficial }

func (a *OfficialAcquirer) Acquire(ctx context.Context, videoID string) (string, error) {
	if a.initErr != nil {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonMissingCredential, a.initErr)
	}

	list, err := a.svc.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
	if err != nil {
		return "", domain.NewAcquisitionError(videoID, reasonForAPIError(err), fmt.Errorf("list captions: %w", err))
	}

	tracks := make([]captionTrack, 0, len(list.Items))
	for _, item := range list.Items {
		if item.Snippet == nil {
			continue
		}
		tracks = append(tracks, captionTrack{
			ID:           item.Id,
			LanguageCode: item.Snippet.Language,
			Auto:         strings.EqualFold(item.Snippet.TrackKind, "asr"),
		})
	}

	track, ok := pickBestTrack(tracks, a.languages)
	if !ok {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonNoTranscript,
			fmt.Errorf("no English caption track among %d tracks", len(tracks)))
	}
	if !a.hasToken {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonMissingCredential, errNoOAuthToken)
	}

	resp, err := a.svc.Captions.Download(track.ID).Tfmt("srt").Context(ctx).Download()
	if err != nil {
		return "", domain.NewAcquisitionError(videoID, reasonForAPIError(err), fmt.Errorf("download caption %s: %w", track.ID, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonNetwork, err)
	}

	text := parseSRT(string(body))
	if text == "" {
		return "", domain.NewAcquisitionError(videoID, domain.ReasonMalformed, errors.New("caption download had no cue text"))
	}

	logger.Get().Info("Transcript acquired",
		zap.String("video_id", videoID),
		zap.String("strategy", a.Name()),
		zap.String("language", track.LanguageCode),
		zap.Bool("auto", track.Auto),
	)
	return text, nil
}

// reasonForAPIError separates "this video has no captions for us" from
// transport trouble.
func reasonForAPIError(err error) domain.AcquisitionReason {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		switch gErr.Code {
		case http.StatusNotFound:
			return domain.ReasonNoTranscript
		case http.StatusUnauthorized, http.StatusForbidden:
			return domain.ReasonMissingCredential
		}
	}
	return domain.ReasonNetwork
}

// parseSRT keeps cue text and drops sequence numbers and timing lines.
func parseSRT(srt string) string {
	srt = strings.ReplaceAll(srt, "\r\n", "\n")
	var lines []string
	for _, line := range strings.Split(srt, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "-->") || isDigits(line) {
			continue
		}
		lines = append(lines, line)
	}
	return joinLines(lines, "\n")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
