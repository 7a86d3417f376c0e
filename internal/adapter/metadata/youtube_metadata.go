// Package metadata looks up video titles and channel names.
package metadata

import (
	"context"
	"fmt"

	"sanctuary/internal/domain"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeMetadataFetcher reads the video snippet from the YouTube Data API.
type YouTubeMetadataFetcher struct {
	client *youtube.Service
}

// NewMetadataFetcher returns a Data API fetcher when apiKey is set and a
// placeholder fetcher otherwise.
func NewMetadataFetcher(ctx context.Context, apiKey string, extra ...option.ClientOption) (domain.MetadataFetcher, error) {
	if apiKey == "" && len(extra) == 0 {
		return PlaceholderFetcher{}, nil
	}
	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, extra...)
	client, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &YouTubeMetadataFetcher{client: client}, nil
}

func (f *YouTubeMetadataFetcher) FetchMetadata(ctx context.Context, videoID string) (*domain.VideoMetadata, error) {
	response, err := f.client.Videos.
		List([]string{"snippet"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list video %s: %w", videoID, err)
	}

	for _, item := range response.Items {
		if item.Snippet == nil || item.Id != videoID {
			continue
		}
		md := &domain.VideoMetadata{
			Title:       item.Snippet.Title,
			ChannelName: item.Snippet.ChannelTitle,
		}
		if md.Title == "" {
			md.Title = domain.PlaceholderTitle
		}
		if md.ChannelName == "" {
			md.ChannelName = domain.PlaceholderChannel
		}
		return md, nil
	}
	return nil, fmt.Errorf("video %s not found", videoID)
}

// PlaceholderFetcher always answers with the placeholder title and channel.
type PlaceholderFetcher struct{}

func (PlaceholderFetcher) FetchMetadata(context.Context, string) (*domain.VideoMetadata, error) {
	return &domain.VideoMetadata{Title: domain.PlaceholderTitle, ChannelName: domain.PlaceholderChannel}, nil
}
