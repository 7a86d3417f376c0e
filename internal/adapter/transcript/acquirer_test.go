package transcript

import (
	"context"
	"testing"

	"sanctuary/internal/config"
	"sanctuary/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAcquirer(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		strategy string
		wantName string
	}{
		{"", config.StrategyScraper},
		{config.StrategyScraper, config.StrategyScraper},
		{config.StrategyOfficial, config.StrategyOfficial},
		{config.StrategyProxy, config.StrategyProxy},
		{config.StrategyManual, "manual"},
	}
	for _, tt := range tests {
		t.Run(tt.wantName+"/"+tt.strategy, func(t *testing.T) {
			acq, err := NewAcquirer(ctx, config.TranscriptConfig{Strategy: tt.strategy})
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, acq.Name())
		})
	}

	_, err := NewAcquirer(ctx, config.TranscriptConfig{Strategy: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestPickBestTrack(t *testing.T) {
	manualEN := captionTrack{ID: "m-en", LanguageCode: "en"}
	autoEN := captionTrack{ID: "a-en", LanguageCode: "en", Auto: true}
	manualUS := captionTrack{ID: "m-us", LanguageCode: "en-US"}
	manualGB := captionTrack{ID: "m-gb", LanguageCode: "en-GB"}
	autoGB := captionTrack{ID: "a-gb", LanguageCode: "en-GB", Auto: true}
	manualDE := captionTrack{ID: "m-de", LanguageCode: "de"}
	langs := []string{"en", "en-US"}

	tests := []struct {
		name   string
		tracks []captionTrack
		wantID string
		wantOK bool
	}{
		{"manual beats auto", []captionTrack{autoEN, manualEN}, "m-en", true},
		{"manual in second language beats auto in first", []captionTrack{autoEN, manualUS}, "m-us", true},
		{"auto when nothing manual", []captionTrack{manualDE, autoEN}, "a-en", true},
		{"other english variant as last resort", []captionTrack{manualDE, autoGB, manualGB}, "m-gb", true},
		{"non english never chosen", []captionTrack{manualDE}, "", false},
		{"no tracks", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickBestTrack(tt.tracks, langs)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestManualAcquirer(t *testing.T) {
	_, err := NewManualAcquirer().Acquire(context.Background(), "dQw4w9WgXcQ")
	assert.Equal(t, domain.ReasonNoTranscript, domain.AcquisitionReasonOf(err))
}
