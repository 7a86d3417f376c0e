package domain

import "context"

// ContentClassifier classifies a transcript and writes its quiz. It never
// returns a partially populated Classification.
type ContentClassifier interface {
	Classify(ctx context.Context, transcript string) (*Classification, error)
	Name() string
}
