package insights

import (
	"context"

	"github.com/shopsight/backend/internal/domain/review"
)

// AnalysisResult is the analyzer's verdict on a piece of text
type AnalysisResult struct {
	Sentiment review.Sentiment
	// Scores holds the analyzer's confidence per class, keyed by the
	// sentiment class name
	Scores map[string]float64
}

// Analyzer classifies the sentiment of review text. Implementations
// live in infrastructure/sentiment (Amazon Comprehend and a local
// lexicon fallback).
type Analyzer interface {
	Analyze(ctx context.Context, text string) (AnalysisResult, error)
}
