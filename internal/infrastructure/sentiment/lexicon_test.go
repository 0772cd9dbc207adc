package sentiment

import (
	"context"
	"testing"

	"github.com/shopsight/backend/internal/domain/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexiconAnalyzer(t *testing.T) {
	analyzer := NewLexiconAnalyzer()
	ctx := context.Background()

	t.Run("positive text", func(t *testing.T) {
		result, err := analyzer.Analyze(ctx, "Great product, excellent quality. Would recommend!")
		require.NoError(t, err)
		assert.Equal(t, review.SentimentPositive, result.Sentiment)
		assert.Equal(t, 1.0, result.Scores[string(review.SentimentPositive)])
	})

	t.Run("negative text", func(t *testing.T) {
		result, err := analyzer.Analyze(ctx, "Terrible. Broken on arrival, waste of money.")
		require.NoError(t, err)
		assert.Equal(t, review.SentimentNegative, result.Sentiment)
		assert.Equal(t, 1.0, result.Scores[string(review.SentimentNegative)])
	})

	t.Run("mixed text", func(t *testing.T) {
		result, err := analyzer.Analyze(ctx, "Great screen but terrible battery.")
		require.NoError(t, err)
		assert.Equal(t, review.SentimentMixed, result.Sentiment)
		assert.InDelta(t, 0.5, result.Scores[string(review.SentimentPositive)], 0.0001)
	})

	t.Run("neutral text", func(t *testing.T) {
		result, err := analyzer.Analyze(ctx, "It is a lamp. It emits light.")
		require.NoError(t, err)
		assert.Equal(t, review.SentimentNeutral, result.Sentiment)
		assert.Zero(t, result.Scores[string(review.SentimentPositive)])
		assert.Zero(t, result.Scores[string(review.SentimentNegative)])
	})

	t.Run("matching is case insensitive and ignores punctuation", func(t *testing.T) {
		result, err := analyzer.Analyze(ctx, "LOVED it!!!")
		require.NoError(t, err)
		assert.Equal(t, review.SentimentPositive, result.Sentiment)
	})

	t.Run("empty text is neutral", func(t *testing.T) {
		result, err := analyzer.Analyze(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, review.SentimentNeutral, result.Sentiment)
	})
}
