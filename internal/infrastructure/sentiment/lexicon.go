package sentiment

import (
	"context"
	"strings"

	insightsapp "github.com/shopsight/backend/internal/application/insights"
	"github.com/shopsight/backend/internal/domain/review"
)

// Ensure LexiconAnalyzer implements Analyzer
var _ insightsapp.Analyzer = (*LexiconAnalyzer)(nil)

// LexiconAnalyzer is a word-list analyzer for development and testing.
// It never fails and needs no network access.
type LexiconAnalyzer struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

var defaultPositiveWords = []string{
	"good", "great", "excellent", "amazing", "awesome", "love", "loved",
	"perfect", "fantastic", "wonderful", "best", "happy", "recommend",
	"quality", "fast", "beautiful", "comfortable", "reliable", "solid",
}

var defaultNegativeWords = []string{
	"bad", "terrible", "awful", "horrible", "hate", "hated", "worst",
	"broken", "poor", "disappointed", "disappointing", "slow", "cheap",
	"useless", "refund", "waste", "defective", "flimsy", "never",
}

// NewLexiconAnalyzer creates an analyzer with the built-in word lists
func NewLexiconAnalyzer() *LexiconAnalyzer {
	a := &LexiconAnalyzer{
		positive: make(map[string]struct{}, len(defaultPositiveWords)),
		negative: make(map[string]struct{}, len(defaultNegativeWords)),
	}
	for _, w := range defaultPositiveWords {
		a.positive[w] = struct{}{}
	}
	for _, w := range defaultNegativeWords {
		a.negative[w] = struct{}{}
	}
	return a
}

// Analyze counts positive and negative words. Both present means mixed,
// neither means neutral.
func (a *LexiconAnalyzer) Analyze(_ context.Context, text string) (insightsapp.AnalysisResult, error) {
	var pos, neg int
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:\"'()")
		if _, ok := a.positive[word]; ok {
			pos++
		}
		if _, ok := a.negative[word]; ok {
			neg++
		}
	}

	class := review.SentimentNeutral
	switch {
	case pos > 0 && neg > 0:
		class = review.SentimentMixed
	case pos > 0:
		class = review.SentimentPositive
	case neg > 0:
		class = review.SentimentNegative
	}

	total := pos + neg
	scores := map[string]float64{
		string(review.SentimentPositive): 0,
		string(review.SentimentNegative): 0,
	}
	if total > 0 {
		scores[string(review.SentimentPositive)] = float64(pos) / float64(total)
		scores[string(review.SentimentNegative)] = float64(neg) / float64(total)
	}

	return insightsapp.AnalysisResult{
		Sentiment: class,
		Scores:    scores,
	}, nil
}
