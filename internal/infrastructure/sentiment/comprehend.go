// Package sentiment provides analyzer implementations for classifying
// review text.
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	"github.com/aws/aws-sdk-go-v2/service/comprehend/types"
	insightsapp "github.com/shopsight/backend/internal/application/insights"
	"github.com/shopsight/backend/internal/domain/review"
	infraconfig "github.com/shopsight/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Comprehend caps DetectSentiment input at 5000 UTF-8 bytes
const maxComprehendBytes = 5000

// Ensure ComprehendAnalyzer implements Analyzer
var _ insightsapp.Analyzer = (*ComprehendAnalyzer)(nil)

// ComprehendAnalyzer classifies text with Amazon Comprehend
type ComprehendAnalyzer struct {
	client   *comprehend.Client
	language types.LanguageCode
	logger   *zap.Logger
}

// ComprehendAnalyzerOption is a functional option for ComprehendAnalyzer
type ComprehendAnalyzerOption func(*ComprehendAnalyzer)

// WithLogger sets a custom logger for ComprehendAnalyzer
func WithLogger(logger *zap.Logger) ComprehendAnalyzerOption {
	return func(a *ComprehendAnalyzer) {
		a.logger = logger
	}
}

// NewComprehendAnalyzer creates a new analyzer from configuration
func NewComprehendAnalyzer(cfg *infraconfig.SentimentConfig, opts ...ComprehendAnalyzerOption) (*ComprehendAnalyzer, error) {
	if cfg == nil {
		return nil, errors.New("sentiment configuration is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	language := types.LanguageCode(cfg.Language)
	if language == "" {
		language = types.LanguageCodeEn
	}

	analyzer := &ComprehendAnalyzer{
		client:   comprehend.NewFromConfig(awsCfg),
		language: language,
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(analyzer)
	}

	return analyzer, nil
}

// Analyze classifies the text and returns the dominant sentiment with
// per-class confidence scores
func (a *ComprehendAnalyzer) Analyze(ctx context.Context, text string) (insightsapp.AnalysisResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return insightsapp.AnalysisResult{Sentiment: review.SentimentNeutral}, nil
	}
	if len(text) > maxComprehendBytes {
		text = truncateUTF8(text, maxComprehendBytes)
	}

	out, err := a.client.DetectSentiment(ctx, &comprehend.DetectSentimentInput{
		Text:         aws.String(text),
		LanguageCode: a.language,
	})
	if err != nil {
		return insightsapp.AnalysisResult{}, fmt.Errorf("comprehend detect sentiment: %w", err)
	}

	result := insightsapp.AnalysisResult{
		Sentiment: mapSentiment(out.Sentiment),
		Scores:    make(map[string]float64, 4),
	}
	if s := out.SentimentScore; s != nil {
		if s.Positive != nil {
			result.Scores[string(review.SentimentPositive)] = float64(*s.Positive)
		}
		if s.Negative != nil {
			result.Scores[string(review.SentimentNegative)] = float64(*s.Negative)
		}
		if s.Neutral != nil {
			result.Scores[string(review.SentimentNeutral)] = float64(*s.Neutral)
		}
		if s.Mixed != nil {
			result.Scores[string(review.SentimentMixed)] = float64(*s.Mixed)
		}
	}

	a.logger.Debug("comprehend sentiment detected",
		zap.String("sentiment", string(result.Sentiment)),
	)

	return result, nil
}

// mapSentiment converts the provider's class to the domain class
func mapSentiment(s types.SentimentType) review.Sentiment {
	switch s {
	case types.SentimentTypePositive:
		return review.SentimentPositive
	case types.SentimentTypeNegative:
		return review.SentimentNegative
	case types.SentimentTypeMixed:
		return review.SentimentMixed
	default:
		return review.SentimentNeutral
	}
}

// truncateUTF8 cuts the string to at most n bytes without splitting a rune
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
