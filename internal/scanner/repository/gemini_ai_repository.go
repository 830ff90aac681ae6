package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/internal/scanner/config"
	"golang-signal-scanner/internal/scanner/dto"
	"golang-signal-scanner/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const maxOverviewHeadlines = 3

// ContentGenerator is the part of the genai client this repository uses. *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// geminiAIRepository is an implementation of AIRepository that uses the Google Gemini API.
type geminiAIRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	generator      ContentGenerator
}

// NewGeminiAIRepository creates a new instance of geminiAIRepository.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger, generator ContentGenerator) (AIRepository, error) {
	if cfg.Gemini.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("gemini max_request_per_minute must be positive, got %d", cfg.Gemini.MaxRequestPerMinute)
	}
	if generator == nil {
		return nil, fmt.Errorf("gemini content generator is required")
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &geminiAIRepository{
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		generator:      generator,
	}, nil
}

var signalResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"type": {
			Type:        genai.TypeString,
			Description: "STRONG_BUY, BUY, NEUTRAL, SELL, STRONG_SELL",
			Enum:        []string{"STRONG_BUY", "BUY", "NEUTRAL", "SELL", "STRONG_SELL"},
		},
		"reasoning":  {Type: genai.TypeString, Description: "Max 100 characters reasoning"},
		"confidence": {Type: genai.TypeNumber, Description: "Probability score (0-1)"},
		"pattern":    {Type: genai.TypeString, Description: "Technical pattern name (e.g., Golden Cross, Volume Breakout)"},
	},
	Required: []string{"type", "reasoning", "confidence", "pattern"},
}

var overviewResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"sentiment": {Type: genai.TypeString, Description: "BULLISH, BEARISH, NEUTRAL, or VOLATILE"},
		"summary":   {Type: genai.TypeString, Description: "Direct, high-impact market summary"},
		"headlines": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":  {Type: genai.TypeString},
					"url":    {Type: genai.TypeString},
					"source": {Type: genai.TypeString},
				},
				Required: []string{"title", "source"},
			},
		},
	},
	Required: []string{"sentiment", "summary", "headlines"},
}

// AnalyzeSignal asks Gemini to classify one instrument.
func (r *geminiAIRepository) AnalyzeSignal(ctx context.Context, snapshot entity.InstrumentSnapshot) (*dto.SignalAnalysisResult, error) {
	prompt := BuildSignalAnalysisPrompt(snapshot, r.cfg.Scanner.HistoryForPrompt)

	resp, err := r.executeGeminiAIRequest(ctx, prompt, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(signalSystemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    signalResponseSchema,
	})
	if err != nil {
		return nil, err
	}

	result, err := r.parseSignalAnalysisResponse(resp)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// MarketOverview asks Gemini for the market-wide sentiment. With google_search enabled the search tool
// is attached and the JSON shape is enforced by the prompt only, since tools and response schemas
// cannot be combined.
func (r *geminiAIRepository) MarketOverview(ctx context.Context, headlines []dto.Headline) (*dto.MarketOverviewResult, error) {
	prompt := BuildMarketOverviewPrompt(headlines)

	genCfg := &genai.GenerateContentConfig{}
	if r.cfg.Gemini.GoogleSearch {
		genCfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	} else {
		genCfg.ResponseMIMEType = "application/json"
		genCfg.ResponseSchema = overviewResponseSchema
	}

	resp, err := r.executeGeminiAIRequest(ctx, prompt, genCfg)
	if err != nil {
		return nil, err
	}

	return r.parseMarketOverviewResponse(resp)
}

func (r *geminiAIRepository) executeGeminiAIRequest(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.cfg.Gemini.Timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	r.logger.DebugContext(ctx, "Request Gemini API", logger.StringField("model", r.cfg.Gemini.Model), logger.IntField("prompt_length", len(prompt)))

	start := time.Now()
	resp, err := r.generator.GenerateContent(ctxTimeout, r.cfg.Gemini.Model, contents, genCfg)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to send request to Gemini API", logger.ErrorField(err), logger.DurationField("elapsed", time.Since(start)))
		return nil, fmt.Errorf("failed to send request to Gemini API: %w", err)
	}

	r.logger.DebugContext(ctx, "Gemini API responded", logger.DurationField("elapsed", time.Since(start)))
	return resp, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content found in Gemini response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}

	rawJSON := strings.TrimSpace(b.String())
	rawJSON = strings.Trim(rawJSON, "`json\n`")
	if rawJSON == "" {
		return "", fmt.Errorf("empty text in Gemini response")
	}
	return rawJSON, nil
}

func groundingURIs(resp *genai.GenerateContentResponse) []string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var uris []string
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			uris = append(uris, "")
			continue
		}
		uris = append(uris, chunk.Web.URI)
	}
	return uris
}

func (r *geminiAIRepository) parseSignalAnalysisResponse(resp *genai.GenerateContentResponse) (*dto.SignalAnalysisResult, error) {
	rawJSON, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	var result dto.SignalAnalysisResult
	if err := json.Unmarshal([]byte(rawJSON), &result); err != nil {
		r.logger.Error("Failed to unmarshal signal analysis from Gemini response", logger.ErrorField(err), logger.StringField("response", rawJSON))
		return nil, fmt.Errorf("failed to unmarshal signal analysis from Gemini response: %w", err)
	}

	result.Type = normalizeLabel(result.Type)
	if !entity.SignalType(result.Type).Valid() {
		return nil, fmt.Errorf("unknown signal type %q in Gemini response", result.Type)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		return nil, fmt.Errorf("confidence %.4f out of range in Gemini response", result.Confidence)
	}
	return &result, nil
}

func (r *geminiAIRepository) parseMarketOverviewResponse(resp *genai.GenerateContentResponse) (*dto.MarketOverviewResult, error) {
	rawJSON, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	var result dto.MarketOverviewResult
	if err := json.Unmarshal([]byte(rawJSON), &result); err != nil {
		r.logger.Error("Failed to unmarshal market overview from Gemini response", logger.ErrorField(err), logger.StringField("response", rawJSON))
		return nil, fmt.Errorf("failed to unmarshal market overview from Gemini response: %w", err)
	}

	result.Sentiment = normalizeLabel(result.Sentiment)
	if !entity.Sentiment(result.Sentiment).Valid() {
		return nil, fmt.Errorf("unknown sentiment %q in Gemini response", result.Sentiment)
	}

	if len(result.Headlines) > maxOverviewHeadlines {
		result.Headlines = result.Headlines[:maxOverviewHeadlines]
	}
	uris := groundingURIs(resp)
	for i := range result.Headlines {
		if result.Headlines[i].URL != "" {
			continue
		}
		if i < len(uris) && uris[i] != "" {
			result.Headlines[i].URL = uris[i]
		} else {
			result.Headlines[i].URL = "#"
		}
	}
	return &result, nil
}

func normalizeLabel(s string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), " ", "_")
}
