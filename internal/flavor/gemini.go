// Package flavor fetches mission briefings and fun facts from the Gemini
// API. Every fetch goes through a single attempt-with-fallback path: one
// request, bounded by a timeout, and a fixed fallback string on any
// failure. Flavor text never affects scoring or progression.
package flavor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/dnadash-backend/internal/config"
)

const (
	FallbackBriefing = "Your objective is to correctly sequence the complementary DNA strand. Accuracy and speed are critical. Good luck, scientist!"
	FallbackFact     = "If you uncoiled all the DNA in your body, it would stretch from the Earth to the Sun and back over 600 times!"
)

// Result is a tagged flavor-text outcome so tests and logs can tell a live
// response from the canned fallback.
type Result struct {
	Text         string `json:"text"`
	FromFallback bool   `json:"from_fallback"`
}

// Provider produces flavor text for the game session.
type Provider interface {
	MissionBriefing(ctx context.Context, level int) Result
	FunFact(ctx context.Context) Result
}

// GeminiProvider calls the Gemini generateContent REST endpoint directly.
// Briefings are cached in Redis per level; facts are fetched fresh.
type GeminiProvider struct {
	apiKey   string
	model    string
	baseURL  string
	timeout  time.Duration
	client   *http.Client
	rdb      *redis.Client
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewGeminiProvider builds a provider from config. A nil rdb disables the
// briefing cache; an empty API key makes every call fall back immediately.
func NewGeminiProvider(cfg *config.Config, rdb *redis.Client, log zerolog.Logger) *GeminiProvider {
	return &GeminiProvider{
		apiKey:   cfg.GeminiAPIKey,
		model:    cfg.GeminiModel,
		baseURL:  "https://generativelanguage.googleapis.com/v1beta",
		timeout:  cfg.FlavorTimeout,
		client:   &http.Client{Timeout: cfg.FlavorTimeout},
		rdb:      rdb,
		cacheTTL: cfg.BriefingTTL,
		log:      log.With().Str("component", "flavor").Logger(),
	}
}

// MissionBriefing returns a short briefing for the given level.
func (p *GeminiProvider) MissionBriefing(ctx context.Context, level int) Result {
	if p.rdb != nil {
		cached, err := p.rdb.Get(ctx, config.CacheKey.BriefingKey(level)).Result()
		if err == nil && cached != "" {
			return Result{Text: cached}
		}
	}

	prompt := fmt.Sprintf(
		"Generate a short, exciting, one-paragraph mission briefing for a DNA sequencing game. "+
			"The player is at level %d. The theme is scientific discovery. "+
			"Make it sound urgent and important, but keep it brief (2-3 sentences). Do not use markdown.",
		level,
	)

	text, err := p.generate(ctx, prompt)
	if err != nil {
		p.log.Warn().Err(err).Int("level", level).Msg("briefing fetch failed, using fallback")
		return Result{Text: FallbackBriefing, FromFallback: true}
	}

	if p.rdb != nil {
		if err := p.rdb.Set(ctx, config.CacheKey.BriefingKey(level), text, p.cacheTTL).Err(); err != nil {
			p.log.Warn().Err(err).Msg("briefing cache write failed")
		}
	}
	return Result{Text: text}
}

// FunFact returns one fact about DNA, genetics, or biology.
func (p *GeminiProvider) FunFact(ctx context.Context) Result {
	prompt := "Give me one interesting and surprising fun fact about DNA, genetics, or biology " +
		"that a beginner would understand. Keep it to one or two sentences. Do not use markdown."

	text, err := p.generate(ctx, prompt)
	if err != nil {
		p.log.Warn().Err(err).Msg("fun fact fetch failed, using fallback")
		return Result{Text: FallbackFact, FromFallback: true}
	}
	return Result{Text: text}
}

// ─── Gemini wire types ──────────────────────────────────────────────

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

var errNoAPIKey = errors.New("no API key configured")

// generate performs one generateContent call. No retries: flavor text is
// disposable and the session has a fallback for every caller.
func (p *GeminiProvider) generate(ctx context.Context, prompt string) (string, error) {
	if p.apiKey == "" {
		return "", errNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty candidate list")
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", errors.New("empty text in response")
	}
	return text, nil
}
