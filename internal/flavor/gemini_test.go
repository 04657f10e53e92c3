package flavor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/dnadash-backend/internal/config"
)

func testProvider(apiKey, baseURL string) *GeminiProvider {
	p := NewGeminiProvider(&config.Config{
		GeminiAPIKey:  apiKey,
		GeminiModel:   "gemini-2.5-flash",
		FlavorTimeout: 2 * time.Second,
	}, nil, zerolog.Nop())
	if baseURL != "" {
		p.baseURL = baseURL
	}
	return p
}

func TestMissingAPIKeyFallsBack(t *testing.T) {
	p := testProvider("", "")

	briefing := p.MissionBriefing(context.Background(), 1)
	if !briefing.FromFallback || briefing.Text != FallbackBriefing {
		t.Errorf("MissionBriefing without key = %+v, want tagged fallback", briefing)
	}

	fact := p.FunFact(context.Background())
	if !fact.FromFallback || fact.Text != FallbackFact {
		t.Errorf("FunFact without key = %+v, want tagged fallback", fact)
	}
}

func TestServerErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := testProvider("test-key", srv.URL)
	got := p.MissionBriefing(context.Background(), 2)
	if !got.FromFallback {
		t.Errorf("MissionBriefing on 500 = %+v, want fallback", got)
	}
}

func TestSuccessfulGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		resp := geminiResponse{}
		resp.Candidates = append(resp.Candidates, struct {
			Content geminiContent `json:"content"`
		}{Content: geminiContent{Parts: []geminiPart{{Text: "  Sequence fast!  "}}}})
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	p := testProvider("test-key", srv.URL)
	got := p.FunFact(context.Background())
	if got.FromFallback {
		t.Fatalf("FunFact = %+v, want live result", got)
	}
	if got.Text != "Sequence fast!" {
		t.Errorf("FunFact text = %q, want trimmed server text", got.Text)
	}
}

func TestEmptyCandidatesFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiResponse{})
	}))
	defer srv.Close()

	p := testProvider("test-key", srv.URL)
	if got := p.FunFact(context.Background()); !got.FromFallback {
		t.Errorf("FunFact on empty candidates = %+v, want fallback", got)
	}
}
