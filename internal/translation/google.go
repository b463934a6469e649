package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"horse.fit/bookstore/internal/language"
)

const (
	// DefaultGoogleEndpoint is the Google Cloud Translation v2 REST endpoint.
	DefaultGoogleEndpoint = "https://translation.googleapis.com/language/translate/v2"

	defaultGoogleTimeout = 30 * time.Second
)

// GoogleProvider translates text through the Google Cloud Translation v2 REST
// API, authenticated with an API key.
type GoogleProvider struct {
	endpointURL string
	apiKey      string
	client      *http.Client
}

// NewGoogleProviderFromEnv builds a provider from env vars.
//   - GOOGLE_TRANSLATE_API_KEY (required for the provider to be usable)
//   - GOOGLE_TRANSLATE_ENDPOINT (default: the public v2 endpoint)
func NewGoogleProviderFromEnv() *GoogleProvider {
	return NewGoogleProvider(
		strings.TrimSpace(os.Getenv("GOOGLE_TRANSLATE_ENDPOINT")),
		strings.TrimSpace(os.Getenv("GOOGLE_TRANSLATE_API_KEY")),
	)
}

// NewGoogleProvider builds a provider for the given endpoint.
func NewGoogleProvider(endpoint, apiKey string) *GoogleProvider {
	resolved := strings.TrimSpace(endpoint)
	if resolved == "" {
		resolved = DefaultGoogleEndpoint
	}
	return &GoogleProvider{
		endpointURL: resolved,
		apiKey:      strings.TrimSpace(apiKey),
		client: &http.Client{
			Timeout: defaultGoogleTimeout,
		},
	}
}

// Configured reports whether an API key is present. An unconfigured provider
// is not registered, so it never serves requests.
func (p *GoogleProvider) Configured() bool {
	return p != nil && p.apiKey != ""
}

func (p *GoogleProvider) Name() string {
	return "google"
}

func (p *GoogleProvider) SupportedLanguages() []string {
	return SupportedTranslationLanguageCodes()
}

func (p *GoogleProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	if p == nil {
		return nil, fmt.Errorf("google provider is nil")
	}
	if !p.Configured() {
		return nil, fmt.Errorf("google provider requires GOOGLE_TRANSLATE_API_KEY")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}

	sourceLang := language.NormalizeCode(req.SourceLang)
	targetLang := language.NormalizeCode(req.TargetLang)
	if targetLang == "" {
		return nil, fmt.Errorf("target language is required")
	}

	body, err := json.Marshal(googleTranslateRequest{
		Query:  []string{text},
		Source: sourceLang,
		Target: targetLang,
		Format: "text",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal translation request: %w", err)
	}

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.requestURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build translation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send translation request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read translation response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errPayload googleErrorResponse
		if unmarshalErr := json.Unmarshal(respBody, &errPayload); unmarshalErr == nil {
			if msg := strings.TrimSpace(errPayload.Error.Message); msg != "" {
				return nil, fmt.Errorf("translation endpoint status %d: %s", resp.StatusCode, msg)
			}
		}
		return nil, fmt.Errorf("translation endpoint status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed googleTranslateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode translation response: %w", err)
	}
	if len(parsed.Data.Translations) == 0 {
		return nil, fmt.Errorf("translation response was empty")
	}
	translated := strings.TrimSpace(parsed.Data.Translations[0].TranslatedText)
	if translated == "" {
		return nil, fmt.Errorf("translation response was empty")
	}

	return &TranslateResponse{
		Text:         translated,
		SourceLang:   sourceLang,
		TargetLang:   targetLang,
		ProviderName: p.Name(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

func (p *GoogleProvider) requestURL() string {
	return p.endpointURL + "?key=" + url.QueryEscape(p.apiKey)
}

type googleTranslateRequest struct {
	Query  []string `json:"q"`
	Source string   `json:"source,omitempty"`
	Target string   `json:"target"`
	Format string   `json:"format,omitempty"`
}

type googleTranslateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

type googleErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
