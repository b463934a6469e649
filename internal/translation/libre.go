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
	// DefaultLibreEndpoint points to a self-hosted LibreTranslate instance.
	DefaultLibreEndpoint = "http://127.0.0.1:5000"

	defaultLibreTimeout = 30 * time.Second
)

// LibreProvider translates text through a LibreTranslate-compatible HTTP API.
type LibreProvider struct {
	endpointURL string
	apiKey      string
	client      *http.Client
}

// NewLibreProviderFromEnv builds a provider from env vars.
//   - TRANSLATION_ENDPOINT (default: http://127.0.0.1:5000)
//   - TRANSLATION_API_KEY (optional)
func NewLibreProviderFromEnv() *LibreProvider {
	return NewLibreProvider(
		strings.TrimSpace(os.Getenv("TRANSLATION_ENDPOINT")),
		strings.TrimSpace(os.Getenv("TRANSLATION_API_KEY")),
	)
}

// NewLibreProvider builds a provider for the given endpoint.
func NewLibreProvider(endpoint, apiKey string) *LibreProvider {
	return &LibreProvider{
		endpointURL: translateURL(normalizeEndpoint(endpoint)),
		apiKey:      strings.TrimSpace(apiKey),
		client: &http.Client{
			Timeout: defaultLibreTimeout,
		},
	}
}

func (p *LibreProvider) Name() string {
	return "libre"
}

func (p *LibreProvider) SupportedLanguages() []string {
	return SupportedTranslationLanguageCodes()
}

func (p *LibreProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	if p == nil {
		return nil, fmt.Errorf("libre provider is nil")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}

	sourceLang := language.NormalizeCode(req.SourceLang)
	if sourceLang == "" {
		sourceLang = "auto"
	}
	targetLang := language.NormalizeCode(req.TargetLang)
	if targetLang == "" {
		return nil, fmt.Errorf("target language is required")
	}

	body, err := json.Marshal(libreTranslateRequest{
		Query:  text,
		Source: sourceLang,
		Target: targetLang,
		Format: "text",
		APIKey: p.apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal translation request: %w", err)
	}

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpointURL, bytes.NewReader(body))
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
		var errPayload libreErrorResponse
		if unmarshalErr := json.Unmarshal(respBody, &errPayload); unmarshalErr == nil {
			if msg := strings.TrimSpace(errPayload.Error); msg != "" {
				return nil, fmt.Errorf("translation endpoint status %d: %s", resp.StatusCode, msg)
			}
		}
		return nil, fmt.Errorf("translation endpoint status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed libreTranslateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode translation response: %w", err)
	}

	translated := strings.TrimSpace(parsed.TranslatedText)
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

type libreTranslateRequest struct {
	Query  string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format,omitempty"`
	APIKey string `json:"api_key,omitempty"`
}

type libreTranslateResponse struct {
	TranslatedText string `json:"translatedText"`
}

type libreErrorResponse struct {
	Error string `json:"error"`
}

func normalizeEndpoint(raw string) string {
	endpoint := strings.TrimSpace(raw)
	if endpoint == "" {
		return DefaultLibreEndpoint
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return DefaultLibreEndpoint
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String()
}

func translateURL(endpoint string) string {
	if strings.HasSuffix(endpoint, "/translate") {
		return endpoint
	}
	return endpoint + "/translate"
}
