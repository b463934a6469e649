package translation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLibreProvider_TranslateSendsNormalizedRequest(t *testing.T) {
	t.Parallel()

	var captured libreTranslateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/translate" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(libreTranslateResponse{TranslatedText: "Bonjour le monde"})
	}))
	defer srv.Close()

	provider := NewLibreProvider(srv.URL, "test-key")
	resp, err := provider.Translate(context.Background(), TranslateRequest{
		Text:       "Hello world",
		SourceLang: "EN",
		TargetLang: "FR",
	})
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}

	if captured.Query != "Hello world" {
		t.Fatalf("unexpected query sent: %q", captured.Query)
	}
	if captured.Source != "en" || captured.Target != "fr" {
		t.Fatalf("expected normalized language codes, got source=%q target=%q", captured.Source, captured.Target)
	}
	if captured.APIKey != "test-key" {
		t.Fatalf("unexpected api key sent: %q", captured.APIKey)
	}
	if resp.Text != "Bonjour le monde" {
		t.Fatalf("unexpected translated text: %q", resp.Text)
	}
	if resp.ProviderName != "libre" {
		t.Fatalf("unexpected provider name: %q", resp.ProviderName)
	}
}

func TestLibreProvider_TranslateSurfacesEndpointError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(libreErrorResponse{Error: "Invalid API key"})
	}))
	defer srv.Close()

	provider := NewLibreProvider(srv.URL, "bad-key")
	_, err := provider.Translate(context.Background(), TranslateRequest{
		Text:       "Hello world",
		SourceLang: "en",
		TargetLang: "fr",
	})
	if err == nil {
		t.Fatalf("expected error from endpoint failure")
	}
	if !strings.Contains(err.Error(), "Invalid API key") {
		t.Fatalf("expected endpoint message in error, got %v", err)
	}
}

func TestLibreProvider_TranslateRejectsEmptyResult(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(libreTranslateResponse{TranslatedText: "   "})
	}))
	defer srv.Close()

	provider := NewLibreProvider(srv.URL, "")
	_, err := provider.Translate(context.Background(), TranslateRequest{
		Text:       "Hello world",
		SourceLang: "en",
		TargetLang: "fr",
	})
	if err == nil {
		t.Fatalf("expected error for blank translation")
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty falls back to default", raw: "", want: DefaultLibreEndpoint},
		{name: "bare host gains scheme", raw: "translate.local:5000", want: "http://translate.local:5000"},
		{name: "trailing slash trimmed", raw: "https://translate.example.com/", want: "https://translate.example.com"},
		{name: "query stripped", raw: "https://translate.example.com?x=1", want: "https://translate.example.com"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeEndpoint(tc.raw); got != tc.want {
				t.Fatalf("normalizeEndpoint(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}
