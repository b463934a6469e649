package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"horse.fit/bookstore/internal/catalog"
	"horse.fit/bookstore/internal/db"
)

type translateCall struct {
	bookID   int64
	language string
}

type fakeTranslator struct {
	row     *db.BookTranslation
	created bool
	err     error
	calls   []translateCall
}

func (f *fakeTranslator) GetOrCreateTranslation(
	_ context.Context,
	bookID int64,
	lang string,
) (*db.BookTranslation, bool, error) {
	f.calls = append(f.calls, translateCall{bookID: bookID, language: lang})
	if f.err != nil {
		return nil, false, f.err
	}
	copyRow := *f.row
	return &copyRow, f.created, nil
}

func newTranslationContext(path, bookID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("book_id")
	c.SetParamValues(bookID)
	return c, rec
}

func TestHandleBookTranslation_ReturnsFreshTranslation(t *testing.T) {
	t.Parallel()

	translator := &fakeTranslator{
		row: &db.BookTranslation{
			BookID:             1,
			Language:           "fr",
			TranslatedSynopsis: "Bilbon Sacquet part en quête.",
			Title:              "The Hobbit",
			OriginalLanguage:   "en",
			ProviderName:       "libre",
			CreatedAt:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		created: true,
	}
	server := newTestServer(newFakeCatalog(), translator)

	c, rec := newTranslationContext("/api/v1/books/1/translation?language=fr", "1")
	if err := server.handleBookTranslation(c); err != nil {
		t.Fatalf("handleBookTranslation returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if len(translator.calls) != 1 || translator.calls[0].bookID != 1 || translator.calls[0].language != "fr" {
		t.Fatalf("unexpected translator calls: %#v", translator.calls)
	}

	data := decodeJSendData(t, rec)
	view, ok := data["translation"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected translation payload: %#v", data)
	}
	if view["translated_synopsis"] != "Bilbon Sacquet part en quête." {
		t.Fatalf("unexpected translated synopsis: %#v", view["translated_synopsis"])
	}
	if view["cached"] != false {
		t.Fatalf("expected cached=false on a fresh translation, got %#v", view["cached"])
	}
	if view["provider_name"] != "libre" {
		t.Fatalf("unexpected provider name: %#v", view["provider_name"])
	}
}

func TestHandleBookTranslation_MarksCachedResult(t *testing.T) {
	t.Parallel()

	translator := &fakeTranslator{
		row: &db.BookTranslation{
			BookID:             1,
			Language:           "fr",
			TranslatedSynopsis: "Bilbon Sacquet part en quête.",
		},
		created: false,
	}
	server := newTestServer(newFakeCatalog(), translator)

	c, rec := newTranslationContext("/api/v1/books/1/translation?language=fr", "1")
	if err := server.handleBookTranslation(c); err != nil {
		t.Fatalf("handleBookTranslation returned error: %v", err)
	}

	data := decodeJSendData(t, rec)
	view := data["translation"].(map[string]any)
	if view["cached"] != true {
		t.Fatalf("expected cached=true on a stored translation, got %#v", view["cached"])
	}
}

func TestHandleBookTranslation_MissingLanguage(t *testing.T) {
	t.Parallel()

	translator := &fakeTranslator{}
	server := newTestServer(newFakeCatalog(), translator)

	c, rec := newTranslationContext("/api/v1/books/1/translation", "1")
	if err := server.handleBookTranslation(c); err != nil {
		t.Fatalf("handleBookTranslation returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
	if len(translator.calls) != 0 {
		t.Fatalf("did not expect translator calls, got %#v", translator.calls)
	}

	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	if envelope.Message != "Missing bookId or language parameter" {
		t.Fatalf("unexpected message: %q", envelope.Message)
	}
}

func TestHandleBookTranslation_InvalidBookID(t *testing.T) {
	t.Parallel()

	translator := &fakeTranslator{}
	server := newTestServer(newFakeCatalog(), translator)

	c, rec := newTranslationContext("/api/v1/books/abc/translation?language=fr", "abc")
	if err := server.handleBookTranslation(c); err != nil {
		t.Fatalf("handleBookTranslation returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
	if len(translator.calls) != 0 {
		t.Fatalf("did not expect translator calls, got %#v", translator.calls)
	}
}

func TestHandleBookTranslation_BookNotFound(t *testing.T) {
	t.Parallel()

	translator := &fakeTranslator{err: catalog.ErrBookNotFound}
	server := newTestServer(newFakeCatalog(), translator)

	c, rec := newTranslationContext("/api/v1/books/999/translation?language=fr", "999")
	if err := server.handleBookTranslation(c); err != nil {
		t.Fatalf("handleBookTranslation returned error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusNotFound)
	}

	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	if envelope.Message != "Original item not found" {
		t.Fatalf("unexpected message: %q", envelope.Message)
	}
}

func TestHandleBookTranslation_ProviderFailure(t *testing.T) {
	t.Parallel()

	translator := &fakeTranslator{err: catalog.ErrTranslationFailed}
	server := newTestServer(newFakeCatalog(), translator)

	c, rec := newTranslationContext("/api/v1/books/1/translation?language=fr", "1")
	if err := server.handleBookTranslation(c); err != nil {
		t.Fatalf("handleBookTranslation returned error: %v", err)
	}

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got %d want %d", rec.Code, http.StatusInternalServerError)
	}
}
