package bookschema

import (
	"encoding/json"
	"testing"
)

func validBookJSON() string {
	return `{
		"id": 1,
		"title": "The Hobbit",
		"original_title": "There and Back Again",
		"genre": "Fantasy",
		"synopsis": "A hobbit...",
		"original_language": "en",
		"release_date": "1937-09-21"
	}`
}

func TestValidateBookPayloadAccepted(t *testing.T) {
	book, err := ValidateBookPayload(json.RawMessage(validBookJSON()))
	if err != nil {
		t.Fatalf("ValidateBookPayload failed: %v", err)
	}
	if book.ID != 1 || book.Title != "The Hobbit" || book.OriginalLanguage != "en" {
		t.Fatalf("unexpected payload: %+v", book)
	}
}

func TestValidateBookPayloadRejections(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "not json", body: "not-json"},
		{name: "trailing content", body: validBookJSON() + `{"again": true}`},
		{name: "missing title", body: `{"id":1,"original_title":"","genre":"","synopsis":"","original_language":"en","release_date":""}`},
		{name: "blank title", body: `{"id":1,"title":"  ","original_title":"","genre":"","synopsis":"","original_language":"en","release_date":""}`},
		{name: "string id", body: `{"id":"1","title":"x","original_title":"","genre":"","synopsis":"","original_language":"en","release_date":""}`},
		{name: "zero id", body: `{"id":0,"title":"x","original_title":"","genre":"","synopsis":"","original_language":"en","release_date":""}`},
		{name: "unknown field", body: `{"id":1,"title":"x","original_title":"","genre":"","synopsis":"","original_language":"en","release_date":"","publisher":"y"}`},
		{name: "bad language tag", body: `{"id":1,"title":"x","original_title":"","genre":"","synopsis":"","original_language":"12","release_date":""}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ValidateBookPayload(json.RawMessage(tc.body)); err == nil {
				t.Fatalf("expected rejection for %s", tc.name)
			}
		})
	}
}
