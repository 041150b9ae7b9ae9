package remote

import (
	"reflect"
	"strings"
	"testing"
)

func TestDecodeFieldErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKeys []string
		headline string
		lists    bool
	}{
		{
			name:     "key order preserved",
			body:     `{"zeta": ["z1"], "alpha": ["a1", "a2"]}`,
			wantKeys: []string{"zeta", "alpha"},
			headline: "zeta: z1",
			lists:    true,
		},
		{
			name:     "string value",
			body:     `{"detail": "Not found."}`,
			wantKeys: []string{"detail"},
			headline: "detail: Not found.",
		},
		{
			name:     "multiple messages joined",
			body:     `{"preis": ["A valid number is required.", "Must be positive."]}`,
			wantKeys: []string{"preis"},
			headline: "preis: A valid number is required., Must be positive.",
			lists:    true,
		},
		{
			name:     "non-string list values",
			body:     `{"images": [1, true]}`,
			wantKeys: []string{"images"},
			headline: "images: 1, true",
			lists:    true,
		},
		{
			name:     "mixed values",
			body:     `{"marke": ["This field may not be blank."], "error": "boom"}`,
			wantKeys: []string{"marke", "error"},
			headline: "marke: This field may not be blank.",
		},
		{name: "array body", body: `["oops"]`},
		{name: "html body", body: `<html></html>`},
		{name: "empty object", body: `{}`},
		{name: "empty body", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, lists := decodeFieldErrors(strings.NewReader(tt.body))
			if tt.wantKeys == nil {
				if got != nil {
					t.Fatalf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected field errors, got nil")
			}
			if !reflect.DeepEqual(got.Keys, tt.wantKeys) {
				t.Errorf("Keys = %v, want %v", got.Keys, tt.wantKeys)
			}
			if got.Headline() != tt.headline {
				t.Errorf("Headline = %q, want %q", got.Headline(), tt.headline)
			}
			if lists != tt.lists {
				t.Errorf("lists = %v, want %v", lists, tt.lists)
			}
		})
	}
}
