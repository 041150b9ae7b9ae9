package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/autopeer-io/inventory/internal/inventory/core/model"
)

// decodeFieldErrors reads a backend error body of the form
//
//	{"field": ["message", ...], "detail": "message", ...}
//
// keeping the order of the keys as sent, since the first key is the headline.
// String values become a single message; other values are kept as raw JSON.
// It returns nil when the body is not a JSON object. lists reports whether
// every value was an array, the shape of per-field validation errors.
func decodeFieldErrors(r io.Reader) (fields *model.FieldErrors, lists bool) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, false
	}

	fields = &model.FieldErrors{}
	lists = true
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		key, ok := tok.(string)
		if !ok {
			break
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			break
		}
		if t := bytes.TrimSpace(raw); len(t) == 0 || t[0] != '[' {
			lists = false
		}
		for _, msg := range messages(raw) {
			fields.Add(key, msg)
		}
	}
	if fields.Empty() {
		return nil, false
	}
	return fields, lists
}

func messages(raw json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return []string{""}
		}
		return list
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}
	}
	var anyList []any
	if err := json.Unmarshal(raw, &anyList); err == nil {
		out := make([]string, 0, len(anyList))
		for _, v := range anyList {
			out = append(out, fmt.Sprint(v))
		}
		return out
	}
	return []string{string(raw)}
}
