package log

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestToFields(t *testing.T) {
	err := errors.New("boom")

	tests := []struct {
		name     string
		input    []any
		wantKeys []string
	}{
		{"empty input", []any{}, nil},
		{"string-int-bool", []any{"make", "BMW", "id", 7, "stale", true}, []string{"make", "id", "stale"}},
		{"int64 id", []any{"id", int64(42)}, []string{"id"}},
		{"duration", []any{"took", 3 * time.Millisecond}, []string{"took"}},
		{"error only", []any{err}, []string{"error"}},
		{"error mid list", []any{"id", 1, err, "op", "delete"}, []string{"id", "error", "op"}},
		{"zap field passthrough", []any{zap.String("x", "y"), "n", 1}, []string{"x", "n"}},
		{"odd number of args", []any{"key1", "val1", "key2"}, []string{"key1", "arg#2"}},
		{"non-string key", []any{123, "value"}, []string{"invalid_key_1"}},
		{"nil values", []any{"a", nil, "b", (*int)(nil)}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := toFields(tt.input...)

			if len(fields) != len(tt.wantKeys) {
				t.Fatalf("got %d fields, want %d: %+v", len(fields), len(tt.wantKeys), fields)
			}
			for i, f := range fields {
				if f.Key != tt.wantKeys[i] {
					t.Errorf("field %d key = %q, want %q", i, f.Key, tt.wantKeys[i])
				}
			}
		})
	}
}

func TestToFieldTypes(t *testing.T) {
	if f := toField("s", "v"); f.Type != zapcore.StringType {
		t.Errorf("string field type = %v", f.Type)
	}
	if f := toField("i", 3); f.Type != zapcore.Int64Type {
		t.Errorf("int field type = %v", f.Type)
	}
	if f := toField("b", true); f.Type != zapcore.BoolType {
		t.Errorf("bool field type = %v", f.Type)
	}
	if f := toField("d", time.Second); f.Type != zapcore.StringerType {
		t.Errorf("duration field type = %v", f.Type)
	}
}
