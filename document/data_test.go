package document

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStringify(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "hola", "hola"},
		{"json number", json.Number("1e3"), "1e3"},
		{"bool", false, "false"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float", 2.5, "2.5"},
		{"whole float", 3.0, "3"},
		{"date", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "2024-03-01"},
		{"timestamp", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), "2024-03-01T10:30:00Z"},
		{"scalar", Scalar("x"), "x"},
		{"map", map[string]any{"a": 1}, ""},
		{"slice", []any{"a"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stringify(tt.in); got != tt.want {
				t.Errorf("Stringify(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDataRows(t *testing.T) {
	d := Data{
		"items": []any{
			[]any{"a", json.Number("1"), nil},
			"solo",
			map[string]any{"skip": true},
			[]any{},
		},
		"notrows": "text",
	}

	rows := d.Rows("items")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %v", len(rows), rows)
	}
	if rows[0][0] != "a" || rows[0][1] != "1" || rows[0][2] != "" {
		t.Errorf("unexpected first row %v", rows[0])
	}
	if len(rows[1]) != 1 || rows[1][0] != "solo" {
		t.Errorf("scalar row should be single cell, got %v", rows[1])
	}
	if len(rows[2]) != 0 {
		t.Errorf("empty row should stay empty, got %v", rows[2])
	}
	if d.Rows("notrows") != nil || d.Rows("missing") != nil {
		t.Error("non sequence data should yield nil rows")
	}
}

func TestDataAssetsBase(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"https://cdn.example.com/", "https://cdn.example.com"},
		{" /static// ", "/static"},
	}
	for _, tt := range tests {
		d := Data{}
		if tt.in != nil {
			d[AssetsBaseField] = tt.in
		}
		if got := d.AssetsBase(); got != tt.want {
			t.Errorf("AssetsBase(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScalarInt(t *testing.T) {
	tests := []struct {
		in   Scalar
		want int
		ok   bool
	}{
		{"2", 2, true},
		{" 2.0 ", 2, true},
		{"2.5", 0, false},
		{"two", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.in.Int()
		if got != tt.want || ok != tt.ok {
			t.Errorf("Scalar(%q).Int() = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
