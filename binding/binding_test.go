package binding

import (
	"slices"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		tpl    string
		kind   Kind
		want   string
		wantOK bool
	}{
		{"column", "{{col:name}}", KindColumn, "name", true},
		{"image", "{{img:photo_1}}", KindImage, "photo_1", true},
		{"table", "{{table:items}}", KindTable, "items", true},
		{"first image wins", "{{img:a}}{{img:b}}", KindImage, "a", true},
		{"first table wins", "x {{table:t1}} y {{table:t2}}", KindTable, "t1", true},
		{"kind mismatch", "{{col:name}}", KindImage, "", false},
		{"empty name", "{{img:}}", KindImage, "", false},
		{"name with spaces", "{{col:first name}}", KindColumn, "first name", true},
		{"no placeholder", "plain", KindColumn, "", false},
		{"unknown kind", "{{col:a}}", Kind("row"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.tpl, tt.kind)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Extract(%q, %s) = %q, %v; want %q, %v", tt.tpl, tt.kind, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNames(t *testing.T) {
	got := Names("{{col:a}} and {{img:x}} and {{col:b}}", KindColumn)
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v", got)
	}
	if got := Names("nothing", KindTable); got != nil {
		t.Errorf("Names() = %v, want nil", got)
	}
}

func TestText(t *testing.T) {
	data := map[string]string{"first": "Ana", "last": "Ruiz", "zero": "0"}
	resolve := func(name string) string { return data[name] }

	tests := []struct {
		tpl  string
		want string
	}{
		{"{{col:first}}", "Ana"},
		{"Name: {{col:first}} {{col:last}}!", "Name: Ana Ruiz!"},
		{"{{col:missing}}", ""},
		{"[{{col:missing}}]", "[]"},
		{"{{col:zero}}", "0"},
		{"literal only", "literal only"},
		{"{{img:first}}", ""},
		{"see {{table:first}}", "see "},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Text(tt.tpl, resolve); got != tt.want {
			t.Errorf("Text(%q) = %q, want %q", tt.tpl, got, tt.want)
		}
	}
}
