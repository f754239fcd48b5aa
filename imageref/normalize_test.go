package imageref

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

const testID = "ABCDEFGHIJKLMNOPQRSTUVWX"

func TestExtractProviderID(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"file view", "https://drive.google.com/file/d/" + testID + "/view", testID, true},
		{"file view with query", "https://drive.google.com/file/d/" + testID + "/view?usp=sharing", testID, true},
		{"uc export", "https://drive.google.com/uc?export=view&id=" + testID, testID, true},
		{"uc id first", "https://drive.google.com/uc?id=" + testID + "&export=download", testID, true},
		{"open", "https://drive.google.com/open?id=" + testID, testID, true},
		{"thumbnail", "https://drive.google.com/thumbnail?sz=w1000&id=" + testID, testID, true},
		{"docs uc", "https://docs.google.com/uc?id=" + testID, testID, true},
		{"usercontent", "https://lh3.googleusercontent.com/d/" + testID + "=s0", testID, true},
		{"too short id", "https://drive.google.com/file/d/short/view", "", false},
		{"other host", "https://example.com/file/" + testID, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractProviderID(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ExtractProviderID(%q) = %q, %v; want %q, %v", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	canonical := "https://lh3.googleusercontent.com/d/" + testID + "=s0"

	tests := []struct {
		name string
		opts []Option
		raw  string
		want string
	}{
		{"drive file url", nil, "https://drive.google.com/file/d/" + testID + "/view", canonical},
		{"bare id", nil, testID, canonical},
		{"bare id with spaces", nil, "  " + testID + "\n", canonical},
		{"too short", nil, "not-a-url", ""},
		{"empty", nil, "", ""},
		{"blank", nil, "   ", ""},
		{"data uri", nil, "data:image/png;base64,iVBORw0KGgo=", "data:image/png;base64,iVBORw0KGgo="},
		{"provider passthrough", nil, "https://drive.google.com/drive/folders/xyz", "https://drive.google.com/drive/folders/xyz"},
		{"external rejected", nil, "https://example.com/a.png", ""},
		{"external allowed", []Option{WithExternalURLs(true)}, "https://example.com/a.png", "https://example.com/a.png"},
		{"asset relative", nil, "asset:logo 1.png", "/assets/logo%201.png"},
		{"asset with base", []Option{WithAssetsBase("https://cdn.example.com/")}, "asset:abc", "https://cdn.example.com/assets/abc"},
		{"asset without id", nil, "asset:", ""},
		{"asset wins over bare id", nil, "asset:" + testID, "/assets/" + testID},
		{"custom endpoint", []Option{WithEndpoint("https://drive.google.com/thumbnail?id={id}&sz=w2000")}, testID, "https://drive.google.com/thumbnail?id=" + testID + "&sz=w2000"},
		{"endpoint without token ignored", []Option{WithEndpoint("https://example.com/")}, testID, canonical},
		{"ftp url", nil, "ftp://example.com/" + testID, ""},
		{"provider path on other host", nil, "https://example.com/r?next=drive.google.com/file/d/" + testID, ""},
		{"provider path on other host allowed", []Option{WithExternalURLs(true)}, "https://example.com/r?next=drive.google.com/file/d/" + testID, "https://example.com/r?next=drive.google.com/file/d/" + testID},
		{"provider lookalike host", nil, "https://drive.google.com.evil.test/file/d/" + testID + "/view", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New(append(tt.opts, WithLogger(zaptest.NewLogger(t)))...)
			if got := n.Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeStable(t *testing.T) {
	n := New()
	refs := []string{testID, "https://drive.google.com/open?id=" + testID, "junk"}
	for _, r := range refs {
		if a, b := n.Normalize(r), n.Normalize(r); a != b {
			t.Errorf("Normalize(%q) not stable: %q vs %q", r, a, b)
		}
	}
}
