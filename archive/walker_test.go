package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

type zipEntry struct {
	name    string
	content string
}

func makeZip(t *testing.T, entries []zipEntry) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "test.zip")

	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for _, e := range entries {
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", e.name, err)
		}
		if _, err := fw.Write([]byte(e.content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finalize zip: %v", err)
	}
	return zipPath
}

func collect(t *testing.T, zipPath, prefix string, match MatchFunc) []string {
	t.Helper()
	var visited []string
	err := Walk(zipPath, prefix, match, func(archive string, file *zip.File) error {
		if archive != zipPath {
			t.Errorf("archive = %q, want %q", archive, zipPath)
		}
		visited = append(visited, file.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	return visited
}

func jsonOnly(name string) bool {
	return strings.HasSuffix(name, ".json")
}

func TestWalk(t *testing.T) {
	zipPath := makeZip(t, []zipEntry{
		{"reports/r10.json", "{}"},
		{"reports/r2.json", "{}"},
		{"reports/r1.yaml", "a: 1"},
		{"reports/notes.txt", "notes"},
		{"other/r3.json", "{}"},
		{"top.json", "{}"},
		{"reports/sub/", ""},
	})

	tests := []struct {
		name   string
		prefix string
		match  MatchFunc
		want   []string
	}{
		{"everything", "", nil, []string{"other/r3.json", "reports/notes.txt", "reports/r1.yaml", "reports/r2.json", "reports/r10.json", "top.json"}},
		{"prefix", "reports/", nil, []string{"reports/notes.txt", "reports/r1.yaml", "reports/r2.json", "reports/r10.json"}},
		{"prefix and match", "reports/", jsonOnly, []string{"reports/r2.json", "reports/r10.json"}},
		{"match only", "", jsonOnly, []string{"other/r3.json", "reports/r2.json", "reports/r10.json", "top.json"}},
		{"nothing", "missing/", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collect(t, zipPath, tt.prefix, tt.match); !slices.Equal(got, tt.want) {
				t.Errorf("visited %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	zipPath := makeZip(t, []zipEntry{{"a.json", "1"}, {"b.json", "2"}, {"c.json", "3"}})

	stopErr := errors.New("stop")
	count := 0
	err := Walk(zipPath, "", nil, func(string, *zip.File) error {
		count++
		if count == 2 {
			return stopErr
		}
		return nil
	})
	if !errors.Is(err, stopErr) {
		t.Errorf("Walk() error = %v, want %v", err, stopErr)
	}
	if count != 2 {
		t.Errorf("visited %d files, want 2", count)
	}
}

func TestWalk_InvalidArchive(t *testing.T) {
	noop := func(string, *zip.File) error { return nil }

	if err := Walk("/nonexistent/file.zip", "", nil, noop); err == nil {
		t.Error("expected error for nonexistent archive")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.zip")
	if err := os.WriteFile(invalid, []byte("not a zip file"), 0644); err != nil {
		t.Fatalf("Failed to create invalid zip: %v", err)
	}
	if err := Walk(invalid, "", nil, noop); err == nil {
		t.Error("expected error for invalid archive")
	}
}

func TestWalk_UnsafePaths(t *testing.T) {
	for _, name := range []string{"../evil.json", "a/../../evil.json", "/abs.json"} {
		zipPath := makeZip(t, []zipEntry{{"ok.json", "{}"}, {name, "{}"}})
		err := Walk(zipPath, "", nil, func(string, *zip.File) error { return nil })
		if err == nil {
			t.Errorf("%q: expected unsafe path error", name)
		}
	}
}

func TestReadFile(t *testing.T) {
	zipPath := makeZip(t, []zipEntry{{"doc.json", `{"document":{}}`}})

	var got []byte
	err := Walk(zipPath, "", nil, func(_ string, f *zip.File) error {
		var err error
		got, err = ReadFile(f)
		return err
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if string(got) != `{"document":{}}` {
		t.Errorf("ReadFile() = %q", got)
	}
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a/b.json", true},
		{"a..b/c.json", true},
		{"../a.json", false},
		{"a/../b.json", false},
		{"/a.json", false},
		{`\a.json`, false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.want {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
