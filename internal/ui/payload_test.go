package ui

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

// dragFixture creates a directory, a file and a missing path under a temp root
func dragFixture(t *testing.T) (dir, file, missing string) {
	t.Helper()
	root := t.TempDir()
	dir = filepath.Join(root, "photos")
	file = filepath.Join(root, "readme.txt")
	missing = filepath.Join(root, "missing")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, file, missing
}

func fileURI(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func TestDirectoryPaths(t *testing.T) {
	dir, file, missing := dragFixture(t)
	other := t.TempDir()

	testCases := []struct {
		name    string
		payload Payload
		want    []string
	}{
		{"mixed payload keeps only the directory", Payload{dir, file, missing}, []string{dir}},
		{"file only", Payload{file}, nil},
		{"missing only", Payload{missing}, nil},
		{"empty", nil, nil},
		{"order preserved", Payload{other, file, dir}, []string{other, dir}},
		{"file uri", Payload{fileURI(dir)}, []string{dir}},
		{"localhost uri", Payload{"file://localhost" + filepath.ToSlash(dir)}, []string{dir}},
		{"remote host uri", Payload{"file://example.com" + filepath.ToSlash(dir)}, nil},
		{"http uri", Payload{"http://example.com/photos"}, nil},
		{"comment and blank", Payload{"# comment", "  "}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DirectoryPaths(tc.payload)
			if len(got) != len(tc.want) {
				t.Fatalf("DirectoryPaths(%v) = %v, want %v", tc.payload, got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("DirectoryPaths(%v)[%d] = %q, want %q", tc.payload, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestParseURIList(t *testing.T) {
	dir, file, _ := dragFixture(t)
	data := "# dragged from the file manager\r\n" + fileURI(dir) + "\r\n\r\n" + fileURI(file) + "\r\n"

	p := ParseURIList(data)
	if len(p) != 2 {
		t.Fatalf("expected 2 items, got %v", p)
	}
	dirs := DirectoryPaths(p)
	if len(dirs) != 1 || dirs[0] != dir {
		t.Errorf("expected [%s], got %v", dir, dirs)
	}
}
