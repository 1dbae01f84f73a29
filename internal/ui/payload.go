package ui

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Payload is the list of items attached to an external drag, each a
// filesystem path or a file:// URI.
type Payload []string

// DirectoryPaths returns the payload entries that exist on disk and are
// directories, in payload order.
func DirectoryPaths(p Payload) []string {
	var dirs []string
	for _, item := range p {
		path, ok := itemPath(item)
		if !ok {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, path)
	}
	return dirs
}

// itemPath converts a payload item to a local path. Blank lines and
// comments (as found in text/uri-list data) and non-file URIs are rejected.
func itemPath(item string) (string, bool) {
	item = strings.TrimSpace(item)
	if item == "" || strings.HasPrefix(item, "#") {
		return "", false
	}
	if !strings.Contains(item, "://") {
		return item, true
	}

	u, err := url.Parse(item)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}

// ParseURIList splits text/uri-list data into a payload
func ParseURIList(data string) Payload {
	var p Payload
	for _, line := range strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n") {
		if _, ok := itemPath(line); ok {
			p = append(p, strings.TrimSpace(line))
		}
	}
	return p
}
