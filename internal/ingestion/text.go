// Package ingestion loads already-extracted plain-text resumes and job descriptions.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// TextExtensions are the file extensions treated as plain text when expanding
// a directory.
var TextExtensions = []string{".txt", ".text", ".md"}

// NormalizeText converts CRLF and CR line endings to LF, drops a leading byte order
// mark and replaces invalid UTF-8. Everything else, including blank lines that
// separate sections, is preserved.
func NormalizeText(content string) string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ToValidUTF8(content, "\uFFFD")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

// LoadText reads a plain-text file and normalizes it.
func LoadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return NormalizeText(string(data)), nil
}

// ExpandPaths replaces each directory in paths with the text files directly
// inside it, sorted by name. Files are kept as given.
func ExpandPaths(paths []string) ([]string, error) {
	var expanded []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.IsDir() {
			expanded = append(expanded, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
		}
		var files []string
		for _, entry := range entries {
			if entry.IsDir() || !isTextFile(entry.Name()) {
				continue
			}
			files = append(files, filepath.Join(path, entry.Name()))
		}
		sort.Strings(files)
		expanded = append(expanded, files...)
	}
	return expanded, nil
}

// LoadResumes reads every file in paths (directories expanded) into ResumeInputs
// whose ID is the file's base name. A file that cannot be read fails the load.
func LoadResumes(paths []string) ([]types.ResumeInput, error) {
	files, err := ExpandPaths(paths)
	if err != nil {
		return nil, err
	}

	resumes := make([]types.ResumeInput, 0, len(files))
	for _, file := range files {
		text, err := LoadText(file)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, types.ResumeInput{ID: filepath.Base(file), Text: text})
	}
	return resumes, nil
}

func isTextFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range TextExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
