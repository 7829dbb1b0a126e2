package parser

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glasslab/rfqspec/model"
)

// ScanFolder walks a folder recursively and returns the sorted paths of
// every file with a registered extension.
func (r *Registry) ScanFolder(folder string) ([]string, error) {
	if _, err := os.Stat(folder); err != nil {
		return nil, fmt.Errorf("input folder not found: %w", err)
	}

	seen := make(map[string]bool)
	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("scan: skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if _, ok := r.parsers[ext]; ok {
			seen[path] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning folder: %w", err)
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)

	slog.Info("scanned input folder", "folder", folder, "files", len(files))
	return files, nil
}

// ParseFile decodes a single file with the parser matching its extension.
func (r *Registry) ParseFile(ctx context.Context, path string) (*model.Document, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	p, err := r.Get(ext)
	if err != nil {
		return nil, err
	}
	return p.Parse(ctx, path)
}

// ParseFolder scans and decodes every supported file in a folder. A file
// that fails to decode is logged and skipped; the batch continues.
func (r *Registry) ParseFolder(ctx context.Context, folder string) ([]*model.Document, error) {
	files, err := r.ScanFolder(folder)
	if err != nil {
		return nil, err
	}

	docs := make([]*model.Document, 0, len(files))
	for _, f := range files {
		doc, err := r.ParseFile(ctx, f)
		if err != nil {
			slog.Error("failed to parse file, skipping", "path", f, "error", err)
			continue
		}
		docs = append(docs, doc)
	}

	slog.Info("parsed documents", "parsed", len(docs), "found", len(files))
	return docs, nil
}
