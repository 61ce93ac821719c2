package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"pgtypegen/internal/generator"
	"pgtypegen/internal/merge"
	"pgtypegen/internal/models"
)

// ErrStale is returned by Check when the target differs from a fresh merge.
var ErrStale = errors.New("generated declarations are out of date")

// CatalogReader yields the catalog rows for one run.
type CatalogReader interface {
	Read(ctx context.Context) (models.Catalog, error)
}

// FileStore is the only file system access the pipeline needs.
type FileStore interface {
	ReadFile(path string) (string, error)
	WriteFile(path, content string) error
}

// OSFileStore reads and writes files on the local disk. The zero value is
// ready to use.
type OSFileStore struct {
	// write copies content into the staged file; nil means io.WriteString.
	write func(w io.Writer, content string) error
}

func (OSFileStore) ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteFile replaces the file content, keeping its permissions. The content
// is staged in a temporary file next to path and renamed over it, so a
// failed write leaves the original untouched.
func (s OSFileStore) WriteFile(path, content string) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(mode); err != nil {
		return err
	}
	write := s.write
	if write == nil {
		write = func(w io.Writer, content string) error {
			_, err := io.WriteString(w, content)
			return err
		}
	}
	if err = write(tmp, content); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Result describes one generate run.
type Result struct {
	Target  string
	Enums   int
	Records int
	Changed bool
}

type TypegenService struct {
	catalog   CatalogReader
	generator *generator.Generator
	merger    *merge.Merger
	files     FileStore
	logger    *slog.Logger
}

// NewTypegenService wires the pipeline. A nil files uses OSFileStore and a
// nil logger discards output.
func NewTypegenService(
	catalog CatalogReader,
	gen *generator.Generator,
	merger *merge.Merger,
	files FileStore,
	logger *slog.Logger,
) *TypegenService {
	if files == nil {
		files = OSFileStore{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TypegenService{
		catalog:   catalog,
		generator: gen,
		merger:    merger,
		files:     files,
		logger:    logger,
	}
}

// Render reads the catalog and returns the generated document.
func (s *TypegenService) Render(ctx context.Context) (generator.Document, error) {
	cat, err := s.catalog.Read(ctx)
	if err != nil {
		return generator.Document{}, fmt.Errorf("failed to read catalog: %w", err)
	}

	s.logger.Debug("catalog read",
		slog.Int("enum_rows", len(cat.Enums)),
		slog.Int("column_rows", len(cat.Columns)))

	return s.generator.Generate(cat), nil
}

// merged renders the document and merges it into the current target text.
func (s *TypegenService) merged(ctx context.Context, target string) (current, next string, doc generator.Document, err error) {
	doc, err = s.Render(ctx)
	if err != nil {
		return "", "", doc, err
	}

	current, err = s.files.ReadFile(target)
	if err != nil {
		return "", "", doc, fmt.Errorf("failed to read %s: %w", target, err)
	}

	next, err = s.merger.Merge(current, doc.Text)
	if err != nil {
		return current, "", doc, fmt.Errorf("%s: %w", target, err)
	}
	return current, next, doc, nil
}

// Generate regenerates the section below the anchor in target. Nothing is
// written unless every step before the write succeeded.
func (s *TypegenService) Generate(ctx context.Context, target string) (Result, error) {
	current, next, doc, err := s.merged(ctx, target)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Target:  target,
		Enums:   len(doc.Enums),
		Records: len(doc.Records),
		Changed: next != current,
	}

	if !res.Changed {
		s.logger.Info("target already up to date", slog.String("target", target))
		return res, nil
	}

	if err := s.files.WriteFile(target, next); err != nil {
		return Result{}, fmt.Errorf("failed to write %s: %w", target, err)
	}

	s.logger.Info("target updated",
		slog.String("target", target),
		slog.Int("enums", res.Enums),
		slog.Int("records", res.Records))

	return res, nil
}

// Check reports ErrStale when running Generate would change target.
func (s *TypegenService) Check(ctx context.Context, target string) error {
	current, next, _, err := s.merged(ctx, target)
	if err != nil {
		return err
	}
	if next != current {
		return fmt.Errorf("%s: %w", target, ErrStale)
	}
	return nil
}
