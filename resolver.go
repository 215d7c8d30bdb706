package inlinemod

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/TedDriggs/syn-inline-mod/internal/ctxlog"
	"github.com/TedDriggs/syn-inline-mod/syntax"
)

// FileResolver is the filesystem collaborator of the engine: an existence
// check and a read-plus-parse step. These are the only filesystem operations
// the engine performs; there are no writes and no directory listings.
//
// Resolve returns the parsed file and the raw source text it read. The
// source is returned even when parsing fails, so callers can render
// diagnostics with snippets. A failed Resolve returns a *Error carrying the
// path and the underlying cause.
type FileResolver interface {
	Exists(path string) bool
	Resolve(ctx context.Context, path string) (*syntax.File, []byte, error)
}

// OSResolver resolves paths against the real filesystem.
type OSResolver struct{}

// Exists reports whether path names an existing file.
func (OSResolver) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Resolve reads and parses the file at path.
func (OSResolver) Resolve(ctx context.Context, path string) (*syntax.File, []byte, error) {
	logger := ctxlog.FromContext(ctx)
	src, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("file read failed", "path", path, "error", err)
		return nil, nil, ioError(path, err)
	}
	f, diags := syntax.Parse(src, path)
	if diags.HasErrors() {
		logger.Debug("file parse failed", "path", path, "diagnostics", diags.Error())
		return nil, src, parseError(path, diags)
	}
	return f, src, nil
}

// MemResolver resolves paths against an in-memory map of file contents. It
// serves callers that hold sources outside the filesystem, and tests.
type MemResolver struct {
	files map[string]string
}

// NewMemResolver returns an empty in-memory resolver.
func NewMemResolver() *MemResolver {
	return &MemResolver{files: make(map[string]string)}
}

// Register adds or replaces the contents stored for path.
func (m *MemResolver) Register(path, contents string) {
	m.files[memKey(path)] = contents
}

// Exists reports whether path has been registered.
func (m *MemResolver) Exists(path string) bool {
	_, ok := m.files[memKey(path)]
	return ok
}

// Resolve parses the registered contents for path. A path that was never
// registered fails the way a missing file does, with fs.ErrNotExist as the
// cause.
func (m *MemResolver) Resolve(ctx context.Context, path string) (*syntax.File, []byte, error) {
	contents, ok := m.files[memKey(path)]
	if !ok {
		return nil, nil, ioError(path, fs.ErrNotExist)
	}
	src := []byte(contents)
	f, diags := syntax.Parse(src, path)
	if diags.HasErrors() {
		return nil, src, parseError(path, diags)
	}
	return f, src, nil
}

func memKey(path string) string {
	return filepath.Clean(filepath.FromSlash(path))
}
