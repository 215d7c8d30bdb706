// Package app wires the configured inliner to its inputs and outputs and
// renders failures for a human audience. Error presentation lives here, not
// in the engine.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/hcl/v2"

	inlinemod "github.com/TedDriggs/syn-inline-mod"
	"github.com/TedDriggs/syn-inline-mod/internal/ctxlog"
	"github.com/TedDriggs/syn-inline-mod/syntax"
)

// diagnosticWidth is the terminal width hint for rendered diagnostics.
const diagnosticWidth = 100

// App is the one-shot inlining application.
type App struct {
	out  io.Writer
	errW io.Writer
	cfg  *Config
}

// NewApp creates an App writing program output to out and logs plus
// diagnostics to errW.
func NewApp(out, errW io.Writer, cfg *Config) *App {
	return &App{out: out, errW: errW, cfg: cfg}
}

// Run inlines the configured entry file and writes the expanded source.
func (a *App) Run(ctx context.Context) error {
	logger := newLogger(a.cfg.LogLevel, a.cfg.LogFormat, a.errW)
	ctx = ctxlog.WithLogger(ctx, logger)

	lang, err := LoadLanguage(a.cfg.LanguagePath)
	if err != nil {
		return err
	}
	logger.Debug("language conventions resolved.",
		"extension", lang.Extension, "index_file", lang.IndexFile)

	// Sources are collected as files load so parse diagnostics can be
	// rendered with code snippets.
	sources := map[string]*hcl.File{}
	inliner := inlinemod.NewBuilder().
		Root(a.cfg.Root).
		Language(lang).
		OnLoad(func(path string, src []byte) {
			logger.Debug("loaded file.", "path", path, "bytes", len(src))
			sources[path] = &hcl.File{Bytes: src}
		}).
		Build()

	result, err := inliner.InlineFile(ctx, a.cfg.InputPath)
	if err != nil {
		a.renderError(err, sources)
		return err
	}

	return a.write(result)
}

// renderError prints parse diagnostics with source snippets; other failures
// fall through to the caller's plain error printing.
func (a *App) renderError(err error, sources map[string]*hcl.File) {
	var inlineErr *inlinemod.Error
	if !errors.As(err, &inlineErr) || inlineErr.Kind != inlinemod.KindParse {
		return
	}
	var diags hcl.Diagnostics
	if !errors.As(err, &diags) {
		return
	}
	writer := hcl.NewDiagnosticTextWriter(a.errW, sources, diagnosticWidth, false)
	if werr := writer.WriteDiagnostics(diags); werr != nil {
		fmt.Fprintln(a.errW, diags.Error())
	}
}

func (a *App) write(result *syntax.File) error {
	if a.cfg.OutputPath == "" {
		return syntax.Fprint(a.out, result)
	}
	if err := os.WriteFile(a.cfg.OutputPath, []byte(syntax.Print(result)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", a.cfg.OutputPath, err)
	}
	return nil
}
