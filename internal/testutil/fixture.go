// Package testutil provides harnesses shared by the inlining tests.
package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	inlinemod "github.com/TedDriggs/syn-inline-mod"
	"github.com/TedDriggs/syn-inline-mod/syntax"
)

// Fixture is one multi-file inlining scenario loaded from a txtar archive.
// Every archive file registers into an in-memory resolver, except the file
// named "want", which holds the expected printed output. The archive comment
// must carry an "entry: <path>" line naming the file to inline.
type Fixture struct {
	Entry    string
	Want     string
	Resolver *inlinemod.MemResolver
}

// LoadFixture reads the txtar archive at path.
func LoadFixture(t *testing.T, path string) *Fixture {
	t.Helper()

	archive, err := txtar.ParseFile(path)
	require.NoError(t, err, "fixture archive should load")

	fx := &Fixture{Resolver: inlinemod.NewMemResolver()}
	for _, line := range strings.Split(string(archive.Comment), "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "entry:"); ok {
			fx.Entry = strings.TrimSpace(rest)
		}
	}
	require.NotEmpty(t, fx.Entry, "fixture comment must name an entry file")

	for _, file := range archive.Files {
		if file.Name == "want" {
			fx.Want = string(file.Data)
			continue
		}
		fx.Resolver.Register(file.Name, string(file.Data))
	}
	return fx
}

// RunInline inlines the fixture's entry file and returns the printed result.
func RunInline(t *testing.T, fx *Fixture) string {
	t.Helper()

	inliner := inlinemod.NewBuilder().Resolver(fx.Resolver).Build()
	result, err := inliner.InlineFile(context.Background(), fx.Entry)
	require.NoError(t, err, "inlining %s should succeed", fx.Entry)
	return syntax.Print(result)
}
