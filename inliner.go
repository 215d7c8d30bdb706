package inlinemod

import (
	"context"

	"github.com/TedDriggs/syn-inline-mod/internal/ctxlog"
	"github.com/TedDriggs/syn-inline-mod/syntax"
)

// OnLoad observes every file the engine reads, in visit order. It is called
// whether or not the file parses, with the raw source text.
type OnLoad func(path string, src []byte)

// Inliner expands external module declarations into inline bodies by
// resolving, loading and splicing their backing files. Build one through a
// Builder.
type Inliner struct {
	resolver FileResolver
	lang     syntax.Language
	root     bool
	onLoad   OnLoad
}

// InlineFile parses the file at path and returns its fully inlined tree.
func (in *Inliner) InlineFile(ctx context.Context, path string) (*syntax.File, error) {
	f, err := in.load(ctx, path)
	if err != nil {
		return nil, err
	}
	return in.Inline(ctx, f, path)
}

// Inline expands an already-parsed tree. path is the file the tree was
// loaded from; it seeds all relative resolution. The returned tree is a new
// value: the input is never mutated, and on error no partial tree is
// returned.
//
// The walk is synchronous, depth-first and fail-fast: the first resolution
// or parse failure aborts the whole call. The module graph is assumed
// acyclic; a file graph that re-enters itself (for example through a crafted
// path override) recurses without bound.
func (in *Inliner) Inline(ctx context.Context, f *syntax.File, path string) (*syntax.File, error) {
	return in.expand(ctx, f, path, in.root, &modContext{})
}

func (in *Inliner) load(ctx context.Context, path string) (*syntax.File, error) {
	f, src, err := in.resolver.Resolve(ctx, path)
	if in.onLoad != nil && src != nil {
		in.onLoad(path, src)
	}
	return f, err
}

// expand rebuilds the item sequence of one file, in source order. Non-module
// items pass through unchanged; their interiors are not descended into.
func (in *Inliner) expand(ctx context.Context, f *syntax.File, base string, root bool, mc *modContext) (*syntax.File, error) {
	out := &syntax.File{
		InnerAttrs: append([]syntax.Attr(nil), f.InnerAttrs...),
		Items:      make([]syntax.Item, 0, len(f.Items)),
	}
	for _, item := range f.Items {
		m, ok := item.(*syntax.Mod)
		if !ok {
			out.Items = append(out.Items, item)
			continue
		}
		expanded, err := in.expandMod(ctx, m, base, root, mc)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, expanded)
	}
	return out, nil
}

func (in *Inliner) expandMod(ctx context.Context, m *syntax.Mod, base string, root bool, mc *modContext) (*syntax.Mod, error) {
	mc.push(segmentFor(m))
	defer mc.pop()

	// A braced body keeps the current file as its base: braces extend the
	// module path but never change the directory. Only file boundaries do.
	if m.Body != nil {
		body, err := in.expand(ctx, m.Body, base, root, mc)
		if err != nil {
			return nil, err
		}
		return &syntax.Mod{
			Attrs: append([]syntax.Attr(nil), m.Attrs...),
			Vis:   m.Vis,
			Name:  m.Name,
			Body:  body,
		}, nil
	}

	logger := ctxlog.FromContext(ctx)

	cands := mc.candidates(base, root, in.lang)
	chosen := cands[0]
	for _, c := range cands {
		if in.resolver.Exists(c) {
			chosen = c
			break
		}
	}
	logger.Debug("resolving external module",
		"module", m.Name, "from", base, "path", chosen)

	loaded, err := in.load(ctx, chosen)
	if err != nil {
		return nil, err
	}

	// File-level attributes of the loaded file relocate onto the
	// declaration, after its own attributes, preserving their order.
	attrs := make([]syntax.Attr, 0, len(m.Attrs)+len(loaded.InnerAttrs))
	attrs = append(attrs, m.Attrs...)
	attrs = append(attrs, loaded.InnerAttrs...)

	body, err := in.expand(ctx, &syntax.File{Items: loaded.Items}, chosen, false, &modContext{})
	if err != nil {
		return nil, err
	}

	logger.Debug("inlined module", "module", m.Name, "path", chosen,
		"items", len(body.Items))
	return &syntax.Mod{
		Attrs: attrs,
		Vis:   m.Vis,
		Name:  m.Name,
		Body:  body,
	}, nil
}
