package inlinemod

import (
	"path/filepath"
	"strings"

	"github.com/TedDriggs/syn-inline-mod/syntax"
)

// modSegment is one step of the module path between a file's top level and
// the declaration being resolved: either a module identifier or the explicit
// path carried by a path-override attribute.
type modSegment struct {
	value    string
	explicit bool
}

func segmentFor(m *syntax.Mod) modSegment {
	if p, ok := syntax.PathOverride(m.Attrs); ok {
		return modSegment{value: p, explicit: true}
	}
	return modSegment{value: m.Name}
}

// modContext is the stack of module segments the walk is currently inside.
// Braced module bodies push segments without changing the base file, so a
// declaration nested in inline modules still resolves under their combined
// directory.
type modContext struct {
	segments []modSegment
}

func (mc *modContext) push(seg modSegment) {
	mc.segments = append(mc.segments, seg)
}

func (mc *modContext) pop() {
	mc.segments = mc.segments[:len(mc.segments)-1]
}

// candidates lists the places the current declaration's source may live, in
// precedence order, relative to the file at base. root marks the entry file,
// whose own directory is the resolution base with no name segment consumed.
//
// An explicit path override is trusted verbatim and yields exactly one
// candidate. Otherwise two are derived: "<name>.<ext>" first, then
// "<name>/<index-file>". First match is authoritative even when both exist.
func (mc *modContext) candidates(base string, root bool, lang syntax.Language) []string {
	dir := filepath.Dir(base)
	if !root && filepath.Base(base) != lang.IndexFile {
		dir = filepath.Join(dir, fileStem(base))
	}

	joined := dir
	for _, seg := range mc.segments {
		joined = filepath.Join(joined, filepath.FromSlash(seg.value))
	}

	if n := len(mc.segments); n > 0 && mc.segments[n-1].explicit {
		return []string{joined}
	}
	return []string{
		joined + "." + lang.Extension,
		filepath.Join(joined, lang.IndexFile),
	}
}

func fileStem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
