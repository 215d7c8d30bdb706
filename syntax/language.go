package syntax

import "errors"

var (
	errEmptyExtension = errors.New("language: extension must not be empty")
	errEmptyIndexFile = errors.New("language: index_file must not be empty")
)

// Language describes the file-naming conventions of the host language: the
// extension used by module source files and the canonical filename for a
// module whose contents live in their own subdirectory.
type Language struct {
	// Extension is the source-file extension, without the leading dot.
	Extension string `hcl:"extension,optional"`

	// IndexFile is the directory-module filename, e.g. "mod.rs".
	IndexFile string `hcl:"index_file,optional"`
}

// DefaultLanguage returns the Rust conventions: ".rs" files and "mod.rs" as
// the directory-module index.
func DefaultLanguage() Language {
	return Language{
		Extension: "rs",
		IndexFile: "mod.rs",
	}
}

// Validate checks that both conventions are present.
func (l Language) Validate() error {
	if l.Extension == "" {
		return errEmptyExtension
	}
	if l.IndexFile == "" {
		return errEmptyIndexFile
	}
	return nil
}
