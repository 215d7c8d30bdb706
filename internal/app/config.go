package app

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/TedDriggs/syn-inline-mod/syntax"
)

// Config holds the validated runtime configuration of the tool.
type Config struct {
	// InputPath is the entry source file.
	InputPath string

	// OutputPath receives the inlined source; empty means stdout.
	OutputPath string

	// LanguagePath optionally names an HCL language profile file.
	LanguagePath string

	// Root marks the entry file as a root module.
	Root bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a raw Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, fmt.Errorf("input path must not be empty")
	}
	return &cfg, nil
}

// profileFile is the top-level shape of a language profile document.
type profileFile struct {
	Language *syntax.Language `hcl:"language,block"`
}

// LoadLanguage returns the language conventions to resolve with: the
// defaults, overridden field by field from the profile file at path when one
// is given.
func LoadLanguage(path string) (syntax.Language, error) {
	lang := syntax.DefaultLanguage()
	if path == "" {
		return lang, nil
	}

	var pf profileFile
	if err := hclsimple.DecodeFile(path, nil, &pf); err != nil {
		return lang, fmt.Errorf("loading language profile %s: %w", path, err)
	}
	if pf.Language != nil {
		if pf.Language.Extension != "" {
			lang.Extension = pf.Language.Extension
		}
		if pf.Language.IndexFile != "" {
			lang.IndexFile = pf.Language.IndexFile
		}
	}
	if err := lang.Validate(); err != nil {
		return lang, fmt.Errorf("language profile %s: %w", path, err)
	}
	return lang, nil
}
