// Package config loads optional docwrap.toml defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the config file looked up in the working directory.
const FileName = "docwrap.toml"

// File holds defaults read from docwrap.toml. Fields are pointers so the
// caller can tell "absent" from a zero value; explicit CLI flags always win.
type File struct {
	MaxDocLength      *int  `toml:"max_doc_length"`
	ForceTripleQuotes *bool `toml:"force_triple_quotes"`
	SkipComments      *bool `toml:"skip_comments"`
	SkipDocstrings    *bool `toml:"skip_docstrings"`
	NoGitignore       *bool `toml:"no_gitignore"`
	Jobs              *int  `toml:"jobs"`
}

// Load reads docwrap.toml from dir. A missing file is not an error and
// yields nil; a malformed file or unknown key is reported so a typo does not
// silently change behavior.
func Load(dir string) (*File, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var cfg File
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.MaxDocLength != nil && *cfg.MaxDocLength <= 0 {
		return nil, fmt.Errorf("%s: max_doc_length must be positive", path)
	}
	return &cfg, nil
}
