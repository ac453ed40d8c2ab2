package girpcgen

import (
	"github.com/go-playground/validator/v10"

	"github.com/varekai/girpc/girpcgen/sink"
	"github.com/varekai/girpc/stub"
	"github.com/varekai/girpc/stub/gostub"
)

var validate = validator.New()

// Config holds the configuration for one generation run.
type Config struct {
	// Package is the Go package pattern to scan for service definitions.
	// Follows go command semantics: ".", a directory path, or an import
	// path.
	Package string `validate:"required"`

	// Dir is the working directory for package resolution. Empty means
	// the current directory.
	Dir string

	// OutDir is where generated files are written. Empty means the
	// scanned package's own directory, which is where they belong: the
	// synthesized aliases must share the interface's scope.
	OutDir string

	// Backend produces the client and server code. Defaults to the
	// gostub reference backend.
	Backend stub.Generator `validate:"-"`

	// Sink overrides the output destination. When set, OutDir is ignored.
	// Used by tests and dry runs.
	Sink sink.OutputSink `validate:"-"`
}

// applyConfigDefaults fills in defaulted fields on a copy of cfg.
func applyConfigDefaults(cfg *Config) *Config {
	result := *cfg
	if result.Backend == nil {
		result.Backend = &gostub.Generator{}
	}
	return &result
}
