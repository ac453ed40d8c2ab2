package gen

import (
	"fmt"
	"path/filepath"

	"github.com/varekai/girpc/girpcgen"
)

type Cmd struct {
	Package string `help:"Package to scan (default: current directory)." short:"p" default:"."`
	Out     string `help:"Output directory (default: the scanned package's directory)." short:"o"`
}

func (c *Cmd) Run() error {
	cfg := &girpcgen.Config{
		Package: c.Package,
	}

	if c.Out != "" {
		outDir, err := filepath.Abs(c.Out)
		if err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
		cfg.OutDir = outDir
	}

	return girpcgen.Generate(cfg)
}
