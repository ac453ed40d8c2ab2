package check

import (
	"fmt"

	"github.com/varekai/girpc/codec"
	"github.com/varekai/girpc/internal/parse"
)

type Cmd struct {
	Package string `help:"Package to scan (default: current directory)." short:"p" default:"."`
}

func (c *Cmd) Run() error {
	result, err := parse.Load(c.Package, "")
	if err != nil {
		return err
	}

	if len(result.Services) == 0 {
		return fmt.Errorf("no girpc services found in %s (annotate an interface with //girpc:service <codec>)", result.PackagePath)
	}

	methods := 0
	for _, svc := range result.Services {
		if _, err := codec.Get(svc.Codec); err != nil {
			return fmt.Errorf("service %s: %w", svc.Name, err)
		}
		fmt.Printf("✓ Found service: %s (codec %s, %d methods)\n", svc.Name, svc.Codec, len(svc.Methods))
		methods += len(svc.Methods)
	}

	fmt.Printf("✓ %d services, %d methods\n", len(result.Services), methods)
	return nil
}
