package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/varekai/girpc/cmd/girpc/internal/check"
	"github.com/varekai/girpc/cmd/girpc/internal/gen"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate RPC stubs for annotated interfaces."`
	Check   check.Cmd  `cmd:"" help:"Validate service definitions without generating files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("girpc"),
		kong.Description("girpc generates gRPC client/server stubs from plain Go interfaces."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
