package main

import (
	"context"

	"github.com/scott-cotton/cli"

	"github.com/globality-corp/openapi/cmd/openapi/commands"
)

func main() {
	cli.MainContext(context.Background(), commands.Root())
}
