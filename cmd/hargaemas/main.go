package main

import (
	"context"

	"hargaemas/cmd/hargaemas/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
