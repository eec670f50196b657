package main

import (
	"os"

	"github.com/msto63/minilang/cmd/minilang/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
