package main

import (
	"os"

	"github.com/go-delve/leb128/cmd/leb128/cmds"
)

func main() {
	if err := cmds.Execute(cmds.New(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
