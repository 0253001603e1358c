package main

import (
	"github.com/maddken/jokerparty/internal/cli"
)

func main() {
	cli.Execute()
}
