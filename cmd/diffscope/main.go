package main

import (
	"diffscope/internal/cli"
)

func main() {
	cli.Execute()
}
