package main

import (
	"github.com/pixelpets/arena/internal/cli"
)

func main() {
	cli.Execute()
}
