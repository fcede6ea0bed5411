package main

import (
	"os"

	"github.com/TWRT/equipeapp/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
