package main

import (
	"os"

	"github.com/alexbotov/rdcheckout/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
