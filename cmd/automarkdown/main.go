// # cmd/automarkdown/main.go
package main

import (
	"os"

	"github.com/harshpreet931/autoMarkdown/internal/ui/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
