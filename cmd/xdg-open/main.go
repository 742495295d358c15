// Command xdg-open opens files and URLs with the command configured for their MIME type.
package main

import (
	"github.com/MatthiasKunnen/xdg-open/cli"
	"os"
)

func main() {
	os.Exit(cli.Main())
}
