// Command paiqm installs and runs packages listed in a registry.
package main

import (
	"os"

	"github.com/jmgilman/paiqm/internal/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
