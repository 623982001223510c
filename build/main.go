// Command build holds the project's developer tasks.
//
//	go run ./build test
package main

import (
	"os"
	"os/exec"

	"github.com/goyek/goyek/v2"
)

func run(a *goyek.A, name string, args ...string) {
	a.Helper()
	a.Log(name, args)
	cmd := exec.CommandContext(a.Context(), name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		a.Error(err)
	}
}

var vet = goyek.Define(goyek.Task{
	Name:  "vet",
	Usage: "Run go vet on all packages",
	Action: func(a *goyek.A) {
		run(a, "go", "vet", "./...")
	},
})

var test = goyek.Define(goyek.Task{
	Name:  "test",
	Usage: "Run unit tests",
	Action: func(a *goyek.A) {
		run(a, "go", "test", "-race", "./...")
	},
})

var integration = goyek.Define(goyek.Task{
	Name:  "integration",
	Usage: "Run the testscript suite",
	Action: func(a *goyek.A) {
		run(a, "go", "test", "-tags", "integration", "./integration/...")
	},
})

var _ = goyek.Define(goyek.Task{
	Name:  "all",
	Usage: "Run every check",
	Deps:  goyek.Deps{vet, test, integration},
})

func main() {
	goyek.Main(os.Args[1:])
}
