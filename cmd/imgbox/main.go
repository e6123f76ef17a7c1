// Where: cmd/imgbox/main.go
// What: CLI entrypoint.
// Why: Execute imgbox commands with configured dependencies.
package main

import (
	"os"

	"github.com/poruru/image-service-deploy/internal/app"
)

func main() {
	deps, closer := buildDependencies()
	if closer != nil {
		defer closer.Close()
	}

	os.Exit(app.Run(os.Args[1:], deps))
}
