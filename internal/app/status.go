// Where: internal/app/status.go
// What: Status command implementation.
// Why: Report resource state without mutating the control plane.
package app

import (
	"context"
	"fmt"

	"github.com/poruru/image-service-deploy/internal/ui"
)

// runStatus executes the 'status' command: probe-only inspection.
func runStatus(cli CLI, deps Dependencies, console *ui.Console) int {
	spec, err := deps.LoadManifest(cli.Manifest)
	if err != nil {
		return exitWithError(console, err)
	}

	ctx := context.Background()
	conv, _, err := buildConverger(ctx, deps, console)
	if err != nil {
		return exitWithError(console, err)
	}

	statuses, err := conv.Inspect(ctx, spec)
	if err != nil {
		return exitWithError(console, err)
	}

	console.Header("🔍", "Resource state for "+spec.Service)
	for _, status := range statuses {
		marker := "absent"
		if status.Exists {
			marker = "exists"
		}
		line := fmt.Sprintf("%-8s %-40s %s", status.Kind, status.Name, marker)
		if status.Detail != "" {
			line += "  (" + status.Detail + ")"
		}
		console.ItemPlain(line)
	}
	return 0
}
