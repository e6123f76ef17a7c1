// Where: internal/converge/converger.go
// What: Converger construction and shared state.
// Why: Centralize the pieces every per-kind convergence routine needs.
package converge

import (
	"io"
	"time"

	"github.com/poruru/image-service-deploy/internal/ui"
)

const (
	readinessAttempts = 5
	readinessBackoff  = 2 * time.Second

	mappingBatchSize     = 10
	startPositionLatest  = "LATEST"
	objectCreatedEvents  = "s3:ObjectCreated:*"
	gatewayPrincipal     = "apigateway.amazonaws.com"
	invokeAction         = "lambda:InvokeFunction"
	defaultAccountID     = "000000000000"
	authorizationNone    = "NONE"
	integrationHTTPProxy = "POST"
)

// Converger walks the fixed dependency graph and converges each node.
// All control-plane access goes through the narrow Clients interfaces, so the
// whole flow is testable against fakes.
type Converger struct {
	Clients   Clients
	Console   *ui.Console
	Region    string
	AccountID string

	// Endpoint is the control-plane endpoint propagated into function
	// environments so handlers reach the same control plane.
	Endpoint string

	// Sleep is injectable so the readiness backoff is testable.
	Sleep func(time.Duration)

	// ReadCode loads function code packages; injectable for tests.
	ReadCode func(codeURI string) ([]byte, error)

	creations int
}

// New builds a Converger with production defaults.
func New(clients Clients, console *ui.Console, region string) *Converger {
	if console == nil {
		console = ui.New(io.Discard)
	}
	return &Converger{
		Clients:   clients,
		Console:   console,
		Region:    region,
		AccountID: defaultAccountID,
		Sleep:     time.Sleep,
		ReadCode:  loadCodePackage,
	}
}

// Creations reports how many creation calls the run issued. A second run
// against a converged control plane reports zero.
func (c *Converger) Creations() int {
	return c.creations
}

func (c *Converger) created() {
	c.creations++
}

func (c *Converger) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}
