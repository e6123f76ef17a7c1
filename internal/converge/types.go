// Where: internal/converge/types.go
// What: Identity and input types threaded between convergence steps.
// Why: Keep step outputs explicit instead of ambient shared state.
package converge

// APIIdentity identifies an adopted or created REST API shell.
type APIIdentity struct {
	ID             string
	RootResourceID string
}

// ResourceIdentity identifies one gateway resource (path segment).
type ResourceIdentity struct {
	ID       string
	Path     string
	ParentID string
}

// FunctionIdentity identifies a deployed Lambda function.
type FunctionIdentity struct {
	Name string
	ARN  string
}

// QueueIdentity identifies the event queue. URL and ARN are derived by the
// control plane, never chosen.
type QueueIdentity struct {
	Name string
	URL  string
	ARN  string
}

// TableCreateInput carries the immutable table schema. Convergence only ever
// checks presence after creation; it never alters the schema.
type TableCreateInput struct {
	TableName   string
	HashKey     string
	RangeKey    string
	BillingMode string
}

// FunctionCreateInput carries everything needed to create a function.
type FunctionCreateInput struct {
	Name        string
	Runtime     string
	Handler     string
	Role        string
	Timeout     int32
	Environment map[string]string
	ZipFile     []byte
}

// FunctionConfigInput carries the configuration reapplied on every run.
type FunctionConfigInput struct {
	Name        string
	Handler     string
	Timeout     int32
	Environment map[string]string
}

// PermissionInput describes one invoke grant on a function's policy.
type PermissionInput struct {
	FunctionName string
	StatementID  string
	Action       string
	Principal    string
	SourceARN    string
}

// MappingInput describes the queue-to-function event source binding.
type MappingInput struct {
	FunctionName     string
	SourceARN        string
	BatchSize        int32
	StartingPosition string
}

// QueueAttributes is the subset of queue attributes convergence inspects.
type QueueAttributes struct {
	ARN    string
	Policy string
}
