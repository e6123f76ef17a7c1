// Where: internal/manifest/service.go
// What: Desired-state types for the image service topology.
// Why: Keep the converger decoupled from manifest parsing details.
package manifest

import "sort"

// ServiceSpec is the declarative description of every managed resource.
// The converger drives the control plane toward this state; it never
// reads the manifest file itself.
//
// NOTE: Keep this package free of parser-specific dependencies.
// The config layer is responsible for mapping the YAML manifest here.
type ServiceSpec struct {
	Service     string                  `yaml:"service"`
	Bucket      string                  `yaml:"bucket"`
	Table       TableSpec               `yaml:"table"`
	API         string                  `yaml:"api"`
	Stage       string                  `yaml:"stage"`
	Queue       string                  `yaml:"queue"`
	Functions   map[string]FunctionSpec `yaml:"functions"`
	Environment map[string]string       `yaml:"environment,omitempty"`
}

// TableSpec defines the metadata table. The key schema is fixed at creation
// time and never altered by convergence.
type TableSpec struct {
	Name        string `yaml:"name"`
	HashKey     string `yaml:"hashKey,omitempty"`
	RangeKey    string `yaml:"rangeKey,omitempty"`
	BillingMode string `yaml:"billingMode,omitempty"`
}

// FunctionSpec defines one Lambda function. Route/Method bind it to the REST
// API; Listener marks the function wired to the queue instead of a route.
type FunctionSpec struct {
	Route       string            `yaml:"route,omitempty"`
	Method      string            `yaml:"method,omitempty"`
	Handler     string            `yaml:"handler"`
	CodeURI     string            `yaml:"codeUri"`
	Runtime     string            `yaml:"runtime,omitempty"`
	Timeout     int32             `yaml:"timeout,omitempty"`
	Listener    bool              `yaml:"listener,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
}

// FunctionNames returns the function names in deterministic order so repeated
// convergence runs walk the graph identically.
func (s ServiceSpec) FunctionNames() []string {
	names := make([]string, 0, len(s.Functions))
	for name := range s.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListenerFunction returns the name of the queue-driven function, or "" when
// the manifest declares none.
func (s ServiceSpec) ListenerFunction() string {
	for _, name := range s.FunctionNames() {
		if s.Functions[name].Listener {
			return name
		}
	}
	return ""
}

// RouteFunctions returns the names of functions bound to an API route, in
// deterministic order.
func (s ServiceSpec) RouteFunctions() []string {
	var names []string
	for _, name := range s.FunctionNames() {
		if fn := s.Functions[name]; !fn.Listener && fn.Route != "" {
			names = append(names, name)
		}
	}
	return names
}
