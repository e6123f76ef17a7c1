// Where: internal/converge/environment.go
// What: Per-function environment assembly.
// Why: Merge shared variables with per-function overrides deterministically.
package converge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

var envKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// EnvironmentBuilder assembles the environment map applied to each function.
// Values may reference base variables with Go template syntax, e.g.
// "{{ .BUCKET_NAME }}/incoming". References are expanded against the base set
// BEFORE merging, so an override can never observe another function's
// overrides.
type EnvironmentBuilder struct {
	Base      map[string]string
	Overrides map[string]map[string]string
}

// NewEnvironmentBuilder builds the deployment-wide base set from the service
// configuration plus the manifest's shared variables.
func NewEnvironmentBuilder(shared map[string]string, overrides map[string]map[string]string) *EnvironmentBuilder {
	base := make(map[string]string, len(shared))
	for key, value := range shared {
		base[key] = value
	}
	return &EnvironmentBuilder{Base: base, Overrides: overrides}
}

// Build returns the merged environment for one function. Override keys win
// over base keys. A malformed result is a configuration error, not a
// retryable one.
func (b *EnvironmentBuilder) Build(functionName string) (map[string]string, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: environment builder is nil", ErrConfiguration)
	}

	expandedBase, err := b.expandAll(b.Base)
	if err != nil {
		return nil, fmt.Errorf("%w: base variables: %v", ErrConfiguration, err)
	}

	merged := make(map[string]string, len(expandedBase))
	for key, value := range expandedBase {
		merged[key] = value
	}

	if overrides, ok := b.Overrides[functionName]; ok {
		expandedOverrides, err := b.expandAll(overrides)
		if err != nil {
			return nil, fmt.Errorf("%w: overrides for %s: %v", ErrConfiguration, functionName, err)
		}
		for key, value := range expandedOverrides {
			merged[key] = value
		}
	}

	if err := validateEnvironment(merged); err != nil {
		return nil, fmt.Errorf("%w: merged environment for %s: %v", ErrConfiguration, functionName, err)
	}
	return merged, nil
}

// expandAll expands template references in every value against the unexpanded
// base set. Expansion happens before merging by construction.
func (b *EnvironmentBuilder) expandAll(values map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for key, value := range values {
		expanded, err := b.expand(value)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", key, err)
		}
		out[key] = expanded
	}
	return out, nil
}

func (b *EnvironmentBuilder) expand(value string) (string, error) {
	if !strings.Contains(value, "{{") {
		return value, nil
	}
	tmpl, err := template.New("env").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(value)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, b.Base); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// validateEnvironment checks the merged map forms a well-formed environment
// document before any creation call is attempted.
func validateEnvironment(env map[string]string) error {
	for key := range env {
		if !envKeyPattern.MatchString(key) {
			return fmt.Errorf("invalid variable name %q", key)
		}
	}
	if _, err := json.Marshal(env); err != nil {
		return fmt.Errorf("not serializable: %v", err)
	}
	return nil
}
