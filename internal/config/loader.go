// Where: internal/config/loader.go
// What: Manifest loading, schema validation, and defaulting.
// Why: Reject malformed manifests before any control-plane call is made.
package config

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	sigsyaml "sigs.k8s.io/yaml"
	yaml "gopkg.in/yaml.v3"

	"github.com/poruru/image-service-deploy/internal/manifest"
)

//go:embed schema/imgbox.schema.json
var schemaFS embed.FS

const schemaName = "imgbox.schema.json"

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

// Defaults mirror the fallbacks baked into the Lambda handlers so a minimal
// manifest converges the same topology the handlers expect.
const (
	DefaultBucket      = "image-service-root"
	DefaultTable       = "ImagesMetadata"
	DefaultHashKey     = "user_id"
	DefaultRangeKey    = "image_id"
	DefaultBillingMode = "PAY_PER_REQUEST"
	DefaultAPI         = "image-service-api"
	DefaultStage       = "dev"
	DefaultQueue       = "image-service-events"
	DefaultRuntime     = "python3.12"
	DefaultHandler     = "handler.handler"
	DefaultTimeout     = int32(30)
)

// LoadManifest reads, validates, and defaults the deployment manifest.
func LoadManifest(path string) (manifest.ServiceSpec, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return manifest.ServiceSpec{}, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(content)
}

// ParseManifest validates raw manifest bytes against the embedded schema and
// decodes them into a defaulted ServiceSpec.
func ParseManifest(content []byte) (manifest.ServiceSpec, error) {
	if err := validateManifest(content); err != nil {
		return manifest.ServiceSpec{}, fmt.Errorf("invalid manifest: %w", err)
	}

	var spec manifest.ServiceSpec
	if err := yaml.Unmarshal(content, &spec); err != nil {
		return manifest.ServiceSpec{}, fmt.Errorf("decode manifest: %w", err)
	}

	applyDefaults(&spec)
	return spec, nil
}

func validateManifest(content []byte) error {
	sch, err := loadSchema()
	if err != nil {
		return err
	}

	jsonData, err := sigsyaml.YAMLToJSON(content)
	if err != nil {
		return fmt.Errorf("convert yaml to json: %w", err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return fmt.Errorf("unmarshal json: %w", err)
	}

	return sch.Validate(document)
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		raw, err := schemaFS.ReadFile("schema/" + schemaName)
		if err != nil {
			schemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaName, bytes.NewReader(raw)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaName)
	})
	return compiledSchema, schemaErr
}

func applyDefaults(spec *manifest.ServiceSpec) {
	if spec.Bucket == "" {
		spec.Bucket = DefaultBucket
	}
	if spec.Table.Name == "" {
		spec.Table.Name = DefaultTable
	}
	if spec.Table.HashKey == "" {
		spec.Table.HashKey = DefaultHashKey
	}
	if spec.Table.RangeKey == "" {
		spec.Table.RangeKey = DefaultRangeKey
	}
	if spec.Table.BillingMode == "" {
		spec.Table.BillingMode = DefaultBillingMode
	}
	if spec.API == "" {
		spec.API = DefaultAPI
	}
	if spec.Stage == "" {
		spec.Stage = DefaultStage
	}
	if spec.Queue == "" {
		spec.Queue = DefaultQueue
	}

	for name, fn := range spec.Functions {
		if fn.Handler == "" {
			fn.Handler = DefaultHandler
		}
		if fn.Runtime == "" {
			fn.Runtime = DefaultRuntime
		}
		if fn.Timeout == 0 {
			fn.Timeout = DefaultTimeout
		}
		if fn.Method == "" && fn.Route != "" {
			fn.Method = "POST"
		}
		spec.Functions[name] = fn
	}
}
