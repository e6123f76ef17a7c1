// Where: internal/app/stubs_test.go
// What: Minimal in-memory control-plane stubs for command tests.
package app

import (
	"context"
	"fmt"

	"github.com/poruru/image-service-deploy/internal/converge"
)

// stubPlane is a single struct implementing all five control-plane
// interfaces with just enough state to let one deploy pass converge.
type stubPlane struct {
	buckets       map[string]bool
	notifications map[string][]string
	tables        map[string]bool
	apis          map[string]string
	resources     map[string][]converge.ResourceIdentity
	methods       map[string]bool
	integrations  map[string]bool
	functions     map[string]converge.FunctionIdentity
	statements    map[string][]string
	mappings      map[string]bool
	queues        map[string]string
	policies      map[string]string
	nextID        int
}

func newStubPlane() *stubPlane {
	return &stubPlane{
		buckets:       map[string]bool{},
		notifications: map[string][]string{},
		tables:        map[string]bool{},
		apis:          map[string]string{},
		resources:     map[string][]converge.ResourceIdentity{},
		methods:       map[string]bool{},
		integrations:  map[string]bool{},
		functions:     map[string]converge.FunctionIdentity{},
		statements:    map[string][]string{},
		mappings:      map[string]bool{},
		queues:        map[string]string{},
		policies:      map[string]string{},
	}
}

func newStubClients() converge.Clients {
	plane := newStubPlane()
	return converge.Clients{
		S3: plane, Dynamo: plane, Gateway: plane, Lambda: plane, SQS: plane,
	}
}

func (p *stubPlane) id(prefix string) string {
	p.nextID++
	return fmt.Sprintf("%s%04d", prefix, p.nextID)
}

func (p *stubPlane) BucketExists(_ context.Context, name string) (bool, error) {
	return p.buckets[name], nil
}

func (p *stubPlane) CreateBucket(_ context.Context, name string) error {
	p.buckets[name] = true
	return nil
}

func (p *stubPlane) NotificationQueueARNs(_ context.Context, bucket string) ([]string, error) {
	return p.notifications[bucket], nil
}

func (p *stubPlane) PutQueueNotification(_ context.Context, bucket, queueARN string) error {
	p.notifications[bucket] = []string{queueARN}
	return nil
}

func (p *stubPlane) TableExists(_ context.Context, name string) (bool, error) {
	return p.tables[name], nil
}

func (p *stubPlane) CreateTable(_ context.Context, input converge.TableCreateInput) error {
	p.tables[input.TableName] = true
	return nil
}

func (p *stubPlane) FindRestAPIs(_ context.Context, name string) ([]string, error) {
	var ids []string
	for id, apiName := range p.apis {
		if apiName == name {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (p *stubPlane) CreateRestAPI(_ context.Context, name string) (string, error) {
	apiID := p.id("api")
	p.apis[apiID] = name
	p.resources[apiID] = []converge.ResourceIdentity{{ID: p.id("res"), Path: "/"}}
	return apiID, nil
}

func (p *stubPlane) GetResources(_ context.Context, apiID string) ([]converge.ResourceIdentity, error) {
	return p.resources[apiID], nil
}

func (p *stubPlane) CreateResource(_ context.Context, apiID, parentID, pathPart string) (converge.ResourceIdentity, error) {
	resource := converge.ResourceIdentity{ID: p.id("res"), Path: "/" + pathPart, ParentID: parentID}
	p.resources[apiID] = append(p.resources[apiID], resource)
	return resource, nil
}

func (p *stubPlane) MethodExists(_ context.Context, apiID, resourceID, method string) (bool, error) {
	return p.methods[apiID+"|"+resourceID+"|"+method], nil
}

func (p *stubPlane) PutMethod(_ context.Context, apiID, resourceID, method string) error {
	p.methods[apiID+"|"+resourceID+"|"+method] = true
	return nil
}

func (p *stubPlane) IntegrationExists(_ context.Context, apiID, resourceID, method string) (bool, error) {
	return p.integrations[apiID+"|"+resourceID+"|"+method], nil
}

func (p *stubPlane) PutIntegration(_ context.Context, apiID, resourceID, method, _ string) error {
	p.integrations[apiID+"|"+resourceID+"|"+method] = true
	return nil
}

func (p *stubPlane) CreateDeployment(context.Context, string, string) error {
	return nil
}

func (p *stubPlane) GetFunction(_ context.Context, name string) (converge.FunctionIdentity, bool, error) {
	identity, ok := p.functions[name]
	return identity, ok, nil
}

func (p *stubPlane) CreateFunction(_ context.Context, input converge.FunctionCreateInput) (converge.FunctionIdentity, error) {
	identity := converge.FunctionIdentity{
		Name: input.Name,
		ARN:  "arn:aws:lambda:us-east-1:000000000000:function:" + input.Name,
	}
	p.functions[input.Name] = identity
	return identity, nil
}

func (p *stubPlane) UpdateFunctionCode(context.Context, string, []byte) error {
	return nil
}

func (p *stubPlane) UpdateFunctionConfiguration(context.Context, converge.FunctionConfigInput) error {
	return nil
}

func (p *stubPlane) GetPolicy(_ context.Context, name string) (string, bool, error) {
	sids, ok := p.statements[name]
	if !ok || len(sids) == 0 {
		return "", false, nil
	}
	doc := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Sid":%q}]}`, sids[0])
	return doc, true, nil
}

func (p *stubPlane) AddPermission(_ context.Context, input converge.PermissionInput) error {
	p.statements[input.FunctionName] = append(p.statements[input.FunctionName], input.StatementID)
	return nil
}

func (p *stubPlane) MappingExists(_ context.Context, functionName, sourceARN string) (bool, error) {
	return p.mappings[functionName+"|"+sourceARN], nil
}

func (p *stubPlane) CreateMapping(_ context.Context, input converge.MappingInput) error {
	p.mappings[input.FunctionName+"|"+input.SourceARN] = true
	return nil
}

func (p *stubPlane) GetQueueURL(_ context.Context, name string) (string, bool, error) {
	url, ok := p.queues[name]
	return url, ok, nil
}

func (p *stubPlane) CreateQueue(_ context.Context, name string) (string, error) {
	url := "http://localhost:4566/000000000000/" + name
	p.queues[name] = url
	return url, nil
}

func (p *stubPlane) GetQueueAttributes(_ context.Context, queueURL string) (converge.QueueAttributes, error) {
	for name, url := range p.queues {
		if url == queueURL {
			return converge.QueueAttributes{
				ARN:    "arn:aws:sqs:us-east-1:000000000000:" + name,
				Policy: p.policies[queueURL],
			}, nil
		}
	}
	return converge.QueueAttributes{}, fmt.Errorf("queue not found: %s", queueURL)
}

func (p *stubPlane) SetQueuePolicy(_ context.Context, queueURL, policy string) error {
	p.policies[queueURL] = policy
	return nil
}
