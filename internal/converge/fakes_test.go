// Where: internal/converge/fakes_test.go
// What: In-memory control-plane fakes shared by the convergence tests.
// Why: Exercise query-then-act flows, including re-runs, without a control plane.
package converge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

type fakeS3 struct {
	buckets          map[string]bool
	notifications    map[string][]string
	createCalls      int
	putNotifications int
	probeErr         error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{
		buckets:       map[string]bool{},
		notifications: map[string][]string{},
	}
}

func (f *fakeS3) BucketExists(_ context.Context, name string) (bool, error) {
	if f.probeErr != nil {
		return false, f.probeErr
	}
	return f.buckets[name], nil
}

func (f *fakeS3) CreateBucket(_ context.Context, name string) error {
	if f.buckets[name] {
		return ErrAlreadyExists
	}
	f.buckets[name] = true
	f.createCalls++
	return nil
}

func (f *fakeS3) NotificationQueueARNs(_ context.Context, bucket string) ([]string, error) {
	return f.notifications[bucket], nil
}

func (f *fakeS3) PutQueueNotification(_ context.Context, bucket, queueARN string) error {
	// Whole-document overwrite, like the control plane.
	f.notifications[bucket] = []string{queueARN}
	f.putNotifications++
	return nil
}

type fakeDynamo struct {
	tables      map[string]bool
	createCalls int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]bool{}}
}

func (f *fakeDynamo) TableExists(_ context.Context, name string) (bool, error) {
	return f.tables[name], nil
}

func (f *fakeDynamo) CreateTable(_ context.Context, input TableCreateInput) error {
	if f.tables[input.TableName] {
		return ErrAlreadyExists
	}
	f.tables[input.TableName] = true
	f.createCalls++
	return nil
}

type fakeGateway struct {
	apiNames     map[string]string
	resources    map[string][]ResourceIdentity
	methods      map[string]bool
	integrations map[string]string
	deployments  []string
	nextID       int
	createCalls  int

	// getResourcesFailures fails that many leading GetResources calls to
	// exercise the readiness gate.
	getResourcesFailures int
	getResourcesCalls    int

	// putMethodConflict reports the method as racing with another writer.
	putMethodConflict bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		apiNames:     map[string]string{},
		resources:    map[string][]ResourceIdentity{},
		methods:      map[string]bool{},
		integrations: map[string]string{},
	}
}

func (f *fakeGateway) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%04d", prefix, f.nextID)
}

func (f *fakeGateway) FindRestAPIs(_ context.Context, name string) ([]string, error) {
	var ids []string
	for id, apiName := range f.apiNames {
		if apiName == name {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeGateway) CreateRestAPI(_ context.Context, name string) (string, error) {
	apiID := f.id("api")
	f.apiNames[apiID] = name
	f.resources[apiID] = []ResourceIdentity{{ID: f.id("res"), Path: "/"}}
	f.createCalls++
	return apiID, nil
}

func (f *fakeGateway) GetResources(_ context.Context, apiID string) ([]ResourceIdentity, error) {
	f.getResourcesCalls++
	if f.getResourcesFailures >= f.getResourcesCalls {
		return nil, errors.New("api not ready")
	}
	return f.resources[apiID], nil
}

func (f *fakeGateway) CreateResource(_ context.Context, apiID, parentID, pathPart string) (ResourceIdentity, error) {
	resource := ResourceIdentity{ID: f.id("res"), Path: "/" + pathPart, ParentID: parentID}
	f.resources[apiID] = append(f.resources[apiID], resource)
	f.createCalls++
	return resource, nil
}

func methodKey(apiID, resourceID, method string) string {
	return apiID + "|" + resourceID + "|" + method
}

func (f *fakeGateway) MethodExists(_ context.Context, apiID, resourceID, method string) (bool, error) {
	return f.methods[methodKey(apiID, resourceID, method)], nil
}

func (f *fakeGateway) PutMethod(_ context.Context, apiID, resourceID, method string) error {
	if f.putMethodConflict {
		return ErrAlreadyExists
	}
	f.methods[methodKey(apiID, resourceID, method)] = true
	f.createCalls++
	return nil
}

func (f *fakeGateway) IntegrationExists(_ context.Context, apiID, resourceID, method string) (bool, error) {
	_, ok := f.integrations[methodKey(apiID, resourceID, method)]
	return ok, nil
}

func (f *fakeGateway) PutIntegration(_ context.Context, apiID, resourceID, method, invocationARN string) error {
	f.integrations[methodKey(apiID, resourceID, method)] = invocationARN
	f.createCalls++
	return nil
}

func (f *fakeGateway) CreateDeployment(_ context.Context, apiID, stage string) error {
	f.deployments = append(f.deployments, apiID+"|"+stage)
	return nil
}

type fakeLambda struct {
	functions     map[string]FunctionIdentity
	statements    map[string][]string
	rawPolicies   map[string]string
	mappings      map[string]bool
	createCalls   int
	codeUpdates   int
	configUpdates int
	configs       map[string]FunctionConfigInput
	grantErr      error
}

func newFakeLambda() *fakeLambda {
	return &fakeLambda{
		functions:   map[string]FunctionIdentity{},
		statements:  map[string][]string{},
		rawPolicies: map[string]string{},
		mappings:    map[string]bool{},
		configs:     map[string]FunctionConfigInput{},
	}
}

func (f *fakeLambda) GetFunction(_ context.Context, name string) (FunctionIdentity, bool, error) {
	identity, ok := f.functions[name]
	return identity, ok, nil
}

func (f *fakeLambda) CreateFunction(_ context.Context, input FunctionCreateInput) (FunctionIdentity, error) {
	if _, ok := f.functions[input.Name]; ok {
		return FunctionIdentity{}, ErrAlreadyExists
	}
	identity := FunctionIdentity{
		Name: input.Name,
		ARN:  "arn:aws:lambda:us-east-1:000000000000:function:" + input.Name,
	}
	f.functions[input.Name] = identity
	f.configs[input.Name] = FunctionConfigInput{
		Name:        input.Name,
		Handler:     input.Handler,
		Timeout:     input.Timeout,
		Environment: input.Environment,
	}
	f.createCalls++
	return identity, nil
}

func (f *fakeLambda) UpdateFunctionCode(_ context.Context, name string, _ []byte) error {
	if _, ok := f.functions[name]; !ok {
		return errors.New("function not found")
	}
	f.codeUpdates++
	return nil
}

func (f *fakeLambda) UpdateFunctionConfiguration(_ context.Context, input FunctionConfigInput) error {
	if _, ok := f.functions[input.Name]; !ok {
		return errors.New("function not found")
	}
	f.configs[input.Name] = input
	f.configUpdates++
	return nil
}

func (f *fakeLambda) GetPolicy(_ context.Context, name string) (string, bool, error) {
	if raw, ok := f.rawPolicies[name]; ok {
		return raw, true, nil
	}
	sids, ok := f.statements[name]
	if !ok || len(sids) == 0 {
		return "", false, nil
	}
	statements := make([]map[string]any, 0, len(sids))
	for _, sid := range sids {
		statements = append(statements, map[string]any{"Sid": sid, "Effect": "Allow"})
	}
	raw, err := json.Marshal(map[string]any{
		"Version":   "2012-10-17",
		"Statement": statements,
	})
	if err != nil {
		return "", false, err
	}
	return string(raw), true, nil
}

func (f *fakeLambda) AddPermission(_ context.Context, input PermissionInput) error {
	if f.grantErr != nil {
		return f.grantErr
	}
	for _, sid := range f.statements[input.FunctionName] {
		if sid == input.StatementID {
			return ErrAlreadyExists
		}
	}
	f.statements[input.FunctionName] = append(f.statements[input.FunctionName], input.StatementID)
	f.createCalls++
	return nil
}

func mappingFakeKey(functionName, sourceARN string) string {
	return functionName + "|" + sourceARN
}

func (f *fakeLambda) MappingExists(_ context.Context, functionName, sourceARN string) (bool, error) {
	return f.mappings[mappingFakeKey(functionName, sourceARN)], nil
}

func (f *fakeLambda) CreateMapping(_ context.Context, input MappingInput) error {
	key := mappingFakeKey(input.FunctionName, input.SourceARN)
	if f.mappings[key] {
		return ErrAlreadyExists
	}
	f.mappings[key] = true
	f.createCalls++
	return nil
}

type fakeQueue struct {
	url    string
	arn    string
	policy string
}

type fakeSQS struct {
	queues      map[string]*fakeQueue
	createCalls int
	policySets  int
}

func newFakeSQS() *fakeSQS {
	return &fakeSQS{queues: map[string]*fakeQueue{}}
}

func (f *fakeSQS) GetQueueURL(_ context.Context, name string) (string, bool, error) {
	queue, ok := f.queues[name]
	if !ok {
		return "", false, nil
	}
	return queue.url, true, nil
}

func (f *fakeSQS) CreateQueue(_ context.Context, name string) (string, error) {
	if _, ok := f.queues[name]; ok {
		return "", ErrAlreadyExists
	}
	queue := &fakeQueue{
		url: "http://localhost:4566/000000000000/" + name,
		arn: "arn:aws:sqs:us-east-1:000000000000:" + name,
	}
	f.queues[name] = queue
	f.createCalls++
	return queue.url, nil
}

func (f *fakeSQS) GetQueueAttributes(_ context.Context, queueURL string) (QueueAttributes, error) {
	for _, queue := range f.queues {
		if queue.url == queueURL {
			return QueueAttributes{ARN: queue.arn, Policy: queue.policy}, nil
		}
	}
	return QueueAttributes{}, errors.New("queue not found")
}

func (f *fakeSQS) SetQueuePolicy(_ context.Context, queueURL, policy string) error {
	for _, queue := range f.queues {
		if queue.url == queueURL {
			queue.policy = policy
			f.policySets++
			return nil
		}
	}
	return errors.New("queue not found")
}

type fakeClients struct {
	s3      *fakeS3
	dynamo  *fakeDynamo
	gateway *fakeGateway
	lambda  *fakeLambda
	sqs     *fakeSQS
}

func newFakeClients() fakeClients {
	return fakeClients{
		s3:      newFakeS3(),
		dynamo:  newFakeDynamo(),
		gateway: newFakeGateway(),
		lambda:  newFakeLambda(),
		sqs:     newFakeSQS(),
	}
}

func (f fakeClients) clients() Clients {
	return Clients{
		S3:      f.s3,
		Dynamo:  f.dynamo,
		Gateway: f.gateway,
		Lambda:  f.lambda,
		SQS:     f.sqs,
	}
}

func (f fakeClients) totalCreations() int {
	return f.s3.createCalls +
		f.dynamo.createCalls +
		f.gateway.createCalls +
		f.lambda.createCalls +
		f.sqs.createCalls
}
