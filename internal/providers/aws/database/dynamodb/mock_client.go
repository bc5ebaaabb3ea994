package dynamodb

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var (
	conditionFunc   = regexp.MustCompile(`(attribute_exists|attribute_not_exists)\s*\(\s*([#:\w]+)\s*\)`)
	equalityClause  = regexp.MustCompile(`([#\w]+)\s*=\s*(:\w+)`)
	updateAction    = regexp.MustCompile(`\b(SET|ADD|REMOVE)\b`)
	errMockNotFound = &types.ResourceNotFoundException{Message: aws.String("Requested resource not found")}
)

type keySchema struct {
	partition string
	sort      string
}

type mockTable struct {
	key     keySchema
	indexes map[string]keySchema
	items   map[string]map[string]types.AttributeValue
}

// MockDynamoDBClient is an in-memory implementation of Client for testing.
// Tables and indexes are declared with CreateTable and CreateIndex so that item keys can be
// resolved. It understands the expressions the repositories build: attribute_exists and
// attribute_not_exists conditions, equality key conditions and filters, SET, ADD and REMOVE
// updates, and the ReturnValues options.
type MockDynamoDBClient struct {
	mu sync.Mutex

	tables map[string]*mockTable

	// QueryPageSize caps the number of items evaluated per Query page when greater than zero.
	QueryPageSize int

	// Error injection for testing error scenarios
	PutItemError    error
	GetItemError    error
	QueryError      error
	UpdateItemError error
	DeleteItemError error

	// Call tracking for test assertions
	PutItemCalls    int
	GetItemCalls    int
	QueryCalls      int
	UpdateItemCalls int
	DeleteItemCalls int
}

// NewMockDynamoDBClient creates a new mock DynamoDB client for testing.
func NewMockDynamoDBClient() *MockDynamoDBClient {
	return &MockDynamoDBClient{
		tables: make(map[string]*mockTable),
	}
}

// CreateTable declares a table and its primary key. sortKey may be empty.
func (m *MockDynamoDBClient) CreateTable(name, partitionKey, sortKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tables[name] = &mockTable{
		key:     keySchema{partition: partitionKey, sort: sortKey},
		indexes: make(map[string]keySchema),
		items:   make(map[string]map[string]types.AttributeValue),
	}
}

// CreateIndex declares a global secondary index on an existing table.
func (m *MockDynamoDBClient) CreateIndex(table, index, partitionKey, sortKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.tables[table]; ok {
		t.indexes[index] = keySchema{partition: partitionKey, sort: sortKey}
	}
}

// ItemCount returns the number of items stored in a table.
func (m *MockDynamoDBClient) ItemCount(table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.tables[table]; ok {
		return len(t.items)
	}
	return 0
}

// PutItem stores an item in the mock table.
func (m *MockDynamoDBClient) PutItem(
	_ context.Context,
	params *dynamodb.PutItemInput,
	_ ...func(*dynamodb.Options),
) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PutItemCalls++

	if m.PutItemError != nil {
		return nil, m.PutItemError
	}

	t, ok := m.tables[aws.ToString(params.TableName)]
	if !ok {
		return nil, errMockNotFound
	}

	key, err := compositeKey(t.key, params.Item)
	if err != nil {
		return nil, err
	}

	old := t.items[key]
	if err = checkCondition(params.ConditionExpression, params.ExpressionAttributeNames, old); err != nil {
		return nil, err
	}

	t.items[key] = cloneItem(params.Item)

	out := &dynamodb.PutItemOutput{}
	if params.ReturnValues == types.ReturnValueAllOld {
		out.Attributes = cloneItem(old)
	}
	return out, nil
}

// GetItem retrieves an item from the mock table.
func (m *MockDynamoDBClient) GetItem(
	_ context.Context,
	params *dynamodb.GetItemInput,
	_ ...func(*dynamodb.Options),
) (*dynamodb.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetItemCalls++

	if m.GetItemError != nil {
		return nil, m.GetItemError
	}

	t, ok := m.tables[aws.ToString(params.TableName)]
	if !ok {
		return nil, errMockNotFound
	}

	key, err := compositeKey(t.key, params.Key)
	if err != nil {
		return nil, err
	}

	return &dynamodb.GetItemOutput{Item: cloneItem(t.items[key])}, nil
}

// Query searches the table or one of its indexes. Limit and QueryPageSize bound the items
// evaluated per page; the filter expression is applied after paging, as DynamoDB does.
func (m *MockDynamoDBClient) Query(
	_ context.Context,
	params *dynamodb.QueryInput,
	_ ...func(*dynamodb.Options),
) (*dynamodb.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.QueryCalls++

	if m.QueryError != nil {
		return nil, m.QueryError
	}

	t, ok := m.tables[aws.ToString(params.TableName)]
	if !ok {
		return nil, errMockNotFound
	}

	schema := t.key
	if params.IndexName != nil {
		if schema, ok = t.indexes[*params.IndexName]; !ok {
			return nil, fmt.Errorf("index %s not found", *params.IndexName)
		}
	}

	keyConds, err := parseEqualities(params.KeyConditionExpression, params.ExpressionAttributeNames,
		params.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}
	filters, err := parseEqualities(params.FilterExpression, params.ExpressionAttributeNames,
		params.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}

	matched := make([]map[string]types.AttributeValue, 0)
	for _, item := range t.items {
		if !hasKey(schema, item) || !matchesAll(item, keyConds) {
			continue
		}
		matched = append(matched, item)
	}
	sortItems(matched, schema, t.key)

	start := 0
	if params.ExclusiveStartKey != nil {
		startKey, keyErr := compositeKey(t.key, params.ExclusiveStartKey)
		if keyErr != nil {
			return nil, keyErr
		}
		for i, item := range matched {
			if k, _ := compositeKey(t.key, item); k == startKey {
				start = i + 1
				break
			}
		}
	}

	pageSize := len(matched) - start
	if params.Limit != nil && int(*params.Limit) < pageSize {
		pageSize = int(*params.Limit)
	}
	if m.QueryPageSize > 0 && m.QueryPageSize < pageSize {
		pageSize = m.QueryPageSize
	}
	page := matched[start : start+pageSize]

	out := &dynamodb.QueryOutput{
		ScannedCount: safeInt32Count(len(page)),
	}
	for _, item := range page {
		if matchesAll(item, filters) {
			out.Items = append(out.Items, cloneItem(item))
		}
	}
	out.Count = safeInt32Count(len(out.Items))

	if start+pageSize < len(matched) && len(page) > 0 {
		out.LastEvaluatedKey = lastEvaluatedKey(page[len(page)-1], schema, t.key)
	}

	return out, nil
}

// UpdateItem applies an update expression to an item, creating it when absent and the
// condition allows.
func (m *MockDynamoDBClient) UpdateItem(
	_ context.Context,
	params *dynamodb.UpdateItemInput,
	_ ...func(*dynamodb.Options),
) (*dynamodb.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateItemCalls++

	if m.UpdateItemError != nil {
		return nil, m.UpdateItemError
	}

	t, ok := m.tables[aws.ToString(params.TableName)]
	if !ok {
		return nil, errMockNotFound
	}

	key, err := compositeKey(t.key, params.Key)
	if err != nil {
		return nil, err
	}

	old := t.items[key]
	if err = checkCondition(params.ConditionExpression, params.ExpressionAttributeNames, old); err != nil {
		return nil, err
	}

	updated := cloneItem(old)
	if updated == nil {
		updated = cloneItem(params.Key)
	}

	changed, err := applyUpdate(updated, aws.ToString(params.UpdateExpression),
		params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}
	t.items[key] = updated

	out := &dynamodb.UpdateItemOutput{}
	switch params.ReturnValues {
	case types.ReturnValueAllNew:
		out.Attributes = cloneItem(updated)
	case types.ReturnValueAllOld:
		out.Attributes = cloneItem(old)
	case types.ReturnValueUpdatedNew:
		out.Attributes = make(map[string]types.AttributeValue, len(changed))
		for _, name := range changed {
			if v, exists := updated[name]; exists {
				out.Attributes[name] = v
			}
		}
	case types.ReturnValueUpdatedOld:
		out.Attributes = make(map[string]types.AttributeValue, len(changed))
		for _, name := range changed {
			if v, exists := old[name]; exists {
				out.Attributes[name] = v
			}
		}
	}
	return out, nil
}

// DeleteItem removes an item from the mock table.
func (m *MockDynamoDBClient) DeleteItem(
	_ context.Context,
	params *dynamodb.DeleteItemInput,
	_ ...func(*dynamodb.Options),
) (*dynamodb.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteItemCalls++

	if m.DeleteItemError != nil {
		return nil, m.DeleteItemError
	}

	t, ok := m.tables[aws.ToString(params.TableName)]
	if !ok {
		return nil, errMockNotFound
	}

	key, err := compositeKey(t.key, params.Key)
	if err != nil {
		return nil, err
	}

	old := t.items[key]
	if err = checkCondition(params.ConditionExpression, params.ExpressionAttributeNames, old); err != nil {
		return nil, err
	}
	delete(t.items, key)

	out := &dynamodb.DeleteItemOutput{}
	if params.ReturnValues == types.ReturnValueAllOld {
		out.Attributes = cloneItem(old)
	}
	return out, nil
}

// ResetCallCounts resets all call counters to zero.
func (m *MockDynamoDBClient) ResetCallCounts() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PutItemCalls = 0
	m.GetItemCalls = 0
	m.QueryCalls = 0
	m.UpdateItemCalls = 0
	m.DeleteItemCalls = 0
}

// ClearTables removes all items but keeps the declared schemas.
func (m *MockDynamoDBClient) ClearTables() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.tables {
		t.items = make(map[string]map[string]types.AttributeValue)
	}
}

// getStringValue extracts a string value from an AttributeValue.
// This is a simplified helper for the mock implementation.
func getStringValue(av types.AttributeValue) string {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value
	case *types.AttributeValueMemberN:
		return v.Value
	default:
		return ""
	}
}

// safeInt32Count safely converts an int count to int32, clamping to max int32 if necessary.
func safeInt32Count(count int) int32 {
	const maxInt32 = int32(math.MaxInt32)
	if count > int(maxInt32) {
		return maxInt32
	}
	//nolint:gosec // Safe conversion: count is already checked to be <= maxInt32
	return int32(count)
}

func compositeKey(schema keySchema, item map[string]types.AttributeValue) (string, error) {
	pk, ok := item[schema.partition]
	if !ok {
		return "", fmt.Errorf("missing partition key %q", schema.partition)
	}
	key := getStringValue(pk)
	if schema.sort == "" {
		return key, nil
	}
	sk, ok := item[schema.sort]
	if !ok {
		return "", fmt.Errorf("missing sort key %q", schema.sort)
	}
	return key + "\x00" + getStringValue(sk), nil
}

func hasKey(schema keySchema, item map[string]types.AttributeValue) bool {
	if _, ok := item[schema.partition]; !ok {
		return false
	}
	if schema.sort == "" {
		return true
	}
	_, ok := item[schema.sort]
	return ok
}

func lastEvaluatedKey(item map[string]types.AttributeValue, schemas ...keySchema) map[string]types.AttributeValue {
	key := make(map[string]types.AttributeValue)
	for _, s := range schemas {
		for _, name := range []string{s.partition, s.sort} {
			if v, ok := item[name]; ok && name != "" {
				key[name] = v
			}
		}
	}
	return key
}

func resolveName(token string, names map[string]string) string {
	if strings.HasPrefix(token, "#") {
		if name, ok := names[token]; ok {
			return name
		}
	}
	return token
}

func checkCondition(expr *string, names map[string]string, current map[string]types.AttributeValue) error {
	condition := strings.TrimSpace(aws.ToString(expr))
	if condition == "" {
		return nil
	}

	matches := conditionFunc.FindAllStringSubmatch(condition, -1)
	if len(matches) == 0 {
		return fmt.Errorf("unsupported condition expression %q", condition)
	}

	for _, match := range matches {
		_, exists := current[resolveName(match[2], names)]
		if (match[1] == "attribute_exists") != exists {
			return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
		}
	}
	return nil
}

type equality struct {
	name  string
	value types.AttributeValue
}

func parseEqualities(
	expr *string,
	names map[string]string,
	values map[string]types.AttributeValue,
) ([]equality, error) {
	raw := strings.TrimSpace(aws.ToString(expr))
	if raw == "" {
		return nil, nil
	}

	matches := equalityClause.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("unsupported expression %q", raw)
	}

	out := make([]equality, 0, len(matches))
	for _, match := range matches {
		v, ok := values[match[2]]
		if !ok {
			return nil, fmt.Errorf("missing expression attribute value %s", match[2])
		}
		out = append(out, equality{name: resolveName(match[1], names), value: v})
	}
	return out, nil
}

func matchesAll(item map[string]types.AttributeValue, conds []equality) bool {
	for _, c := range conds {
		if !reflect.DeepEqual(item[c.name], c.value) {
			return false
		}
	}
	return true
}

func applyUpdate(
	item map[string]types.AttributeValue,
	expr string,
	names map[string]string,
	values map[string]types.AttributeValue,
) ([]string, error) {
	locs := updateAction.FindAllStringSubmatchIndex(expr, -1)
	if len(locs) == 0 {
		return nil, fmt.Errorf("unsupported update expression %q", expr)
	}

	var changed []string
	for i, loc := range locs {
		action := expr[loc[2]:loc[3]]
		end := len(expr)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}

		for _, part := range strings.Split(expr[loc[1]:end], ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			name, err := applyUpdateAction(item, action, part, names, values)
			if err != nil {
				return nil, err
			}
			changed = append(changed, name)
		}
	}
	return changed, nil
}

func applyUpdateAction(
	item map[string]types.AttributeValue,
	action, part string,
	names map[string]string,
	values map[string]types.AttributeValue,
) (string, error) {
	switch action {
	case "SET":
		lhs, rhs, ok := strings.Cut(part, "=")
		if !ok {
			return "", fmt.Errorf("malformed SET clause %q", part)
		}
		name := resolveName(strings.TrimSpace(lhs), names)
		v, ok := values[strings.TrimSpace(rhs)]
		if !ok {
			return "", fmt.Errorf("missing expression attribute value %s", strings.TrimSpace(rhs))
		}
		item[name] = v
		return name, nil
	case "ADD":
		fields := strings.Fields(part)
		if len(fields) != 2 {
			return "", fmt.Errorf("malformed ADD clause %q", part)
		}
		name := resolveName(fields[0], names)
		delta, ok := values[fields[1]].(*types.AttributeValueMemberN)
		if !ok {
			return "", fmt.Errorf("ADD requires a numeric value for %s", fields[1])
		}
		sum, err := addNumbers(item[name], delta.Value)
		if err != nil {
			return "", err
		}
		item[name] = &types.AttributeValueMemberN{Value: sum}
		return name, nil
	default:
		name := resolveName(part, names)
		delete(item, name)
		return name, nil
	}
}

func addNumbers(current types.AttributeValue, delta string) (string, error) {
	var base int64
	if current != nil {
		n, ok := current.(*types.AttributeValueMemberN)
		if !ok {
			return "", fmt.Errorf("ADD target is not a number")
		}
		parsed, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return "", fmt.Errorf("parse number: %w", err)
		}
		base = parsed
	}
	d, err := strconv.ParseInt(delta, 10, 64)
	if err != nil {
		return "", fmt.Errorf("parse number: %w", err)
	}
	return strconv.FormatInt(base+d, 10), nil
}

func sortItems(items []map[string]types.AttributeValue, schema, table keySchema) {
	sort.SliceStable(items, func(i, j int) bool {
		if schema.sort != "" {
			if c := compareAttr(items[i][schema.sort], items[j][schema.sort]); c != 0 {
				return c < 0
			}
		}
		ki, _ := compositeKey(table, items[i])
		kj, _ := compositeKey(table, items[j])
		return ki < kj
	})
}

func compareAttr(a, b types.AttributeValue) int {
	an, aNum := a.(*types.AttributeValueMemberN)
	bn, bNum := b.(*types.AttributeValueMemberN)
	if aNum && bNum {
		af, _ := strconv.ParseFloat(an.Value, 64)
		bf, _ := strconv.ParseFloat(bn.Value, 64)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	return strings.Compare(getStringValue(a), getStringValue(b))
}

func cloneItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	if item == nil {
		return nil
	}
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
