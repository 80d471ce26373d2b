// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/blobvault/encrypt"
	"github.com/bitmark-inc/blobvault/fault"
	"github.com/bitmark-inc/blobvault/fixtures"
	"github.com/bitmark-inc/blobvault/namespace"
	"github.com/bitmark-inc/blobvault/schema"
	"github.com/bitmark-inc/blobvault/storage"
	"github.com/bitmark-inc/blobvault/store"
	"github.com/bitmark-inc/blobvault/store/mocks"
)

const testingDirName = "testing-store"

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

// fixed keys, derivation itself is covered by the encrypt tests
var (
	keyA = &[encrypt.KeyLength]byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
		0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18,
		0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f, 0x20,
	}
	keyB = &[encrypt.KeyLength]byte{
		0xa0, 0xa1, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7,
		0xa8, 0xa9, 0xaa, 0xab, 0xac, 0xad, 0xae, 0xaf,
		0xb0, 0xb1, 0xb2, 0xb3, 0xb4, 0xb5, 0xb6, 0xb7,
		0xb8, 0xb9, 0xba, 0xbb, 0xbc, 0xbd, 0xbe, 0xbf,
	}
)

// an in-memory storage node
//
// append-only per instance, one monotonically increasing height
type memoryNode struct {
	mu     sync.Mutex
	height uint64
	blobs  map[uint64]string
}

func newMemoryNode() *memoryNode {
	return &memoryNode{
		blobs: map[uint64]string{},
	}
}

func (node *memoryNode) Call(method string, params interface{}) (json.RawMessage, error) {

	data, err := json.Marshal(params)
	if nil != err {
		return nil, err
	}

	node.mu.Lock()
	defer node.mu.Unlock()

	switch method {
	case "Blob.Submit":
		var p struct {
			Namespace string `json:"namespace"`
			Payload   string `json:"payload"`
		}
		if err := json.Unmarshal(data, &p); nil != err {
			return nil, err
		}
		if "" == p.Namespace || "" == p.Payload {
			return nil, fmt.Errorf("substrate rejected: missing parameters")
		}
		node.height += 1
		node.blobs[node.height] = p.Payload
		return json.Marshal(map[string]uint64{"height": node.height})

	case "Blob.Get":
		var p struct {
			Height uint64 `json:"height"`
		}
		if err := json.Unmarshal(data, &p); nil != err {
			return nil, err
		}
		payload, ok := node.blobs[p.Height]
		if !ok {
			return nil, fmt.Errorf("substrate rejected: no blob at position %d", p.Height)
		}
		return json.Marshal(map[string]string{"payload": payload})

	case "Node.Info":
		return json.Marshal(map[string]interface{}{
			"height":  node.height,
			"version": "memory-node",
		})

	default:
		return nil, fmt.Errorf("substrate rejected: unknown method %q", method)
	}
}

func openAccess(t *testing.T) *storage.Access {
	t.Helper()
	directory := filepath.Join(testingDirName, t.Name())
	_ = os.RemoveAll(directory)

	access, err := storage.Initialise(directory, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage.Initialise error: %v", err)
	}
	return access
}

func testNamespace(t *testing.T) namespace.Namespace {
	t.Helper()
	ns, err := namespace.FromString("unittest")
	if nil != err {
		t.Fatalf("namespace error: %v", err)
	}
	return ns
}

var testDefinition = schema.Definition{
	"name": {Type: schema.String, Required: true},
	"age":  {Type: schema.Number, Required: false},
}

func TestInitialiseAppendList(t *testing.T) {

	access := openAccess(t)
	defer access.Finalise()
	node := newMemoryNode()
	s := store.New(node, access, keyA)

	height, err := s.InitialiseSchema(testNamespace(t), testDefinition)
	assert.Nil(t, err, "wrong InitialiseSchema")
	assert.Equal(t, uint64(1), height, "wrong schema position")
	assert.True(t, s.IsInitialised(), "wrong IsInitialised")

	receipt, err := s.Append(map[string]interface{}{"name": "a"})
	assert.Nil(t, err, "wrong Append")
	assert.Equal(t, uint64(2), receipt.Position, "wrong record position")

	// a record missing the required field never reaches the node
	heightBefore := node.height
	_, err = s.Append(map[string]interface{}{"age": 12.0})
	violation, ok := err.(*schema.ViolationError)
	assert.True(t, ok, "wrong error type: %v", err)
	assert.Equal(t, "name", violation.Field, "wrong violated field")
	assert.Equal(t, heightBefore, node.height, "invalid record reached the substrate")

	listing, err := s.List()
	assert.Nil(t, err, "wrong List")
	assert.Equal(t, 1, len(listing.Records), "wrong record count")
	assert.Equal(t, 0, len(listing.Failures), "wrong failure count")
	assert.Equal(t, "a", listing.Records[0].Data["name"], "wrong record content")
	assert.Equal(t, uint64(2), listing.Records[0].Position, "wrong listed position")
}

func TestAppendBeforeInitialise(t *testing.T) {

	access := openAccess(t)
	defer access.Finalise()
	s := store.New(newMemoryNode(), access, keyA)

	_, err := s.Append(map[string]interface{}{"name": "a"})
	assert.Equal(t, fault.NotInitialised, err, "wrong error")
}

func TestInitialiseTwice(t *testing.T) {

	access := openAccess(t)
	defer access.Finalise()
	s := store.New(newMemoryNode(), access, keyA)

	_, err := s.InitialiseSchema(testNamespace(t), testDefinition)
	assert.Nil(t, err, "wrong first InitialiseSchema")

	_, err = s.InitialiseSchema(testNamespace(t), testDefinition)
	assert.Equal(t, fault.SchemaAlreadyExists, err, "wrong error")
}

func TestInitialiseRejectsBadDefinition(t *testing.T) {

	access := openAccess(t)
	defer access.Finalise()
	node := newMemoryNode()
	s := store.New(node, access, keyA)

	_, err := s.InitialiseSchema(testNamespace(t), schema.Definition{})
	assert.Equal(t, fault.InvalidSchemaDefinition, err, "wrong error")
	assert.Equal(t, uint64(0), node.height, "invalid schema reached the substrate")
}

func TestListNewestFirst(t *testing.T) {

	access := openAccess(t)
	defer access.Finalise()
	s := store.New(newMemoryNode(), access, keyA)

	_, err := s.InitialiseSchema(testNamespace(t), testDefinition)
	assert.Nil(t, err, "wrong InitialiseSchema")

	names := []string{"first", "second", "third"}
	for _, name := range names {
		_, err = s.Append(map[string]interface{}{"name": name})
		assert.Nil(t, err, "wrong Append: %s", name)
		time.Sleep(2 * time.Millisecond) // distinct creation times
	}

	listing, err := s.List()
	assert.Nil(t, err, "wrong List")
	assert.Equal(t, 3, len(listing.Records), "wrong record count")

	assert.Equal(t, "third", listing.Records[0].Data["name"], "wrong order")
	assert.Equal(t, "second", listing.Records[1].Data["name"], "wrong order")
	assert.Equal(t, "first", listing.Records[2].Data["name"], "wrong order")
}

func TestSchemaRefetchedAfterRestart(t *testing.T) {

	access := openAccess(t)
	defer access.Finalise()
	node := newMemoryNode()

	s := store.New(node, access, keyA)
	_, err := s.InitialiseSchema(testNamespace(t), testDefinition)
	assert.Nil(t, err, "wrong InitialiseSchema")

	// a fresh session with empty caches must recover the schema
	// from the node
	restarted := store.New(node, access, keyA)
	definition, err := restarted.Schema()
	assert.Nil(t, err, "wrong Schema")
	assert.Equal(t, len(testDefinition), len(definition), "wrong schema size")
	assert.Equal(t, testDefinition["name"], definition["name"], "wrong schema field")

	_, err = restarted.Append(map[string]interface{}{"name": "after restart"})
	assert.Nil(t, err, "wrong Append after restart")
}

func TestWrongTokenListsOnlyFailures(t *testing.T) {

	access := openAccess(t)
	defer access.Finalise()
	node := newMemoryNode()

	s := store.New(node, access, keyA)
	_, err := s.InitialiseSchema(testNamespace(t), testDefinition)
	assert.Nil(t, err, "wrong InitialiseSchema")
	_, err = s.Append(map[string]interface{}{"name": "one"})
	assert.Nil(t, err, "wrong Append")
	_, err = s.Append(map[string]interface{}{"name": "two"})
	assert.Nil(t, err, "wrong Append")

	// same local state, different key: the index is intact but
	// nothing decrypts, which must not look like an empty database
	mismatched := store.New(node, access, keyB)
	listing, err := mismatched.List()
	assert.Nil(t, err, "wrong List")
	assert.Equal(t, 0, len(listing.Records), "wrong record count")
	assert.Equal(t, 2, len(listing.Failures), "wrong failure count")

	_, err = mismatched.Schema()
	assert.Equal(t, fault.DecryptionFailed, err, "wrong Schema error")
}

func TestFetchFailureIsPerEntry(t *testing.T) {

	access := openAccess(t)
	defer access.Finalise()
	node := newMemoryNode()

	s := store.New(node, access, keyA)
	_, err := s.InitialiseSchema(testNamespace(t), testDefinition)
	assert.Nil(t, err, "wrong InitialiseSchema")
	first, err := s.Append(map[string]interface{}{"name": "keep"})
	assert.Nil(t, err, "wrong Append")
	second, err := s.Append(map[string]interface{}{"name": "lose"})
	assert.Nil(t, err, "wrong Append")

	// simulate a blob the index knows but the node denies
	node.mu.Lock()
	delete(node.blobs, second.Position)
	node.mu.Unlock()

	listing, err := s.List()
	assert.Nil(t, err, "wrong List")
	assert.Equal(t, 1, len(listing.Records), "wrong record count")
	assert.Equal(t, first.Position, listing.Records[0].Position, "wrong surviving record")
	assert.Equal(t, 1, len(listing.Failures), "wrong failure count")
	assert.Equal(t, second.Position, listing.Failures[0].Position, "wrong failed position")
}

func TestResetLocalState(t *testing.T) {

	access := openAccess(t)
	defer access.Finalise()
	s := store.New(newMemoryNode(), access, keyA)

	token, err := encrypt.GenerateToken()
	assert.Nil(t, err, "wrong GenerateToken")
	err = store.SaveToken(access, token)
	assert.Nil(t, err, "wrong SaveToken")

	_, err = s.InitialiseSchema(testNamespace(t), testDefinition)
	assert.Nil(t, err, "wrong InitialiseSchema")
	_, err = s.Append(map[string]interface{}{"name": "doomed"})
	assert.Nil(t, err, "wrong Append")

	s.ResetLocalState()

	assert.False(t, s.IsInitialised(), "still initialised after reset")
	_, err = store.LoadToken(access)
	assert.Equal(t, fault.SecretTokenNotSet, err, "token survived reset")
	_, err = s.Append(map[string]interface{}{"name": "x"})
	assert.Equal(t, fault.NotInitialised, err, "append possible after reset")
	_, err = s.List()
	assert.Equal(t, fault.NamespaceNotSet, err, "wrong List error after reset")
}

func TestTokenPersistence(t *testing.T) {

	access := openAccess(t)
	defer access.Finalise()

	_, err := store.LoadToken(access)
	assert.Equal(t, fault.SecretTokenNotSet, err, "wrong error on fresh state")

	token, err := encrypt.GenerateToken()
	assert.Nil(t, err, "wrong GenerateToken")
	err = store.SaveToken(access, token)
	assert.Nil(t, err, "wrong SaveToken")

	loaded, err := store.LoadToken(access)
	assert.Nil(t, err, "wrong LoadToken")
	assert.Equal(t, token, loaded, "loaded token differs")

	// a second token would orphan all existing ciphertext
	other, _ := encrypt.GenerateToken()
	err = store.SaveToken(access, other)
	assert.Equal(t, fault.AlreadyInitialised, err, "token was overwritten")

	store.ClearToken(access)
	_, err = store.LoadToken(access)
	assert.Equal(t, fault.SecretTokenNotSet, err, "token survived clear")
}

func TestCurrentStatus(t *testing.T) {

	access := openAccess(t)
	defer access.Finalise()
	node := newMemoryNode()
	s := store.New(node, access, keyA)

	status := s.CurrentStatus()
	assert.False(t, status.Initialised, "wrong Initialised")
	assert.Equal(t, 0, status.Records, "wrong Records")

	_, err := s.InitialiseSchema(testNamespace(t), testDefinition)
	assert.Nil(t, err, "wrong InitialiseSchema")
	_, err = s.Append(map[string]interface{}{"name": "a"})
	assert.Nil(t, err, "wrong Append")

	status = s.CurrentStatus()
	assert.True(t, status.Initialised, "wrong Initialised")
	assert.Equal(t, 1, status.Records, "wrong Records")
	assert.Equal(t, uint64(2), status.ChainHeight, "wrong ChainHeight")
	assert.Equal(t, "memory-node", status.NodeVersion, "wrong NodeVersion")
	assert.Equal(t, "", status.NodeError, "wrong NodeError")
}

// the substrate must never be contacted for locally invalid data
func TestValidationNeverReachesTransport(t *testing.T) {

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	access := openAccess(t)
	defer access.Finalise()

	caller := mocks.NewMockCaller(ctrl)
	caller.EXPECT().
		Call("Blob.Submit", gomock.Any()).
		Return(json.RawMessage(`{"height":7}`), nil)

	s := store.New(caller, access, keyA)

	_, err := s.InitialiseSchema(testNamespace(t), testDefinition)
	assert.Nil(t, err, "wrong InitialiseSchema")

	// no further Call expectations: any network traffic for these
	// invalid records fails the test
	_, err = s.Append(map[string]interface{}{"age": 5.0})
	_, ok := err.(*schema.ViolationError)
	assert.True(t, ok, "wrong error type: %v", err)

	_, err = s.Append(map[string]interface{}{"name": 77.0})
	_, ok = err.(*schema.ViolationError)
	assert.True(t, ok, "wrong error type: %v", err)

	_, err = s.Append(nil)
	assert.Equal(t, fault.RecordNotAnObject, err, "wrong error")
}

func TestSubmitErrorIsPropagated(t *testing.T) {

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	access := openAccess(t)
	defer access.Finalise()

	caller := mocks.NewMockCaller(ctrl)
	caller.EXPECT().
		Call("Blob.Submit", gomock.Any()).
		Return(nil, fault.ConnectionTimeout)

	s := store.New(caller, access, keyA)

	_, err := s.InitialiseSchema(testNamespace(t), testDefinition)
	assert.Equal(t, fault.ConnectionTimeout, err, "wrong error")
	assert.False(t, s.IsInitialised(), "initialised despite submit failure")
}
