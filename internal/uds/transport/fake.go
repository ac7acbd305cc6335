package transport

import (
	"context"
	"fmt"
	"sync"
)

// Script is a single scripted response for FakeClient: the bytes to
// return, or an error to return instead.
type Script struct {
	Response []byte
	Err      error
}

// FakeClient is an in-memory, scriptable NativeClient used by the
// transport/session/pool test suites to exercise retry, pooling, and
// security-access logic without real hardware.
type FakeClient struct {
	mu        sync.Mutex
	connected map[uint32]bool
	scripts   map[uint32][]Script
	calls     []CallRecord
}

// CallRecord captures one SendReceive invocation for assertions.
type CallRecord struct {
	Address uint32
	Request []byte
}

// NewFakeClient returns an empty FakeClient.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		connected: make(map[uint32]bool),
		scripts:   make(map[uint32][]Script),
	}
}

// ScriptResponse queues a response to be returned by the next
// SendReceive call against address, in FIFO order.
func (f *FakeClient) ScriptResponse(address uint32, response []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts[address] = append(f.scripts[address], Script{Response: response})
}

// ScriptError queues an error to be returned by the next SendReceive
// call against address.
func (f *FakeClient) ScriptError(address uint32, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts[address] = append(f.scripts[address], Script{Err: err})
}

// Calls returns a copy of every SendReceive call recorded so far.
func (f *FakeClient) Calls() []CallRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]CallRecord, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeClient) Connect(_ context.Context, _ string, address uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected[address] = true
	return nil
}

func (f *FakeClient) Disconnect(_ context.Context, address uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.connected, address)
	return nil
}

func (f *FakeClient) Connected(address uint32) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected[address]
}

func (f *FakeClient) SendReceive(_ context.Context, address uint32, request []byte) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, CallRecord{Address: address, Request: request})

	queue := f.scripts[address]
	if len(queue) == 0 {
		return nil, fmt.Errorf("fake client: no scripted response for address 0x%X", address)
	}

	next := queue[0]
	f.scripts[address] = queue[1:]

	if next.Err != nil {
		return nil, next.Err
	}
	return next.Response, nil
}
