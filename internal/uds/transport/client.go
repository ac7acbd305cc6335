// Package transport defines the boundary between this gateway and the
// actual UDS link (CAN, DoIP, or any other ISO 14229-2 transport). A
// real deployment plugs in a NativeClient that talks to a vendor UDS
// stack; this package never implements a transport itself.
package transport

import "context"

// NativeClient is the collaborator this gateway talks to for every UDS
// request. It mirrors the method set of a typical FFI-wrapped vendor
// UDS library: connect/disconnect once per ECU address, then issue one
// request/response round trip at a time.
//
// Implementations are not required to be safe for concurrent use by
// multiple goroutines against the same ECU address; internal/uds/session
// serialises access per address.
type NativeClient interface {
	// Connect establishes the underlying link to the ECU at address on
	// the configured interface. Connect must be idempotent: calling it
	// on an already-connected client is a no-op.
	Connect(ctx context.Context, iface string, address uint32) error

	// Disconnect tears down the link. Disconnect on an unconnected
	// client is a no-op.
	Disconnect(ctx context.Context, address uint32) error

	// SendReceive writes a single encoded UDS request and returns the
	// raw response frame (positive or negative). Implementations are
	// responsible for handling 0x78 (response pending) extensions
	// internally and returning the final frame.
	SendReceive(ctx context.Context, address uint32, request []byte) ([]byte, error)

	// Connected reports whether address currently has a live link.
	Connected(address uint32) bool
}
