// Package session manages a single ECU's UDS conversation: connecting
// the NativeClient collaborator, granting security access, and
// enforcing that at most one request is ever in flight for that ECU
// at a time.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/marmos91/sovdgw/internal/logger"
	"github.com/marmos91/sovdgw/internal/telemetry"
	"github.com/marmos91/sovdgw/internal/uds"
	"github.com/marmos91/sovdgw/internal/uds/transport"
	"github.com/marmos91/sovdgw/pkg/metrics"
)

// Policy bounds how a Session retries and times out requests.
type Policy struct {
	Timeout    time.Duration
	MaxRetries int
}

// Session owns the conversation with one ECU address. It is safe for
// concurrent use: Send serialises callers with a mutex so at
// most one request is ever in flight for this ECU.
type Session struct {
	componentID string
	address     uint32
	iface       string
	client      transport.NativeClient
	policy      Policy
	metrics     *metrics.Registry

	mu       sync.Mutex
	granted  map[byte]bool
	lastUsed time.Time
}

// New creates a Session bound to a single ECU address. Connect must be
// called before Send. metricsReg may be nil to disable metrics
// collection.
func New(componentID string, address uint32, iface string, client transport.NativeClient, policy Policy, metricsReg *metrics.Registry) *Session {
	return &Session{
		componentID: componentID,
		address:     address,
		iface:       iface,
		client:      client,
		policy:      policy,
		metrics:     metricsReg,
		granted:     make(map[byte]bool),
	}
}

// Address returns the ECU address this session is bound to.
func (s *Session) Address() uint32 {
	return s.address
}

// ComponentID returns the SOVD component id this session backs.
func (s *Session) ComponentID() string {
	return s.componentID
}

// LastUsed returns the time of the most recent successful Send,
// used by the session pool to evict idle sessions.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Connect establishes the underlying link if it is not already up.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client.Connect(ctx, s.iface, s.address)
}

// Close tears down the underlying link.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.granted = make(map[byte]bool)
	return s.client.Disconnect(ctx, s.address)
}

// Send issues a single UDS request and returns its decoded response,
// retrying retryable negative response codes and transparently waiting
// out 0x78 (response pending) extensions, up to the session's policy.
//
// This method holds the session's lock for its whole duration: only
// one request is ever in flight for a given ECU, matching the
// single-threaded nature of most vendor UDS transport libraries.
func (s *Session) Send(ctx context.Context, req *uds.Request) (*uds.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := telemetry.StartUDSSpan(ctx, telemetry.SpanUDSRequest, s.componentID, byte(req.Service))
	defer span.End()

	start := time.Now()
	nrcRetried := false
	attempt := 0
	for {
		resp, err := s.sendOnceLocked(ctx, req)
		if err == nil {
			s.lastUsed = time.Now()
			s.metrics.RecordUDSRequest(byte(req.Service), "positive", time.Since(start))
			return resp, nil
		}

		udsErr, ok := err.(*uds.Error)
		if !ok {
			return nil, err
		}

		switch {
		case udsErr.IsTransportError():
			if attempt >= s.policy.MaxRetries {
				s.metrics.RecordUDSRequest(byte(req.Service), "transport_error", time.Since(start))
				return nil, err
			}
			attempt++
			s.metrics.RecordRetry("transport_error")
			backoff := min(50*time.Millisecond*(1<<uint(attempt-1)), time.Second)
			logger.WarnCtx(ctx, "retrying UDS request after transport error",
				logger.ComponentID(s.componentID), logger.Attempt(attempt), logger.Err(err))
			time.Sleep(backoff)
		case udsErr.IsRetryable() && !nrcRetried:
			nrcRetried = true
			s.metrics.RecordRetry(nrcRetryReason(udsErr.NRC))
			logger.WarnCtx(ctx, "retrying UDS request after retryable negative response",
				logger.ComponentID(s.componentID), logger.Err(err))
			time.Sleep(100 * time.Millisecond)
		default:
			s.metrics.RecordUDSRequest(byte(req.Service), "negative", time.Since(start))
			return nil, err
		}
	}
}

// nrcRetryReason labels a retryable negative response for the retry
// metric, matching the reasons NRC.IsRetryable() recognises.
func nrcRetryReason(nrc uds.NegativeResponseCode) string {
	if nrc == uds.NRCBusyRepeatRequest {
		return "busy_repeat_request"
	}
	return "no_response_from_subnet"
}

func (s *Session) sendOnceLocked(ctx context.Context, req *uds.Request) (*uds.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.policy.Timeout)
	defer cancel()

	frame, err := s.client.SendReceive(ctx, s.address, req.Encode())
	if err != nil {
		return nil, uds.NewTransportError(req.Service, s.address, err)
	}

	resp, err := uds.Decode(frame)
	if err != nil {
		return nil, uds.NewTransportError(req.Service, s.address, err)
	}

	if resp.Negative {
		if resp.NRC.IsPending() {
			return s.awaitPending(ctx, req)
		}
		return nil, uds.NewNegativeResponseError(req.Service, s.address, resp.NRC)
	}

	return resp, nil
}

// awaitPending re-issues SendReceive against the same request until a
// final (non-0x78) response arrives or the context deadline expires,
// per ISO 14229-1's response-pending mechanism.
func (s *Session) awaitPending(ctx context.Context, req *uds.Request) (*uds.Response, error) {
	encoded := req.Encode()
	for {
		select {
		case <-ctx.Done():
			return nil, uds.NewTransportError(req.Service, s.address, ctx.Err())
		default:
		}

		frame, err := s.client.SendReceive(ctx, s.address, encoded)
		if err != nil {
			return nil, uds.NewTransportError(req.Service, s.address, err)
		}

		resp, err := uds.Decode(frame)
		if err != nil {
			return nil, uds.NewTransportError(req.Service, s.address, err)
		}

		if resp.Negative {
			if resp.NRC.IsPending() {
				continue
			}
			return nil, uds.NewNegativeResponseError(req.Service, s.address, resp.NRC)
		}

		return resp, nil
	}
}

// EnsureSecurityAccess performs the seed/key handshake for level if it
// has not already been granted on this session. An empty seed response
// means the ECU already considers the level granted, per the
// handshake's documented edge case.
func (s *Session) EnsureSecurityAccess(ctx context.Context, level byte, computeKey func(seed []byte) []byte) error {
	s.mu.Lock()
	alreadyGranted := s.granted[level]
	s.mu.Unlock()
	if alreadyGranted {
		return nil
	}

	seedResp, err := s.Send(ctx, uds.SecuritySeedRequest(level))
	if err != nil {
		return err
	}

	if len(seedResp.Data) == 0 {
		s.markGranted(level)
		return nil
	}

	key := computeKey(seedResp.Data)
	if _, err := s.Send(ctx, uds.SecurityKeyRequest(level, key)); err != nil {
		return err
	}

	s.markGranted(level)
	return nil
}

func (s *Session) markGranted(level byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.granted[level] = true
}
