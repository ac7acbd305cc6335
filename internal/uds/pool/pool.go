// Package pool keeps a bounded set of warm internal/uds/session
// sessions, one per ECU address, evicting the least-recently-used
// session when a new ECU needs a slot and the pool is full.
package pool

import (
	"context"
	"sync"

	"github.com/marmos91/sovdgw/internal/logger"
	"github.com/marmos91/sovdgw/internal/telemetry"
	"github.com/marmos91/sovdgw/internal/uds/session"
	"github.com/marmos91/sovdgw/internal/uds/transport"
	"github.com/marmos91/sovdgw/pkg/metrics"
)

// Pool owns a bounded set of live ECU sessions.
type Pool struct {
	mu       sync.Mutex
	sessions map[uint32]*session.Session
	maxSize  int

	client  transport.NativeClient
	iface   string
	policy  session.Policy
	metrics *metrics.Registry
}

// New creates an empty Pool bound to a single NativeClient collaborator.
// metricsReg may be nil to disable metrics collection.
func New(client transport.NativeClient, iface string, policy session.Policy, maxSize int, metricsReg *metrics.Registry) *Pool {
	return &Pool{
		sessions: make(map[uint32]*session.Session),
		maxSize:  maxSize,
		client:   client,
		iface:    iface,
		policy:   policy,
		metrics:  metricsReg,
	}
}

// Acquire returns a connected session for the given component/address,
// creating and connecting one if none exists, evicting the
// least-recently-used session first if the pool is already full.
func (p *Pool) Acquire(ctx context.Context, componentID string, address uint32) (*session.Session, error) {
	ctx, span := telemetry.StartPoolSpan(ctx, telemetry.SpanPoolAcquire, componentID)
	defer span.End()

	p.mu.Lock()
	if s, ok := p.sessions[address]; ok {
		p.mu.Unlock()
		return s, nil
	}

	if p.maxSize > 0 && len(p.sessions) >= p.maxSize {
		p.evictLRULocked(ctx)
	}

	s := session.New(componentID, address, p.iface, p.client, p.policy, p.metrics)
	p.sessions[address] = s
	size := len(p.sessions)
	p.mu.Unlock()

	p.metrics.SetPoolSize(size)
	telemetry.SetAttributes(ctx, telemetry.PoolSize(size))
	logger.InfoCtx(ctx, "session pool acquired new ECU session",
		logger.ComponentID(componentID), logger.ECUAddress(address), logger.PoolSize(size))

	if err := s.Connect(ctx); err != nil {
		p.mu.Lock()
		delete(p.sessions, address)
		size := len(p.sessions)
		p.mu.Unlock()
		p.metrics.SetPoolSize(size)
		return nil, err
	}

	return s, nil
}

// evictLRULocked removes the session least recently used, disconnecting
// it. Callers must hold p.mu.
func (p *Pool) evictLRULocked(ctx context.Context) {
	var oldestAddr uint32
	var oldest *session.Session

	for addr, s := range p.sessions {
		if oldest == nil || s.LastUsed().Before(oldest.LastUsed()) {
			oldestAddr = addr
			oldest = s
		}
	}

	if oldest == nil {
		return
	}

	_, span := telemetry.StartPoolSpan(ctx, telemetry.SpanPoolEvict, oldest.ComponentID())
	defer span.End()

	delete(p.sessions, oldestAddr)
	p.metrics.SetPoolSize(len(p.sessions))
	p.metrics.RecordPoolEviction()
	logger.InfoCtx(ctx, "session pool evicted idle ECU session",
		logger.ComponentID(oldest.ComponentID()), logger.ECUAddress(oldestAddr))

	go func() {
		_ = oldest.Close(context.Background())
	}()
}

// Evict removes and disconnects the pooled session for componentID, if
// one exists, reporting whether a session was found. Unlike
// evictLRULocked (an internal capacity-pressure reflex), this is the
// caller-driven single-component eviction, e.g. for a component
// removed from configuration or forced offline.
func (p *Pool) Evict(ctx context.Context, componentID string) bool {
	p.mu.Lock()
	var addr uint32
	var s *session.Session
	for a, candidate := range p.sessions {
		if candidate.ComponentID() == componentID {
			addr, s = a, candidate
			break
		}
	}
	if s == nil {
		p.mu.Unlock()
		return false
	}
	delete(p.sessions, addr)
	size := len(p.sessions)
	p.mu.Unlock()

	p.metrics.SetPoolSize(size)
	logger.InfoCtx(ctx, "session pool evicted ECU session",
		logger.ComponentID(componentID), logger.ECUAddress(addr))

	_ = s.Close(ctx)
	return true
}

// Size returns the number of live sessions currently pooled.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sessions)
}

// Connected reports whether address has a live pooled session.
func (p *Pool) Connected(address uint32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.sessions[address]
	return ok
}

// CloseAll disconnects every pooled session. Intended for graceful
// shutdown.
func (p *Pool) CloseAll(ctx context.Context) {
	p.mu.Lock()
	sessions := make([]*session.Session, 0, len(p.sessions))
	for _, s := range p.sessions {
		sessions = append(sessions, s)
	}
	p.sessions = make(map[uint32]*session.Session)
	p.mu.Unlock()

	for _, s := range sessions {
		_ = s.Close(ctx)
	}
}
