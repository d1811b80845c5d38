package services

import (
	"context"
	"log"
	"net"
	"sync"
	"time"
)

// NetworkToggler is the remote store's local network switch. The
// monitor flips it so the store stops burning effort on connection
// attempts while the device is offline.
type NetworkToggler interface {
	SetNetworkEnabled(ctx context.Context, enabled bool) error
}

// NetworkService is the process-wide source of truth for "can we reach
// the network". It only caches the last delivered signal; IsOnline
// never touches the network itself. The composition root builds one
// instance and hands it to whoever needs it.
type NetworkService struct {
	mu        sync.RWMutex
	online    bool
	nextID    int
	listeners map[int]func(online bool)
	toggler   NetworkToggler
}

func NewNetworkService(toggler NetworkToggler) *NetworkService {
	return &NetworkService{
		// optimistic until the first real signal arrives
		online:    true,
		listeners: make(map[int]func(bool)),
		toggler:   toggler,
	}
}

func (s *NetworkService) IsOnline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}

// Subscribe registers a listener invoked on every state flip.
// Listeners run synchronously on the signal goroutine and must not
// block; anything slow belongs in a goroutine of their own.
func (s *NetworkService) Subscribe(fn func(online bool)) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return id
}

func (s *NetworkService) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
}

// HandleConnectivityChange ingests a reachability signal. Repeated
// identical signals are dropped; only an actual flip updates state,
// toggles the store network layer and notifies listeners.
func (s *NetworkService) HandleConnectivityChange(ctx context.Context, online bool) {
	s.mu.Lock()
	if s.online == online {
		s.mu.Unlock()
		return
	}
	s.online = online
	fns := make([]func(bool), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	if s.toggler != nil {
		// best effort; a failed toggle must not stop the notification round
		if err := s.toggler.SetNetworkEnabled(ctx, online); err != nil {
			log.Printf("network: store network toggle failed: %v", err)
		}
	}

	for _, fn := range fns {
		notifyListener(fn, online)
	}
}

// notifyListener isolates one listener so a panicking listener cannot
// starve the rest of the round.
func notifyListener(fn func(bool), online bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("network: listener panic: %v", r)
		}
	}()
	fn(online)
}

// Run polls the probe until ctx is canceled, feeding results into
// HandleConnectivityChange. It stands in for a platform connectivity
// signal on hosts that do not push one.
func (s *NetworkService) Run(ctx context.Context, probe func(ctx context.Context) bool, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.HandleConnectivityChange(ctx, probe(ctx))
		}
	}
}

// DialProbe reports reachability by opening a TCP connection to addr.
func DialProbe(addr string) func(ctx context.Context) bool {
	return func(ctx context.Context) bool {
		d := net.Dialer{Timeout: 5 * time.Second}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}
}
