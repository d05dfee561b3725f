package service

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ErrCircular marks a dependency cycle between registered services
var ErrCircular = errors.New("circular service dependency")

// Hub owns the registered services and drives them through Init, Start and
// Stop in dependency order
type Hub struct {
	mu      sync.RWMutex
	byName  map[string]Service
	order   []string // dependencies first; nil until InitAll
	running []string // started so far, in start order
	logger  *slog.Logger
}

// NewHub creates an empty hub; a nil logger discards
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Hub{byName: map[string]Service{}, logger: logger}
}

// Register adds svc under its Name, rejecting duplicates
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, dup := h.byName[name]; dup {
		return fmt.Errorf("service %q registered twice", name)
	}
	h.byName[name] = svc
	h.order = nil
	return nil
}

func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	svc, ok := h.byName[name]
	return svc, ok
}

// MustGet returns the named service as T and panics when it is missing or of
// another type
func MustGet[T any](h *Hub, name string) T {
	svc, ok := h.Get(name)
	if !ok {
		panic(fmt.Sprintf("service %q not registered", name))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("service %q is %T", name, svc))
	}
	return typed
}

// Names lists registered services alphabetically
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Sorted(maps.Keys(h.byName))
}

// InitAll orders the services and calls Init on each with args[name]. A failure
// stops the services already initialized, newest first.
func (h *Hub) InitAll(args map[string][]any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.order == nil {
		order, err := h.resolve()
		if err != nil {
			return err
		}
		h.order = order
	}

	for i, name := range h.order {
		if err := h.byName[name].Init(args[name]...); err != nil {
			h.stopReverse(h.order[:i])
			return fmt.Errorf("init %s: %w", name, err)
		}
		h.logger.Debug("service initialized", "service", name)
	}
	return nil
}

// StartAll starts services in dependency order, unwinding on the first failure
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.running = h.running[:0]
	for _, name := range h.order {
		if err := h.byName[name].Start(); err != nil {
			h.stopReverse(h.running)
			h.running = nil
			return fmt.Errorf("start %s: %w", name, err)
		}
		h.running = append(h.running, name)
		h.logger.Debug("service started", "service", name)
	}
	return nil
}

// StopAll stops every started service, dependents first. Stop errors are logged
// and do not interrupt the sweep; calling it again is a no-op.
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopReverse(h.running)
	h.running = nil
}

func (h *Hub) stopReverse(names []string) {
	for _, name := range slices.Backward(names) {
		if err := h.byName[name].Stop(); err != nil {
			h.logger.Warn("service stop failed", "service", name, "error", err)
		}
	}
}

// resolve orders services depth first so every dependency precedes its
// dependents. Names and dependencies are visited alphabetically, which keeps the
// order stable between runs.
func (h *Hub) resolve() ([]string, error) {
	const (
		unseen = iota
		visiting
		done
	)
	mark := make(map[string]int, len(h.byName))
	order := make([]string, 0, len(h.byName))
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		switch mark[name] {
		case done:
			return nil
		case visiting:
			at := slices.Index(path, name)
			cycle := append(slices.Clone(path[at:]), name)
			return fmt.Errorf("%w: %s", ErrCircular, strings.Join(cycle, " -> "))
		}
		mark[name] = visiting
		path = append(path, name)

		deps := slices.Clone(h.byName[name].Dependencies())
		slices.Sort(deps)
		for _, dep := range deps {
			if _, ok := h.byName[dep]; !ok {
				return fmt.Errorf("service %s requires unregistered %s", name, dep)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		mark[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range slices.Sorted(maps.Keys(h.byName)) {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}
