package dictionary

import (
	"cmp"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Registry holds the dictionary nodes of a process, keyed by (culture, scope).
// Nodes are registered on first demand and live as long as the registry.
// Concurrent registrations of one key share a single build; different keys
// never wait on each other.
type Registry struct {
	mu     sync.RWMutex
	nodes  map[nodeKey]*Node
	failed map[nodeKey]error
	group  singleflight.Group
}

func NewRegistry() *Registry {
	return &Registry{
		nodes:  make(map[nodeKey]*Node),
		failed: make(map[nodeKey]error),
	}
}

// Lookup returns the registered node for (culture, scope).
func (r *Registry) Lookup(culture, scope string) (*Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nodes[nodeKey{culture: CanonicalCulture(culture), scope: scope}]
	return n, ok
}

// Register returns the node for (culture, scope), calling build when none is
// registered yet. A build error is remembered and returned for later calls
// of the same key, so a broken document is read once.
func (r *Registry) Register(culture, scope string, build func() (*Node, error)) (*Node, error) {
	key := nodeKey{culture: CanonicalCulture(culture), scope: scope}

	r.mu.RLock()
	n, ok := r.nodes[key]
	err := r.failed[key]
	r.mu.RUnlock()
	if ok {
		return n, nil
	}
	if err != nil {
		return nil, err
	}

	v, err, _ := r.group.Do(key.scope+"\x00"+key.culture, func() (any, error) {
		r.mu.RLock()
		existing, ok := r.nodes[key]
		r.mu.RUnlock()
		if ok {
			return existing, nil
		}

		n, err := build()

		r.mu.Lock()
		defer r.mu.Unlock()
		if err != nil {
			r.failed[key] = err
			return nil, err
		}
		r.nodes[key] = n
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Node), nil
}

// Nodes returns the registered nodes ordered by scope, then culture.
func (r *Registry) Nodes() []*Node {
	r.mu.RLock()
	out := make([]*Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		out = append(out, n)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Node) int {
		if c := cmp.Compare(a.scope, b.scope); c != 0 {
			return c
		}
		return cmp.Compare(a.culture, b.culture)
	})
	return out
}

// Children returns the registered nodes whose parent is n.
func (r *Registry) Children(n *Node) []*Node {
	var out []*Node
	for _, candidate := range r.Nodes() {
		if candidate.Parent() == n {
			out = append(out, candidate)
		}
	}
	return out
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}
