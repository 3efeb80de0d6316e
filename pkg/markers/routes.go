package markers

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownRoute is returned when a route name is not registered.
var ErrUnknownRoute = errors.New("markers: unknown route")

// RouteTable is a RouteResolver backed by a name to path table.
type RouteTable struct {
	mu     sync.RWMutex
	prefix string
	routes map[string]string
}

// NewRouteTable builds a table from routes. prefix is prepended to every
// generated URL (for example "https://example.com" for absolute URLs).
func NewRouteTable(prefix string, routes map[string]string) *RouteTable {
	table := &RouteTable{
		prefix: strings.TrimRight(strings.TrimSpace(prefix), "/"),
		routes: make(map[string]string, len(routes)),
	}
	for name, path := range routes {
		table.routes[strings.TrimSpace(name)] = path
	}
	return table
}

// RouteTableFromTree builds a table from a decoded configuration map whose
// values are route paths.
func RouteTableFromTree(prefix string, tree map[string]any) (*RouteTable, error) {
	routes := make(map[string]string, len(tree))
	for name, value := range tree {
		path, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("markers: route %q must be a string, got %T", name, value)
		}
		routes[name] = path
	}
	return NewRouteTable(prefix, routes), nil
}

// Register adds a route. Duplicate names return an error.
func (t *RouteTable) Register(name, path string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("markers: route name is required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.routes[name]; exists {
		return fmt.Errorf("markers: route %q already registered", name)
	}
	t.routes[name] = path
	return nil
}

// RouteURL implements RouteResolver.
func (t *RouteTable) RouteURL(name string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	path, ok := t.routes[strings.TrimSpace(name)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRoute, name)
	}
	if t.prefix == "" || isAbsoluteURL(path) {
		return path, nil
	}
	return t.prefix + "/" + strings.TrimLeft(path, "/"), nil
}

// Names returns the registered route names, sorted.
func (t *RouteTable) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.routes))
	for name := range t.routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
