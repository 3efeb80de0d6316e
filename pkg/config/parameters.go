package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParameterNotFound is returned when a parameter name is unknown.
	ErrParameterNotFound = errors.New("config: parameter not found")
	// ErrParameterType is returned when a parameter holds an unexpected type.
	ErrParameterType = errors.New("config: parameter has unexpected type")
)

// ParameterStore looks up application parameters by name.
type ParameterStore interface {
	Parameter(name string) (any, error)
}

// Parameters is a map backed ParameterStore. Names match a top-level key
// first and are then walked as dotted paths through nested maps, so both
// {"tinymce.config": {...}} and {"tinymce": {"config": {...}}} resolve
// "tinymce.config".
type Parameters map[string]any

// Parameter returns the value stored under name.
func (p Parameters) Parameter(name string) (any, error) {
	name = strings.TrimSpace(name)
	if value, ok := p[name]; ok {
		return value, nil
	}

	var current any = map[string]any(p)
	for _, segment := range strings.Split(name, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrParameterNotFound, name)
		}
		current, ok = node[segment]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrParameterNotFound, name)
		}
	}
	return current, nil
}

// Tree fetches a map valued parameter.
func Tree(store ParameterStore, name string) (map[string]any, error) {
	if store == nil {
		return nil, errors.New("config: parameter store is nil")
	}
	value, err := store.Parameter(name)
	if err != nil {
		return nil, err
	}
	switch typed := value.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return typed, nil
	case Parameters:
		return map[string]any(typed), nil
	default:
		return nil, fmt.Errorf("%w: %s is %T, want a map", ErrParameterType, name, value)
	}
}

// LoadParameters reads a parameters file (see Parse for supported formats).
func LoadParameters(ctx context.Context, path string) (Parameters, error) {
	tree, err := LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return Parameters(tree), nil
}
