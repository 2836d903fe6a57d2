package fitness

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrBlenderExists   = errors.New("blender already registered")
	ErrBlenderNotFound = errors.New("blender not found")
)

var blenderRegistry = struct {
	mu sync.RWMutex
	m  map[string]Blender
}{
	m: make(map[string]Blender),
}

func RegisterBlender(b Blender) error {
	if b == nil {
		return errors.New("blender is required")
	}
	name := b.Name()
	if name == "" {
		return errors.New("blender name is required")
	}

	blenderRegistry.mu.Lock()
	defer blenderRegistry.mu.Unlock()

	if _, exists := blenderRegistry.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrBlenderExists, name)
	}
	blenderRegistry.m[name] = b
	return nil
}

func ResolveBlender(name string) (Blender, error) {
	blenderRegistry.mu.RLock()
	defer blenderRegistry.mu.RUnlock()

	b, ok := blenderRegistry.m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBlenderNotFound, name)
	}
	return b, nil
}

func ListBlenders() []string {
	blenderRegistry.mu.RLock()
	defer blenderRegistry.mu.RUnlock()

	names := make([]string, 0, len(blenderRegistry.m))
	for name := range blenderRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	for _, b := range []Blender{
		MultiplicativeBlender{},
		MinimumBlender{},
		WeightedMeanBlender{},
	} {
		if err := RegisterBlender(b); err != nil {
			panic(err)
		}
	}
}
