package eco

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrShapeExists   = errors.New("shape already registered")
	ErrShapeNotFound = errors.New("shape not found")
)

// The scalar registry resolves shape names from configuration into
// float64-over-float64 shaped functions, the value type the platform and
// CLI evaluate with.
var shapeRegistry = struct {
	mu sync.RWMutex
	m  map[string]ShapedFunc[float64, float64]
}{
	m: make(map[string]ShapedFunc[float64, float64]),
}

func RegisterScalarShape(shape ShapedFunc[float64, float64]) error {
	if shape.Shape == "" {
		return errors.New("shape name is required")
	}
	if shape.Fn == nil {
		return errors.New("shape function is required")
	}

	shapeRegistry.mu.Lock()
	defer shapeRegistry.mu.Unlock()

	if _, exists := shapeRegistry.m[shape.Shape]; exists {
		return fmt.Errorf("%w: %s", ErrShapeExists, shape.Shape)
	}
	shapeRegistry.m[shape.Shape] = shape
	return nil
}

func ResolveScalarShape(name string) (ShapedFunc[float64, float64], error) {
	shapeRegistry.mu.RLock()
	defer shapeRegistry.mu.RUnlock()

	shape, ok := shapeRegistry.m[name]
	if !ok {
		return ShapedFunc[float64, float64]{}, fmt.Errorf("%w: %s", ErrShapeNotFound, name)
	}
	return shape, nil
}

func ListScalarShapes() []string {
	shapeRegistry.mu.RLock()
	defer shapeRegistry.mu.RUnlock()

	names := make([]string, 0, len(shapeRegistry.m))
	for name := range shapeRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	for _, shape := range []ShapedFunc[float64, float64]{
		Threshold[float64](),
		InverseThreshold[float64](),
	} {
		if err := RegisterScalarShape(shape); err != nil {
			panic(err)
		}
	}
}
