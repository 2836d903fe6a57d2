package eco

import (
	"testing"
)

func TestThresholdShape(t *testing.T) {
	shape := Threshold[float64]()
	if shape.Shape != ShapeThreshold {
		t.Fatalf("unexpected shape label: %s", shape.Shape)
	}

	cases := []struct {
		trait float64
		env   float64
		want  float64
	}{
		{trait: 12, env: 10, want: 1},
		{trait: 10, env: 10, want: 1},
		{trait: 8, env: 10, want: 0},
		{trait: -3, env: 0, want: 0},
	}
	for _, c := range cases {
		got, err := shape.Fn(c.trait, c.env)
		if err != nil {
			t.Fatalf("unexpected error for trait=%v env=%v: %v", c.trait, c.env, err)
		}
		if got.Value() != c.want {
			t.Fatalf("threshold(%v,%v): got=%v want=%v", c.trait, c.env, got.Value(), c.want)
		}
	}
}

func TestInverseThresholdShape(t *testing.T) {
	shape := InverseThreshold[float64]()
	got, err := shape.Fn(8, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Value() != 1 {
		t.Fatalf("inverse_threshold(8,10): got=%v want=1", got.Value())
	}
	got, err = shape.Fn(10, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Value() != 0 {
		t.Fatalf("inverse_threshold(10,10): got=%v want=0", got.Value())
	}
}

func TestThresholdShapesAreExactComplements(t *testing.T) {
	threshold := Threshold[float64]()
	inverse := InverseThreshold[float64]()

	values := []float64{-10, -1, 0, 0.5, 1, 9.999, 10, 10.001, 100}
	for _, trait := range values {
		for _, env := range values {
			a, err := threshold.Fn(trait, env)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			b, err := inverse.Fn(trait, env)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.Value()+b.Value() != 1 {
				t.Fatalf("shapes not complementary at trait=%v env=%v: %v + %v", trait, env, a.Value(), b.Value())
			}
		}
	}
}

func TestThresholdOverOrderedStrings(t *testing.T) {
	shape := Threshold[string]()
	got, err := shape.Fn("b", "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Value() != 1 {
		t.Fatalf("threshold(b,a): got=%v want=1", got.Value())
	}
}

func TestBindFixesTraitValue(t *testing.T) {
	capability := Threshold[float64]().Bind(12)
	got, err := capability.Fitness(EcoFactor[float64]{Factor: Factor{Name: "temperature"}, Value: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Value() != 1 {
		t.Fatalf("bound threshold: got=%v want=1", got.Value())
	}

	shaped, ok := capability.(Shaped)
	if !ok {
		t.Fatal("bound capability should expose its shape label")
	}
	if shaped.Shape() != ShapeThreshold {
		t.Fatalf("unexpected shape label: %s", shaped.Shape())
	}
}

func TestBindWithoutFunctionFails(t *testing.T) {
	capability := ShapedFunc[float64, float64]{Shape: "empty"}.Bind(1)
	if _, err := capability.Fitness(EcoFactor[float64]{}); err == nil {
		t.Fatal("expected error for unset shape function")
	}
}
