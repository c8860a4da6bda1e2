package shape

import (
	"errors"
	"fmt"
	"testing"
)

func TestShape_String(t *testing.T) {
	tests := []struct {
		shape Shape
		want  string
	}{
		{Shape{100, 200}, "(100, 200)"},
		{Shape{1920, 1040}, "(1920, 1040)"},
		{Shape{1, 1}, "(1, 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.shape.String(); got != tt.want {
				t.Errorf("String: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShape_Valid(t *testing.T) {
	if !(Shape{1, 1}).Valid() {
		t.Error("Shape{1,1} should be valid")
	}
	if (Shape{0, 10}).Valid() {
		t.Error("Shape{0,10} should not be valid")
	}
	if (Shape{10, -1}).Valid() {
		t.Error("Shape{10,-1} should not be valid")
	}
}

func TestAggregate(t *testing.T) {
	shapes := []Shape{
		{100, 200},
		{200, 100},
		{800, 600},
		{600, 800},
		{1920, 1040},
		{800, 600},
		{100, 200},
	}

	d := Aggregate(shapes)

	want := map[Shape]int{
		{100, 200}:   2,
		{200, 100}:   1,
		{800, 600}:   2,
		{600, 800}:   1,
		{1920, 1040}: 1,
	}
	if d.Len() != len(want) {
		t.Fatalf("Len: got %d, want %d", d.Len(), len(want))
	}
	for s, c := range want {
		if got := d.Count(s); got != c {
			t.Errorf("Count%s: got %d, want %d", s, got, c)
		}
	}
	if d.Total() != len(shapes) {
		t.Errorf("Total: got %d, want %d", d.Total(), len(shapes))
	}
}

func TestAggregate_Empty(t *testing.T) {
	d := Aggregate(nil)
	if d.Len() != 0 {
		t.Errorf("Len: got %d, want 0", d.Len())
	}
	if d.Total() != 0 {
		t.Errorf("Total: got %d, want 0", d.Total())
	}
}

func TestDistribution_InsertionOrder(t *testing.T) {
	d := Aggregate([]Shape{{3, 3}, {1, 1}, {3, 3}, {2, 2}, {1, 1}})

	want := []Shape{{3, 3}, {1, 1}, {2, 2}}
	got := d.Shapes()
	if len(got) != len(want) {
		t.Fatalf("Shapes: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Shapes[%d]: got %v, want %v", i, got[i], want[i])
		}
	}

	entries := d.Entries()
	if entries[0].Count != 2 || entries[2].Count != 1 {
		t.Errorf("Entries: got %v", entries)
	}
}

func TestDistribution_SetKeepsPosition(t *testing.T) {
	d := NewDistribution()
	d.Set(Shape{1, 2}, 4)
	d.Set(Shape{3, 4}, 1)
	d.Set(Shape{1, 2}, 7)

	if d.Count(Shape{1, 2}) != 7 {
		t.Errorf("Count: got %d, want 7", d.Count(Shape{1, 2}))
	}
	if d.Shapes()[0] != (Shape{1, 2}) {
		t.Errorf("replaced shape moved: %v", d.Shapes())
	}
	if d.Len() != 2 {
		t.Errorf("Len: got %d, want 2", d.Len())
	}
}

func TestDistribution_Equal(t *testing.T) {
	a := Aggregate([]Shape{{1, 2}, {3, 4}, {1, 2}})
	b := NewDistribution()
	b.Set(Shape{3, 4}, 1)
	b.Set(Shape{1, 2}, 2)

	if !a.Equal(b) {
		t.Error("distributions with the same counts in different order should be equal")
	}

	b.Add(Shape{3, 4})
	if a.Equal(b) {
		t.Error("distributions with different counts should not be equal")
	}

	var nilDist *Distribution
	if a.Equal(nilDist) {
		t.Error("non-nil distribution should not equal nil")
	}
}

func TestDistribution_MapIsCopy(t *testing.T) {
	d := Aggregate([]Shape{{5, 5}})
	m := d.Map()
	m[Shape{5, 5}] = 99
	if d.Count(Shape{5, 5}) != 1 {
		t.Error("modifying Map() result changed the distribution")
	}
}

func TestErrorKinds_Distinct(t *testing.T) {
	kinds := []error{
		ErrConfiguration,
		ErrInputNotFound,
		ErrNoImagesFound,
		ErrCorruptTable,
		ErrOutputAlreadyExists,
	}

	for i, a := range kinds {
		wrapped := fmt.Errorf("path %q: %w", "/tmp/x", a)
		for j, b := range kinds {
			if got := errors.Is(wrapped, b); got != (i == j) {
				t.Errorf("errors.Is(%v, %v) = %v", wrapped, b, got)
			}
		}
	}
}
