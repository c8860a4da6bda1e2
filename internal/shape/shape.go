package shape

import "fmt"

// Shape is the pixel size of an image.
//
// Shape is comparable and is used directly as a map key.
type Shape struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// String returns the tuple display form used by the table format,
// e.g. "(800, 600)".
func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.Width, s.Height)
}

// Area returns Width*Height.
func (s Shape) Area() int {
	return s.Width * s.Height
}

// Valid reports whether both dimensions are positive.
func (s Shape) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Entry is one Shape with its count, as yielded by Distribution.Entries.
type Entry struct {
	Shape Shape `json:"shape"`
	Count int   `json:"count"`
}

// Distribution maps shapes to occurrence counts.
//
// The zero value is not usable; create one with NewDistribution or
// Aggregate.
type Distribution struct {
	counts map[Shape]int
	order  []Shape
}

// NewDistribution creates an empty distribution.
func NewDistribution() *Distribution {
	return &Distribution{
		counts: make(map[Shape]int),
	}
}

// Aggregate folds a sequence of shapes into a distribution, counting
// repeats. An empty input yields an empty distribution.
func Aggregate(shapes []Shape) *Distribution {
	d := NewDistribution()
	for _, s := range shapes {
		d.Add(s)
	}
	return d
}

// Add increments the count of s by one.
func (d *Distribution) Add(s Shape) {
	if _, ok := d.counts[s]; !ok {
		d.order = append(d.order, s)
	}
	d.counts[s]++
}

// Set stores count for s, replacing any previous count. A shape seen for the
// first time is appended to the iteration order; a replaced shape keeps its
// original position.
func (d *Distribution) Set(s Shape, count int) {
	if _, ok := d.counts[s]; !ok {
		d.order = append(d.order, s)
	}
	d.counts[s] = count
}

// Count returns the count for s, or 0 if s is absent.
func (d *Distribution) Count(s Shape) int {
	return d.counts[s]
}

// Len returns the number of distinct shapes.
func (d *Distribution) Len() int {
	return len(d.order)
}

// Total returns the sum of all counts.
func (d *Distribution) Total() int {
	total := 0
	for _, c := range d.counts {
		total += c
	}
	return total
}

// Shapes returns the distinct shapes in iteration order.
func (d *Distribution) Shapes() []Shape {
	out := make([]Shape, len(d.order))
	copy(out, d.order)
	return out
}

// Entries returns every shape with its count in iteration order.
func (d *Distribution) Entries() []Entry {
	out := make([]Entry, 0, len(d.order))
	for _, s := range d.order {
		out = append(out, Entry{Shape: s, Count: d.counts[s]})
	}
	return out
}

// Each calls fn for every entry in iteration order.
func (d *Distribution) Each(fn func(s Shape, count int)) {
	for _, s := range d.order {
		fn(s, d.counts[s])
	}
}

// Map returns a copy of the counts as a plain map.
func (d *Distribution) Map() map[Shape]int {
	out := make(map[Shape]int, len(d.counts))
	for s, c := range d.counts {
		out[s] = c
	}
	return out
}

// Equal reports whether d and other hold the same shapes with the same
// counts. Iteration order is ignored.
func (d *Distribution) Equal(other *Distribution) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.counts) != len(other.counts) {
		return false
	}
	for s, c := range d.counts {
		if oc, ok := other.counts[s]; !ok || oc != c {
			return false
		}
	}
	return true
}
