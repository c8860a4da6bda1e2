package shape

// Summary describes the extremes and the peak of a distribution.
type Summary struct {
	// Distinct is the number of different shapes.
	Distinct int `json:"distinct"`

	// Total is the number of images counted.
	Total int `json:"total"`

	// MostCommon is the shape with the highest count. Ties go to the shape
	// inserted first.
	MostCommon      Shape `json:"most_common"`
	MostCommonCount int   `json:"most_common_count"`

	MinWidth  int `json:"min_width"`
	MaxWidth  int `json:"max_width"`
	MinHeight int `json:"min_height"`
	MaxHeight int `json:"max_height"`

	// Smallest and Largest compare shapes by pixel area.
	Smallest Shape `json:"smallest"`
	Largest  Shape `json:"largest"`
}

// Summarize computes a Summary for d. An empty distribution yields the zero
// Summary.
func Summarize(d *Distribution) Summary {
	var sum Summary
	if d == nil || d.Len() == 0 {
		return sum
	}

	first := true
	d.Each(func(s Shape, count int) {
		sum.Distinct++
		sum.Total += count

		if first {
			sum.MostCommon, sum.MostCommonCount = s, count
			sum.MinWidth, sum.MaxWidth = s.Width, s.Width
			sum.MinHeight, sum.MaxHeight = s.Height, s.Height
			sum.Smallest, sum.Largest = s, s
			first = false
			return
		}

		if count > sum.MostCommonCount {
			sum.MostCommon, sum.MostCommonCount = s, count
		}
		sum.MinWidth = min(sum.MinWidth, s.Width)
		sum.MaxWidth = max(sum.MaxWidth, s.Width)
		sum.MinHeight = min(sum.MinHeight, s.Height)
		sum.MaxHeight = max(sum.MaxHeight, s.Height)
		if s.Area() < sum.Smallest.Area() {
			sum.Smallest = s
		}
		if s.Area() > sum.Largest.Area() {
			sum.Largest = s
		}
	})

	return sum
}
