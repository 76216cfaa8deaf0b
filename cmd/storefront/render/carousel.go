package render

// Carousel tracks which of a product's images is showing. Navigation cycles
// modulo the image count; a single image gets no navigation at all.
type Carousel struct {
	Count int
	Index int
}

func NewCarousel(count int) *Carousel {
	if count < 1 {
		count = 1
	}
	return &Carousel{Count: count}
}

func (c *Carousel) HasNav() bool {
	return c.Count > 1
}

func (c *Carousel) Next() {
	if c.HasNav() {
		c.Index = (c.Index + 1) % c.Count
	}
}

func (c *Carousel) Prev() {
	if c.HasNav() {
		c.Index = (c.Index - 1 + c.Count) % c.Count
	}
}

// Jump is dot navigation; out-of-range targets are ignored.
func (c *Carousel) Jump(i int) {
	if c.HasNav() && i >= 0 && i < c.Count {
		c.Index = i
	}
}

// Dots renders the position strip, empty when there is nothing to navigate.
func (c *Carousel) Dots() string {
	if !c.HasNav() {
		return ""
	}
	dots := make([]rune, 0, c.Count)
	for i := 0; i < c.Count; i++ {
		if i == c.Index {
			dots = append(dots, '●')
		} else {
			dots = append(dots, '○')
		}
	}
	return string(dots)
}
