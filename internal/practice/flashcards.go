package practice

// CardCursor steps through the flashcards of one practice round. It clamps
// at both ends: stepping past the last card stays on the last card.
type CardCursor struct {
	index  int
	length int
}

// NewCardCursor positions a cursor on the first of length cards.
func NewCardCursor(length int) *CardCursor {
	return &CardCursor{length: length}
}

// Index returns the current card position.
func (c *CardCursor) Index() int {
	return c.index
}

// AtStart reports whether the cursor is on the first card.
func (c *CardCursor) AtStart() bool {
	return c.index == 0
}

// AtEnd reports whether the cursor is on the last card.
func (c *CardCursor) AtEnd() bool {
	return c.index >= c.length-1
}

// Next advances to the following card, staying in place on the last one.
func (c *CardCursor) Next() {
	if c.index < c.length-1 {
		c.index++
	}
}

// Prev steps back to the previous card, staying in place on the first one.
func (c *CardCursor) Prev() {
	if c.index > 0 {
		c.index--
	}
}

// Carousel cycles through a fixed set of positions, wrapping at both ends.
// Used for the category selector, where stepping past the last category
// returns to the first.
type Carousel struct {
	index  int
	length int
}

// NewCarousel creates a carousel over length positions.
func NewCarousel(length int) *Carousel {
	return &Carousel{length: length}
}

// Index returns the current position.
func (c *Carousel) Index() int {
	return c.index
}

// Next moves forward one position, wrapping to the first after the last.
func (c *Carousel) Next() {
	if c.length > 0 {
		c.index = (c.index + 1) % c.length
	}
}

// Prev moves back one position, wrapping to the last before the first.
func (c *Carousel) Prev() {
	if c.length > 0 {
		c.index = (c.index + c.length - 1) % c.length
	}
}
