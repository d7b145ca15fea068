package gallery

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// ErrInvalidTransition is returned when an image event does not apply to its current status.
var ErrInvalidTransition = errors.New("invalid image transition")

// ErrImageOutOfRange is returned for an image index outside the carousel.
var ErrImageOutOfRange = errors.New("image index out of range")

// ImageStatus is the load state of one carousel image.
type ImageStatus int

const (
	Loading ImageStatus = iota
	Loaded
	Failed
)

func (s ImageStatus) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "loading"
	}
}

// Slot is one carousel image and its load state.
type Slot struct {
	Path    string
	Status  ImageStatus
	Attempt int
}

// Src returns the image URL. Retries carry a cache-busting query parameter.
func (s Slot) Src() string {
	if s.Attempt == 0 {
		return s.Path
	}
	u, err := url.Parse(s.Path)
	if err != nil {
		return s.Path
	}
	q := u.Query()
	q.Set("retry", strconv.Itoa(s.Attempt))
	u.RawQuery = q.Encode()
	return u.String()
}

// Carousel is the modal view of a project's secondary images.
type Carousel struct {
	Project Project
	// Loop wraps Next and Prev around the ends.
	Loop  bool
	index int
	slots []Slot
}

// OpenCarousel starts a fresh viewing: index zero, every image loading.
// Nothing carries over from a previous opening of the same project.
func OpenCarousel(p Project) *Carousel {
	c := &Carousel{Project: p, slots: make([]Slot, len(p.Images))}
	for i, path := range p.Images {
		c.slots[i] = Slot{Path: path, Status: Loading}
	}
	return c
}

// Len returns the number of images.
func (c *Carousel) Len() int {
	return len(c.slots)
}

// Empty reports whether the project has no secondary images; the modal then
// shows no carousel.
func (c *Carousel) Empty() bool {
	return len(c.slots) == 0
}

// Index returns the visible image index.
func (c *Carousel) Index() int {
	return c.index
}

// Position renders the 1-based "current / total" counter.
func (c *Carousel) Position() string {
	if c.Empty() {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", c.index+1, len(c.slots))
}

// Seek moves to i, clamped to the carousel.
func (c *Carousel) Seek(i int) {
	if c.Empty() {
		return
	}
	c.index = min(max(i, 0), len(c.slots)-1)
}

// Next advances one image.
func (c *Carousel) Next() {
	c.step(1)
}

// Prev goes back one image.
func (c *Carousel) Prev() {
	c.step(-1)
}

func (c *Carousel) step(d int) {
	n := len(c.slots)
	if n == 0 {
		return
	}
	if c.Loop {
		c.index = ((c.index+d)%n + n) % n
		return
	}
	c.Seek(c.index + d)
}

// NextIndex returns the index Next would move to.
func (c *Carousel) NextIndex() int {
	cp := *c
	cp.Next()
	return cp.index
}

// PrevIndex returns the index Prev would move to.
func (c *Carousel) PrevIndex() int {
	cp := *c
	cp.Prev()
	return cp.index
}

// Slot returns image i.
func (c *Carousel) Slot(i int) (Slot, error) {
	if i < 0 || i >= len(c.slots) {
		return Slot{}, fmt.Errorf("%w: %d of %d", ErrImageOutOfRange, i, len(c.slots))
	}
	return c.slots[i], nil
}

// Slots returns a copy of every image slot.
func (c *Carousel) Slots() []Slot {
	out := make([]Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

// Current returns the visible image.
func (c *Carousel) Current() (Slot, error) {
	return c.Slot(c.index)
}

// MarkLoaded records a successful load of image i.
func (c *Carousel) MarkLoaded(i int) error {
	return c.transition(i, Loading, Loaded)
}

// MarkFailed records a failed load of image i. Other images are untouched.
func (c *Carousel) MarkFailed(i int) error {
	return c.transition(i, Loading, Failed)
}

// Retry re-enters Loading for a failed image and returns its cache-busted URL.
func (c *Carousel) Retry(i int) (string, error) {
	if err := c.transition(i, Failed, Loading); err != nil {
		return "", err
	}
	c.slots[i].Attempt++
	return c.slots[i].Src(), nil
}

// Restore rebuilds the state of image i from a client-reported attempt count,
// as carried in fragment requests.
func (c *Carousel) Restore(i int, status ImageStatus, attempt int) error {
	if i < 0 || i >= len(c.slots) {
		return fmt.Errorf("%w: %d of %d", ErrImageOutOfRange, i, len(c.slots))
	}
	c.slots[i].Status = status
	c.slots[i].Attempt = max(attempt, 0)
	return nil
}

func (c *Carousel) transition(i int, from, to ImageStatus) error {
	if i < 0 || i >= len(c.slots) {
		return fmt.Errorf("%w: %d of %d", ErrImageOutOfRange, i, len(c.slots))
	}
	if c.slots[i].Status != from {
		return fmt.Errorf("%w: image %d is %s, want %s", ErrInvalidTransition, i, c.slots[i].Status, from)
	}
	c.slots[i].Status = to
	return nil
}
