package main

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/gallery"
	"github.com/Zachkp/portfolio/internal/logging"
)

// tagButton is one entry of the filter bar.
type tagButton struct {
	Label  string
	Tag    string
	Active bool
}

// cardView is one project card in the grid.
type cardView struct {
	gallery.Project
	Index  int
	Action gallery.ClickAction
	Visit  string
}

// galleryView is the filter bar plus grid.
type galleryView struct {
	Tags         []tagButton
	Cards        []cardView
	ActiveTag    string
	EmptyMessage string
}

func (s *site) galleryView(tag string) galleryView {
	var sel gallery.Selection
	if tag != gallery.All {
		sel.Select(tag)
	}

	v := galleryView{ActiveTag: sel.Tag(), EmptyMessage: emptyGalleryMessage}
	v.Tags = append(v.Tags, tagButton{Label: "Todos", Tag: gallery.All, Active: sel.IsActive(gallery.All)})
	for _, t := range s.catalog.Tags() {
		v.Tags = append(v.Tags, tagButton{Label: t, Tag: t, Active: sel.IsActive(t)})
	}
	for i, p := range s.catalog.Filter(sel.Tag()) {
		visit, _ := p.VisitLink()
		v.Cards = append(v.Cards, cardView{Project: p, Index: i, Action: p.ClickAction(), Visit: visit})
	}
	return v
}

// handleProjects serves the filtered grid. HTMX requests get the fragment,
// plain requests are sent to the full page with the same selection.
func (s *site) handleProjects(c *gin.Context) {
	tag := c.Query("tag")
	if tag != gallery.All {
		s.record(c, analytics.FilterTag, tag)
	}
	if !isHTMX(c) {
		target := "/#projects"
		if tag != gallery.All {
			target = "/?tag=" + url.QueryEscape(tag) + "#projects"
		}
		c.Redirect(http.StatusSeeOther, target)
		return
	}
	c.Header("HX-Push-Url", pushURL(tag))
	c.HTML(http.StatusOK, "gallery.html", s.galleryView(tag))
}

func pushURL(tag string) string {
	if tag == gallery.All {
		return "/"
	}
	return "/?tag=" + url.QueryEscape(tag)
}

// modalView renders the detail overlay for one opening of a project. Every
// image slot is rendered so per-image state survives moving between them;
// only the current one is visible.
type modalView struct {
	Project  gallery.Project
	Carousel *gallery.Carousel
	Slots    []slotView
	Visit    string
}

func (s *site) project(c *gin.Context) (gallery.Project, bool) {
	p, ok := s.catalog.Get(c.Param("id"))
	if !ok {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{"path": c.Request.URL.Path})
		return gallery.Project{}, false
	}
	return p, true
}

// openCarousel starts a viewing as the modal shows it: wrapping at the ends.
func openCarousel(p gallery.Project) *gallery.Carousel {
	carousel := gallery.OpenCarousel(p)
	carousel.Loop = true
	return carousel
}

// handleModal opens the detail view, always with fresh image state. The
// optional image parameter picks the first visible image.
func (s *site) handleModal(c *gin.Context) {
	p, ok := s.project(c)
	if !ok {
		return
	}

	carousel := openCarousel(p)
	if raw, ok := c.GetQuery("image"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.HTML(http.StatusBadRequest, "not-found.html", gin.H{"path": c.Request.URL.Path})
			return
		}
		carousel.Seek(n)
	}
	s.record(c, analytics.ModalOpen, p.ID)

	v := modalView{Project: p, Carousel: carousel}
	v.Visit, _ = p.VisitLink()
	for i, slot := range carousel.Slots() {
		sv := newSlotView(carousel, i, slot)
		sv.Hidden = i != carousel.Index()
		v.Slots = append(v.Slots, sv)
	}
	c.HTML(http.StatusOK, "modal.html", v)
}

// slotView is one carousel image slot. Prev, Next and Position describe the
// carousel as seen from this slot and drive client-side navigation.
type slotView struct {
	ProjectID string
	Title     string
	Index     int
	Slot      gallery.Slot
	NextRetry int
	Prev      int
	Next      int
	Position  string
	Hidden    bool
}

func (s *site) slot(c *gin.Context) (*gallery.Carousel, int, int, bool) {
	p, ok := s.project(c)
	if !ok {
		return nil, 0, 0, false
	}
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{"path": c.Request.URL.Path})
		return nil, 0, 0, false
	}
	attempt, _ := strconv.Atoi(c.Query("attempt"))
	carousel := openCarousel(p)
	if _, err := carousel.Slot(n); err != nil {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{"path": c.Request.URL.Path})
		return nil, 0, 0, false
	}
	return carousel, n, max(attempt, 0), true
}

// handleImageSlot renders image n loading. A positive attempt is a retry of a
// failed image and gets a cache-busted source.
func (s *site) handleImageSlot(c *gin.Context) {
	carousel, n, attempt, ok := s.slot(c)
	if !ok {
		return
	}
	if attempt > 0 {
		if err := carousel.Restore(n, gallery.Failed, attempt-1); err != nil {
			c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
		if _, err := carousel.Retry(n); err != nil {
			c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
	}
	s.renderSlot(c, carousel, n)
}

// handleImageError marks image n failed. Only that slot is re-rendered.
func (s *site) handleImageError(c *gin.Context) {
	carousel, n, attempt, ok := s.slot(c)
	if !ok {
		return
	}
	if err := carousel.Restore(n, gallery.Loading, attempt); err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	if err := carousel.MarkFailed(n); err != nil && !errors.Is(err, gallery.ErrInvalidTransition) {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	slot, _ := carousel.Slot(n)
	logging.For(s.logger, c).Warn("carousel image failed to load",
		zap.String("project", carousel.Project.ID),
		zap.Int("image", n),
		zap.String("src", slot.Src()),
		zap.Int("attempt", attempt))
	s.record(c, analytics.ImageFailed, slot.Path)
	s.renderSlot(c, carousel, n)
}

func newSlotView(carousel *gallery.Carousel, n int, slot gallery.Slot) slotView {
	nav := *carousel
	nav.Seek(n)
	return slotView{
		ProjectID: carousel.Project.ID,
		Title:     carousel.Project.Title,
		Index:     n,
		Slot:      slot,
		NextRetry: slot.Attempt + 1,
		Prev:      nav.PrevIndex(),
		Next:      nav.NextIndex(),
		Position:  nav.Position(),
	}
}

func (s *site) renderSlot(c *gin.Context, carousel *gallery.Carousel, n int) {
	slot, _ := carousel.Slot(n)
	c.HTML(http.StatusOK, "image-slot.html", newSlotView(carousel, n, slot))
}

// handleCardImageError swaps a broken card image for the placeholder.
func (s *site) handleCardImageError(c *gin.Context) {
	p, ok := s.project(c)
	if !ok {
		return
	}
	logging.For(s.logger, c).Warn("card image failed to load",
		zap.String("project", p.ID), zap.String("src", p.Image))
	s.record(c, analytics.ImageFailed, p.Image)
	c.HTML(http.StatusOK, "card-image-error.html", p)
}

func (s *site) handleAPIProjects(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.Filter(c.Query("tag")))
}

func (s *site) handleAPIProject(c *gin.Context) {
	p, ok := s.catalog.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"project": p,
		"action":  p.ClickAction().Kind.String(),
	})
}

func (s *site) handleAPITags(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.Tags())
}
