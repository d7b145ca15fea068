package main

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/gallery"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/mailrelay"
	"github.com/Zachkp/portfolio/internal/telemetry"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// site holds everything the handlers share. All of it is read-only after startup.
type site struct {
	cfg     config.Config
	catalog *gallery.Catalog
	relay   mailrelay.Relay
	events  *analytics.Store // nil when analytics is disabled
	logger  *zap.Logger
}

var templateFuncs = template.FuncMap{
	"neutralTilt": func() template.CSS { return template.CSS(gallery.Neutral.Transform()) },
	"add":         func(a, b int) int { return a + b },
	"ms":          func(d time.Duration) int64 { return d.Milliseconds() },
	"pageURL":     pushURL,
	"filterURL":   func(tag string) string { return "/projects?tag=" + url.QueryEscape(tag) },
	"staggerDelay": func(i int) template.CSS {
		return template.CSS(strconv.Itoa(i*50) + "ms")
	},
	"isOpenModal": func(a gallery.ClickAction) bool { return a.Kind == gallery.ActionOpenModal },
	"isNavigate":  func(a gallery.ClickAction) bool { return a.Kind == gallery.ActionNavigate },
	"isFailed":    func(s gallery.ImageStatus) bool { return s == gallery.Failed },
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

func (s *site) router() (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestID(), telemetry.Middleware(), logging.Middleware(s.logger))
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))
	r.Static("/images", "./images")
	r.Static("/documents", "./documents")

	r.GET("/", s.handleIndex)

	r.GET("/projects", s.handleProjects)
	r.GET("/projects/:id/modal", s.handleModal)
	r.GET("/projects/:id/images/:n", s.handleImageSlot)
	r.POST("/projects/:id/images/:n/error", s.handleImageError)
	r.POST("/projects/:id/image/error", s.handleCardImageError)

	api := r.Group("/api")
	api.GET("/projects", s.handleAPIProjects)
	api.GET("/projects/:id", s.handleAPIProject)
	api.GET("/tags", s.handleAPITags)

	r.POST("/contact", s.handleContact)
	r.GET("/whatsapp", func(c *gin.Context) {
		c.Redirect(http.StatusFound, s.cfg.WhatsAppURL())
	})

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{"path": c.Request.URL.Path})
	})
	return r, nil
}

// isHTMX reports whether the request was initiated by HTMX.
func isHTMX(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("HX-Request"), "true")
}

// record stores an analytics event. Failures are logged and never reach the visitor.
func (s *site) record(c *gin.Context, kind analytics.Kind, subject string) {
	if s.events == nil || c.GetHeader("DNT") == "1" {
		return
	}
	if err := s.events.Record(c.Request.Context(), c.ClientIP(), kind, subject); err != nil {
		logging.For(s.logger, c).Warn("record analytics event", zap.String("kind", string(kind)), zap.Error(err))
	}
}
