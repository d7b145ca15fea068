package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/gallery"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/mailrelay"
	"github.com/Zachkp/portfolio/internal/telemetry"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:          "portfolio",
	Short:        "Personal portfolio site",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio (default)",
	RunE:  runServe,
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tag vocabulary with project counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := gallery.DefaultCatalog()
		if err != nil {
			return err
		}
		for _, tag := range catalog.Tags() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-28s %d\n", tag, len(catalog.Filter(tag)))
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [catalog.yaml]",
	Short: "Validate a project catalog (the embedded one by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			catalog *gallery.Catalog
			err     error
		)
		if len(args) == 1 {
			data, readErr := os.ReadFile(args[0])
			if readErr != nil {
				return readErr
			}
			catalog, err = gallery.ParseCatalog(data)
		} else {
			catalog, err = gallery.DefaultCatalog()
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "catalog ok: %d projects, %d tags\n", catalog.Len(), len(catalog.Tags()))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(serveCmd, tagsCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "portfolio", cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	s, err := newSite(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if s.events != nil {
		defer s.events.Close()
	}

	public, err := s.router()
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	servers := []*http.Server{{
		Addr:              ":" + cfg.Port,
		Handler:           public,
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if cfg.AdminAddr != "" {
		servers = append(servers, &http.Server{
			Addr:              cfg.AdminAddr,
			Handler:           s.adminRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			logger.Info("listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			errs = append(errs, srv.Shutdown(shutdownCtx))
		}
		return errors.Join(errs...)
	})
	return g.Wait()
}

func newSite(ctx context.Context, cfg config.Config, logger *zap.Logger) (*site, error) {
	catalog, err := gallery.DefaultCatalog()
	if err != nil {
		return nil, err
	}

	relay, err := mailrelay.New(cfg.Mail)
	if err != nil {
		return nil, err
	}

	s := &site{
		cfg:     cfg,
		catalog: catalog,
		relay:   mailrelay.Traced(relay),
		logger:  logger,
	}

	if cfg.AnalyticsDB != "" {
		events, err := analytics.Open(ctx, cfg.AnalyticsDB)
		if err != nil {
			return nil, err
		}
		if n, err := events.Cleanup(ctx); err != nil {
			logger.Warn("analytics cleanup", zap.Error(err))
		} else if n > 0 {
			logger.Info("privacy cleanup: removed old events", zap.Int64("deleted", n))
		}
		s.events = events
		logger.Info("privacy-conscious analytics enabled", zap.String("db", cfg.AnalyticsDB))
	}

	logger.Info("catalog loaded",
		zap.Int("projects", catalog.Len()),
		zap.Int("tags", len(catalog.Tags())),
		zap.String("relay", relay.Name()))
	return s, nil
}

// pageView is the data for the full page.
type pageView struct {
	Title          string
	HeroTitle      string
	HeroSubline    string
	NavLinks       []NavLink
	Gallery        galleryView
	DeveloperName  string
	AboutMe        string
	ProfileImage   string
	ResumePath     string
	Facts          []Fact
	Skills         []Skill
	Contact        contactView
	SplashDuration time.Duration
	Year           int
}

func (s *site) handleIndex(c *gin.Context) {
	s.record(c, analytics.PageView, c.Request.URL.Path)
	c.HTML(http.StatusOK, "index.html", pageView{
		Title:          DeveloperName + " | Portfolio",
		HeroTitle:      HeroTitle,
		HeroSubline:    HeroSubline,
		NavLinks:       NavLinks,
		Gallery:        s.galleryView(c.Query("tag")),
		DeveloperName:  DeveloperName,
		AboutMe:        AboutMe,
		ProfileImage:   ProfileImage,
		ResumePath:     ResumePath,
		Facts:          DeveloperFacts,
		Skills:         Skills,
		Contact:        s.contactView(ContactForm{}, nil),
		SplashDuration: s.cfg.SplashDuration,
		Year:           time.Now().Year(),
	})
}
