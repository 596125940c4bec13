package http

import (
	stdhttp "net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"smoweb/app/internal/domain/club"
	"smoweb/app/internal/domain/cms"
	"smoweb/app/internal/domain/directory"
)

// Options configures the HTTP server wiring.
type Options struct {
	News       cms.NewsService
	Content    cms.ContentService
	Gallery    cms.GalleryService
	Forms      cms.FormService
	Categories directory.CategoryService
	Contacts   directory.ContactService
	Users      directory.UserService
	Activities club.ActivityService
	Projects   club.ProjectService
	Documents  club.DocumentService
	Donations  club.CampaignService
	Members    club.MemberService
	Staff      club.StaffService
	Positions  club.PositionService

	DB          *gorm.DB
	Logger      *logrus.Logger
	SentryHub   *sentry.Hub
	RateLimiter RateLimiterSettings
	Version     string
}

// RateLimiterSettings configures the HTTP rate limiter behaviour.
type RateLimiterSettings struct {
	RequestsPerSecond float64
	Burst             int
	ClientTTL         time.Duration
}

// Server wires the JSON API via Huma on a standard library mux.
type Server struct {
	api         huma.API
	mux         *stdhttp.ServeMux
	news        cms.NewsService
	content     cms.ContentService
	gallery     cms.GalleryService
	forms       cms.FormService
	categories  directory.CategoryService
	contacts    directory.ContactService
	users       directory.UserService
	activities  club.ActivityService
	projects    club.ProjectService
	documents   club.DocumentService
	donations   club.CampaignService
	members     club.MemberService
	staff       club.StaffService
	positions   club.PositionService
	db          *gorm.DB
	logger      *logrus.Logger
	sentry      *sentry.Hub
	rateLimiter *RateLimiter
}

// NewServer constructs the HTTP server.
func NewServer(opts Options) (*Server, error) {
	switch {
	case opts.News == nil:
		return nil, eris.New("news service is required")
	case opts.Content == nil:
		return nil, eris.New("content service is required")
	case opts.Gallery == nil:
		return nil, eris.New("gallery service is required")
	case opts.Forms == nil:
		return nil, eris.New("form service is required")
	case opts.Categories == nil:
		return nil, eris.New("category service is required")
	case opts.Contacts == nil:
		return nil, eris.New("contact service is required")
	case opts.Users == nil:
		return nil, eris.New("user service is required")
	case opts.Activities == nil:
		return nil, eris.New("activity service is required")
	case opts.Projects == nil:
		return nil, eris.New("project service is required")
	case opts.Documents == nil:
		return nil, eris.New("document service is required")
	case opts.Donations == nil:
		return nil, eris.New("donation service is required")
	case opts.Members == nil:
		return nil, eris.New("member service is required")
	case opts.Staff == nil:
		return nil, eris.New("staff service is required")
	case opts.Positions == nil:
		return nil, eris.New("position service is required")
	}

	settings := opts.RateLimiter
	if settings.Burst <= 0 {
		return nil, eris.New("rate limiter burst must be greater than zero")
	}
	if settings.RequestsPerSecond <= 0 {
		return nil, eris.New("rate limiter requests per second must be greater than zero")
	}
	if settings.ClientTTL <= 0 {
		return nil, eris.New("rate limiter client TTL must be greater than zero")
	}

	version := opts.Version
	if version == "" {
		version = "1.0.0"
	}

	mux := stdhttp.NewServeMux()
	api := humago.New(mux, huma.DefaultConfig("SMO Web API", version))

	srv := &Server{
		api:         api,
		mux:         mux,
		news:        opts.News,
		content:     opts.Content,
		gallery:     opts.Gallery,
		forms:       opts.Forms,
		categories:  opts.Categories,
		contacts:    opts.Contacts,
		users:       opts.Users,
		activities:  opts.Activities,
		projects:    opts.Projects,
		documents:   opts.Documents,
		donations:   opts.Donations,
		members:     opts.Members,
		staff:       opts.Staff,
		positions:   opts.Positions,
		db:          opts.DB,
		logger:      opts.Logger,
		sentry:      opts.SentryHub,
		rateLimiter: NewRateLimiter(settings.Burst, settings.RequestsPerSecond, settings.ClientTTL),
	}

	srv.registerMiddlewares()
	srv.registerRoutes()

	return srv, nil
}

// Handler exposes the underlying HTTP handler for wiring into the application.
func (s *Server) Handler() stdhttp.Handler {
	return s.mux
}

// API exposes the underlying Huma API instance.
func (s *Server) API() huma.API {
	return s.api
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

func (s *Server) registerMiddlewares() {
	s.api.UseMiddleware(
		s.sentryMiddleware(),
		s.recoveryMiddleware(),
		s.requestIDMiddleware(),
		s.metricsMiddleware(),
		s.rateLimitMiddleware(),
		s.loggingMiddleware(),
	)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("GET /metrics", promhttp.Handler())

	s.registerNewsRoutes()
	s.registerContentRoutes()
	s.registerGalleryRoutes()
	s.registerFormRoutes()
	s.registerCategoryRoutes()
	s.registerContactRoutes()
	s.registerUserRoutes()
	s.registerActivityRoutes()
	s.registerProjectRoutes()
	s.registerDocumentRoutes()
	s.registerDonationRoutes()
	s.registerMemberRoutes()
	s.registerStaffRoutes()
	s.registerPositionRoutes()
	s.registerHealthRoute()
}

func (s *Server) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.mux.ServeHTTP(w, r)
}
