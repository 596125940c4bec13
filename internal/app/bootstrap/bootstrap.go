package bootstrap

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"smoweb/app/internal/config"
	dataclub "smoweb/app/internal/data/club"
	datacms "smoweb/app/internal/data/cms"
	"smoweb/app/internal/data/database"
	datadirectory "smoweb/app/internal/data/directory"
	"smoweb/app/internal/data/migrations"
	"smoweb/app/internal/domain/club"
	"smoweb/app/internal/domain/cms"
	"smoweb/app/internal/domain/directory"
	applog "smoweb/app/internal/log"
	presentationhttp "smoweb/app/internal/presentation/http"
)

type Dependencies struct {
	Config    config.Config
	Logger    *logrus.Logger
	SentryHub *sentry.Hub
	Version   string
}

// Services groups the domain services shared by the server and the CLI.
type Services struct {
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
}

type Result struct {
	Services   Services
	HTTPServer *presentationhttp.Server
	Database   *gorm.DB
	Cleanup    func() error
}

// OpenDatabase connects to the configured database and applies migrations.
func OpenDatabase(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*gorm.DB, error) {
	db, err := database.Open(database.Options{
		Driver: cfg.DBDriver,
		Path:   cfg.DBPath,
		DSN:    cfg.DatabaseURL,
		Logger: applog.NewGormLogger(logger),
	})
	if err != nil {
		return nil, eris.Wrap(err, "opening database")
	}

	if err := migrations.Migrate(ctx, db, logger); err != nil {
		if closeErr := database.Close(db); closeErr != nil && logger != nil {
			logger.WithError(closeErr).Error("closing database after migration failure")
		}
		return nil, eris.Wrap(err, "running migrations")
	}

	return db, nil
}

// BuildServices constructs the repositories and domain services on top of db.
func BuildServices(db *gorm.DB, cfg config.Config, logger *logrus.Logger, hub *sentry.Hub) (Services, error) {
	newsRepo, err := datacms.NewNewsRepository(db, logger)
	if err != nil {
		return Services{}, eris.Wrap(err, "creating news repository")
	}
	contentRepo, err := datacms.NewContentRepository(db, logger)
	if err != nil {
		return Services{}, eris.Wrap(err, "creating content repository")
	}
	galleryRepo, err := datacms.NewGalleryRepository(db, logger)
	if err != nil {
		return Services{}, eris.Wrap(err, "creating gallery repository")
	}
	formRepo, err := datacms.NewFormRepository(db, logger)
	if err != nil {
		return Services{}, eris.Wrap(err, "creating form repository")
	}
	categoryRepo, err := datadirectory.NewCategoryRepository(db, logger)
	if err != nil {
		return Services{}, eris.Wrap(err, "creating category repository")
	}
	contactRepo, err := datadirectory.NewContactRepository(db, logger)
	if err != nil {
		return Services{}, eris.Wrap(err, "creating contact repository")
	}
	userRepo, err := datadirectory.NewUserRepository(db, logger)
	if err != nil {
		return Services{}, eris.Wrap(err, "creating user repository")
	}

	opts := cms.Options{
		Logger:          logger,
		SentryHub:       hub,
		SlugMaxAttempts: cfg.SlugMaxAttempts,
	}

	var services Services

	if services.News, err = cms.NewNewsService(newsRepo, userRepo, opts); err != nil {
		return Services{}, eris.Wrap(err, "creating news service")
	}
	if services.Content, err = cms.NewContentService(contentRepo, opts); err != nil {
		return Services{}, eris.Wrap(err, "creating content service")
	}
	if services.Gallery, err = cms.NewGalleryService(galleryRepo, opts); err != nil {
		return Services{}, eris.Wrap(err, "creating gallery service")
	}
	if services.Forms, err = cms.NewFormService(formRepo, opts); err != nil {
		return Services{}, eris.Wrap(err, "creating form service")
	}
	if services.Categories, err = directory.NewCategoryService(categoryRepo, logger, hub); err != nil {
		return Services{}, eris.Wrap(err, "creating category service")
	}
	if services.Contacts, err = directory.NewContactService(contactRepo, logger, hub); err != nil {
		return Services{}, eris.Wrap(err, "creating contact service")
	}
	if services.Users, err = directory.NewUserService(userRepo, 0, logger, hub); err != nil {
		return Services{}, eris.Wrap(err, "creating user service")
	}

	if err := buildClubServices(&services, db, userRepo, logger, hub); err != nil {
		return Services{}, err
	}

	return services, nil
}

func buildClubServices(services *Services, db *gorm.DB, authors club.AuthorResolver, logger *logrus.Logger, hub *sentry.Hub) error {
	projectRepo, err := dataclub.NewProjectRepository(db, logger)
	if err != nil {
		return eris.Wrap(err, "creating project repository")
	}
	activityRepo, err := dataclub.NewActivityRepository(db, logger)
	if err != nil {
		return eris.Wrap(err, "creating activity repository")
	}
	documentRepo, err := dataclub.NewDocumentRepository(db, logger)
	if err != nil {
		return eris.Wrap(err, "creating document repository")
	}
	campaignRepo, err := dataclub.NewCampaignRepository(db, logger)
	if err != nil {
		return eris.Wrap(err, "creating campaign repository")
	}
	memberRepo, err := dataclub.NewMemberRepository(db, logger)
	if err != nil {
		return eris.Wrap(err, "creating member repository")
	}
	staffRepo, err := dataclub.NewStaffRepository(db, logger)
	if err != nil {
		return eris.Wrap(err, "creating staff repository")
	}
	positionRepo, err := dataclub.NewPositionRepository(db, logger)
	if err != nil {
		return eris.Wrap(err, "creating position repository")
	}

	if services.Projects, err = club.NewProjectService(projectRepo, authors, logger, hub); err != nil {
		return eris.Wrap(err, "creating project service")
	}
	if services.Activities, err = club.NewActivityService(activityRepo, projectRepo, authors, logger, hub); err != nil {
		return eris.Wrap(err, "creating activity service")
	}
	if services.Documents, err = club.NewDocumentService(documentRepo, logger, hub); err != nil {
		return eris.Wrap(err, "creating document service")
	}
	if services.Donations, err = club.NewCampaignService(campaignRepo, logger, hub); err != nil {
		return eris.Wrap(err, "creating donation service")
	}
	if services.Members, err = club.NewMemberService(memberRepo, logger, hub); err != nil {
		return eris.Wrap(err, "creating member service")
	}
	if services.Staff, err = club.NewStaffService(staffRepo, logger, hub); err != nil {
		return eris.Wrap(err, "creating staff service")
	}
	if services.Positions, err = club.NewPositionService(positionRepo, logger, hub); err != nil {
		return eris.Wrap(err, "creating position service")
	}
	return nil
}

// Build composes the SMO web application layers and returns the constructed components.
func Build(ctx context.Context, deps Dependencies) (Result, error) {
	db, err := OpenDatabase(ctx, deps.Config, deps.Logger)
	if err != nil {
		return Result{}, err
	}

	closeOnError := func(wrapper error) (Result, error) {
		if closeErr := database.Close(db); closeErr != nil && deps.Logger != nil {
			deps.Logger.WithError(closeErr).Error("closing database after bootstrap failure")
		}
		return Result{}, wrapper
	}

	services, err := BuildServices(db, deps.Config, deps.Logger, deps.SentryHub)
	if err != nil {
		return closeOnError(err)
	}

	httpServer, err := presentationhttp.NewServer(presentationhttp.Options{
		News:       services.News,
		Content:    services.Content,
		Gallery:    services.Gallery,
		Forms:      services.Forms,
		Categories: services.Categories,
		Contacts:   services.Contacts,
		Users:      services.Users,
		Activities: services.Activities,
		Projects:   services.Projects,
		Documents:  services.Documents,
		Donations:  services.Donations,
		Members:    services.Members,
		Staff:      services.Staff,
		Positions:  services.Positions,
		DB:         db,
		Logger:     deps.Logger,
		SentryHub:  deps.SentryHub,
		Version:    deps.Version,
		RateLimiter: presentationhttp.RateLimiterSettings{
			Burst:             deps.Config.RateLimit.Burst,
			RequestsPerSecond: deps.Config.RateLimit.RequestsPerSecond,
			ClientTTL:         deps.Config.RateLimit.ClientTTL,
		},
	})
	if err != nil {
		return closeOnError(eris.Wrap(err, "initialising http server"))
	}

	cleanup := func() error {
		httpServer.Close()
		return database.Close(db)
	}

	return Result{
		Services:   services,
		HTTPServer: httpServer,
		Database:   db,
		Cleanup:    cleanup,
	}, nil
}
