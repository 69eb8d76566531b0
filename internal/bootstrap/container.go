package bootstrap

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"clipnote-be/internal/config"
	"clipnote-be/internal/controller"
	"clipnote-be/internal/handler"
	"clipnote-be/internal/pkg/logger"
	"clipnote-be/internal/pkg/mailer"
	"clipnote-be/internal/repository/memory"
	"clipnote-be/internal/repository/unitofwork"
	"clipnote-be/internal/service"
	ws "clipnote-be/internal/websocket"
	"clipnote-be/pkg/nats"
)

const sessionTTL = 24 * time.Hour

// Container wires every dependency once at startup.
type Container struct {
	Config *config.Config
	Logger logger.ILogger

	Hub             *ws.Hub
	NatsPublisher   *nats.Publisher
	NatsSubscriber  *nats.Subscriber
	ChangeFeed      service.IChangeFeedService
	SyncService     service.ISyncService
	ActivityService service.IActivityService

	AuthController     *controller.AuthController
	OAuthController    *controller.OAuthController
	NoteController     *controller.NoteController
	ClipController     *controller.ClipController
	UserController     *controller.UserController
	ActivityController *controller.ActivityController
	StreamHandler      *handler.StreamHandler
}

func NewContainer(cfg *config.Config, db *gorm.DB, appLogger logger.ILogger) *Container {
	uowFactory := unitofwork.NewUnitOfWorkFactory(db)
	sessions := memory.NewSessionRepository(sessionTTL)

	// The stream domain is chatty (one line per frame under load), so
	// it logs to its own file and stays out of the console.
	streamLogger := logger.NewIsolatedLogger(cfg.App.StreamLogFilePath)

	var redisClient *redis.Client
	if cfg.App.RedisURL != "" {
		if opts, err := redis.ParseURL(cfg.App.RedisURL); err == nil {
			redisClient = redis.NewClient(opts)
		} else {
			appLogger.Warn("bootstrap", "invalid redis url, running single-instance", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	hub := ws.NewHub(redisClient, streamLogger)

	natsPublisher, err := nats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		appLogger.Warn("bootstrap", "nats publisher unavailable, events disabled", map[string]interface{}{
			"error": err.Error(),
		})
		natsPublisher = nil
	}
	natsSubscriber, err := nats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		appLogger.Warn("bootstrap", "nats subscriber unavailable, activity feed disabled", map[string]interface{}{
			"error": err.Error(),
		})
		natsSubscriber = nil
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	changeFeed := service.NewChangeFeedService(pubSub, cfg.App.ChangeFeedTopic, appLogger)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.App.ClientURL,
	)

	publisherService := service.NewPublisherService(natsPublisher, appLogger)
	noteService := service.NewNoteService(uowFactory, changeFeed, publisherService, appLogger)
	clipService := service.NewClipService(uowFactory, changeFeed, publisherService, appLogger)
	authService := service.NewAuthService(uowFactory, sessions, hub, emailService, publisherService, appLogger)
	userService := service.NewUserService(uowFactory, sessions, appLogger)
	oauthService := service.NewOAuthService(
		uowFactory,
		sessions,
		publisherService,
		cfg.App.GoogleClientID,
		cfg.App.GoogleClientSecret,
		cfg.App.BaseURL+"/api/v1/auth/google/callback",
		appLogger,
	)
	syncService := service.NewSyncService(noteService, clipService, changeFeed, hub, streamLogger)
	activityService := service.NewActivityService(uowFactory, hub, appLogger)

	return &Container{
		Config: cfg,
		Logger: appLogger,

		Hub:             hub,
		NatsPublisher:   natsPublisher,
		NatsSubscriber:  natsSubscriber,
		ChangeFeed:      changeFeed,
		SyncService:     syncService,
		ActivityService: activityService,

		AuthController:     controller.NewAuthController(authService),
		OAuthController:    controller.NewOAuthController(oauthService),
		NoteController:     controller.NewNoteController(noteService),
		ClipController:     controller.NewClipController(clipService),
		UserController:     controller.NewUserController(userService),
		ActivityController: controller.NewActivityController(activityService),
		StreamHandler:      handler.NewStreamHandler(hub, syncService, noteService, clipService, streamLogger),
	}
}

// Close releases broker connections and the change feed.
func (c *Container) Close() {
	if c.NatsPublisher != nil {
		c.NatsPublisher.Close()
	}
	if c.NatsSubscriber != nil {
		c.NatsSubscriber.Close()
	}
	_ = c.ChangeFeed.Close()
}
