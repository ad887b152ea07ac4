package bootstrap

import (
	"context"
	"log"
	"time"

	"household-sync-be/internal/config"
	"household-sync-be/internal/controller"
	"household-sync-be/internal/handler"
	"household-sync-be/internal/pkg/logger"
	"household-sync-be/internal/repository/contract"
	"household-sync-be/internal/repository/implementation"
	"household-sync-be/internal/repository/memory"
	"household-sync-be/internal/repository/redisstore"
	"household-sync-be/internal/repository/unitofwork"
	"household-sync-be/internal/service"
	"household-sync-be/internal/websocket"
	"household-sync-be/pkg/extract"
	"household-sync-be/pkg/groupclient"
	"household-sync-be/pkg/keylock"
	pktNats "household-sync-be/pkg/nats"
	"household-sync-be/pkg/scheduler"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	GroupController      controller.IGroupController
	PollController       controller.IPollController
	ExtractionController controller.IExtractionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	Scheduler       *scheduler.Periodic

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	c.Logger = sysLogger

	// 2. Poll request queue
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		c.closers = append(c.closers, natsPub.Close)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		c.closers = append(c.closers, natsSub.Close)
	}

	rdb := connectRedis(cfg.App.RedisURL)
	if rdb != nil {
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	// 4. Notification system
	wsLogger := logger.NewIsolatedLogger(cfg.App.NotificationLog)
	wsHub := websocket.NewHub(rdb, wsLogger)

	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Without a working bus the service renders and delivers in-process
	var dispatcher service.NotificationDispatcher = notifService
	if natsPub != nil && natsSub != nil && natsPub.IsConnected() && notifService.Start() == nil {
		dispatcher = service.NewBusDispatcher(natsPub)
		log.Printf("[INFO] Notifications dispatched through NATS")
	} else {
		log.Printf("[INFO] Notifications dispatched directly")
	}

	// 5. Chore watcher
	states, locker := observedStateBackend(cfg, rdb)
	fetcher := groupclient.NewClient(cfg.Poll.GroupServiceURL, cfg.Poll.FetchTimeout)
	watcher := service.NewChoreWatchService(fetcher, states, locker, dispatcher, sysLogger)

	publisherService := service.NewPublisherService(cfg.Poll.QueueTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Poll.QueueTopic,
		watcher,
		cfg.Poll.RetryBudget,
		sysLogger,
	)
	pollService := service.NewPollService(uowFactory, watcher, publisherService, sysLogger)

	c.Scheduler = scheduler.NewPeriodic(cfg.Poll.Interval, func(ctx context.Context) {
		if _, err := pollService.EnqueueAll(ctx); err != nil {
			sysLogger.Error("Scheduler", "Failed to queue periodic poll", map[string]interface{}{"error": err.Error()})
		}
	}, scheduler.WithMinInterval(cfg.Poll.MinInterval), scheduler.WithRunOnStart())

	// 6. Remaining services
	groupService := service.NewGroupService(uowFactory)
	extractionService := service.NewExtractionService(extract.NewRecipeNoteParser(), sysLogger)

	// 7. Controllers
	c.GroupController = controller.NewGroupController(groupService)
	c.PollController = controller.NewPollController(pollService)
	c.ExtractionController = controller.NewExtractionController(extractionService)

	c.ConsumerService = consumerService
	c.NotificationHandler = handler.NewNotificationHandler(notifService, dispatcher, wsHub, wsLogger)
	c.WebSocketHub = wsHub

	return c
}

// Close releases broker and cache connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	if c.Logger != nil {
		c.Logger.Sync()
	}
}

// connectRedis returns nil when Redis is unreachable so callers can fall back
// to single-instance behaviour.
func connectRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: url,
		}
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb.Close()
		return nil
	}
	return rdb
}

func observedStateBackend(cfg *config.Config, rdb *redis.Client) (contract.ObservedStateRepository, keylock.Locker) {
	if cfg.Poll.StateBackend == "redis" && rdb != nil {
		// The lock must outlive a full cycle including a slow fetch
		ttl := 2*cfg.Poll.FetchTimeout + 30*time.Second
		log.Printf("[INFO] Observed state stored in Redis")
		return redisstore.NewObservedStateRepository(rdb), keylock.NewRedis(rdb, "chorewatch:lock:", ttl)
	}

	log.Printf("[INFO] Observed state stored in memory")
	return memory.NewObservedStateRepository(), keylock.NewLocal()
}
