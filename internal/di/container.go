package di

import (
	"time"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/events"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/handler"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/realtime"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/repository"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/service"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/database"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/logger"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/redisclient"
)

// Container holds all dependencies for the ordering service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redisclient.Client
	Hub   *realtime.Hub

	// Repositories
	RestaurantRepo   repository.RestaurantRepository
	TableRepo        repository.TableRepository
	MenuRepo         repository.MenuRepository
	CategoryRepo     repository.CategoryRepository
	MenuItemRepo     repository.MenuItemRepository
	OrderRepo        repository.OrderRepository
	NotificationRepo repository.NotificationRepository
	ProfileRepo      repository.ProfileRepository

	// Services
	RestaurantService   service.RestaurantService
	TableService        service.TableService
	MenuService         service.MenuService
	OrderService        service.OrderService
	NotificationService service.NotificationService
	ProfileService      service.ProfileService

	// Handlers
	Handlers *handler.Handlers
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB                *database.PostgresDB
	Redis             *redisclient.Client
	Publisher         events.Publisher
	Logger            *logger.Logger
	PublicBaseURL     string
	WebhookSecret     string
	SessionBuffer     int
	KeepaliveInterval time.Duration
	RefreshMargin     time.Duration
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
	}

	pool := cfg.DB.Pool()
	c.RestaurantRepo = repository.NewPostgresRestaurantRepository(pool)
	c.TableRepo = repository.NewPostgresTableRepository(pool)
	c.MenuRepo = repository.NewPostgresMenuRepository(pool)
	c.CategoryRepo = repository.NewPostgresCategoryRepository(pool)
	c.MenuItemRepo = repository.NewPostgresMenuItemRepository(pool)
	c.OrderRepo = repository.NewPostgresOrderRepository(pool)
	c.NotificationRepo = repository.NewPostgresNotificationRepository(pool)
	c.ProfileRepo = repository.NewPostgresProfileRepository(pool)

	c.RestaurantService = service.NewRestaurantService(c.RestaurantRepo)
	c.TableService = service.NewTableService(c.TableRepo, c.RestaurantRepo, c.MenuRepo)
	c.MenuService = service.NewMenuService(c.MenuRepo, c.CategoryRepo, c.MenuItemRepo, c.RestaurantRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.RestaurantRepo, cfg.Publisher, cfg.Logger)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo, c.RestaurantRepo)
	c.ProfileService = service.NewProfileService(c.ProfileRepo)

	c.Hub = realtime.NewHub(cfg.Redis, cfg.Logger, cfg.SessionBuffer)

	c.Handlers = &handler.Handlers{
		Health:       handler.NewHealthHandler(cfg.DB, cfg.Redis),
		Restaurant:   handler.NewRestaurantHandler(c.RestaurantService),
		Table:        handler.NewTableHandler(c.TableService, cfg.PublicBaseURL),
		Menu:         handler.NewMenuHandler(c.MenuService),
		Order:        handler.NewOrderHandler(c.OrderService, c.RestaurantService),
		Stream:       handler.NewStreamHandler(c.Hub, c.RestaurantService, cfg.KeepaliveInterval, cfg.RefreshMargin),
		Notification: handler.NewNotificationHandler(c.NotificationService, c.RestaurantService),
		Webhook:      handler.NewWebhookHandler(c.ProfileService, cfg.WebhookSecret),
	}

	return c
}
