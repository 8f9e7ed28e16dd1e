package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/config"
	infraCache "bookstore-catalog/internal/infrastructure/cache"
	"bookstore-catalog/internal/infrastructure/database"
	"bookstore-catalog/internal/infrastructure/queue"
	"bookstore-catalog/pkg/cache"

	auditRepo "bookstore-catalog/internal/domains/audit/repository"
	auditService "bookstore-catalog/internal/domains/audit/service"

	authorHandler "bookstore-catalog/internal/domains/author/handler"
	authorRepo "bookstore-catalog/internal/domains/author/repository"
	authorService "bookstore-catalog/internal/domains/author/service"

	bookHandler "bookstore-catalog/internal/domains/book/handler"
	bookRepo "bookstore-catalog/internal/domains/book/repository"
	bookService "bookstore-catalog/internal/domains/book/service"

	"bookstore-catalog/internal/domains/category"
	categoryHandler "bookstore-catalog/internal/domains/category/handler"
	categoryRepo "bookstore-catalog/internal/domains/category/repository"
	categoryService "bookstore-catalog/internal/domains/category/service"

	"bookstore-catalog/internal/domains/user"
	userHandler "bookstore-catalog/internal/domains/user/handler"
	userRepo "bookstore-catalog/internal/domains/user/repository"
	userService "bookstore-catalog/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Struct này là "root" của dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient // nil khi Redis không kết nối được
	Cache       cache.Cache
	AsynqClient *asynq.Client // nil khi audit sink = database

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	AuthorRepo   authorRepo.RepositoryInterface
	CategoryRepo category.CategoryRepository
	BookRepo     bookRepo.RepositoryInterface
	UserRepo     user.Repository
	AuditRepo    auditRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	AuthorService   authorService.ServiceInterface
	CategoryService category.CategoryService
	BookService     bookService.ServiceInterface
	UserService     user.Service
	AuditLogger     *auditService.AsyncLogger

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	AuthorHandler   *authorHandler.AuthorHandler
	CategoryHandler *categoryHandler.CategoryHandler
	BookHandler     *bookHandler.Handler
	UserHandler     *userHandler.UserHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// QUAN TRỌNG: Thứ tự initialization:
// 1. Config (không phụ thuộc gì)
// 2. Infrastructure (DB, Cache, Queue) - phụ thuộc Config
// 3. Repositories - phụ thuộc Infrastructure
// 4. Services + audit logger - phụ thuộc Repositories
// 5. Handlers - phụ thuộc Services
func NewContainer(ctx context.Context) (*Container, error) {
	log.Info().Msg("Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("Config loaded")

	// ========================================
	// STEP 2: INFRASTRUCTURE
	// ========================================
	if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}
	c.initCache(ctx)
	if cfg.Audit.Sink == config.AuditSinkQueue {
		c.AsynqClient = queue.NewClient(cfg.Redis)
	}

	// ========================================
	// STEP 3-5: DOMAIN LAYERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase(ctx context.Context) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if c.Config.Database.AutoSchema {
		if err := db.EnsureSchema(connectCtx); err != nil {
			db.Close()
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		log.Info().Msg("Database schema ensured")
	}

	c.DB = db
	return nil
}

// initCache - Redis failure không critical, fallback về Noop
func (c *Container) initCache(ctx context.Context) {
	rc := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rc.Connect(pingCtx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical), caching disabled")
		_ = rc.Close()
		c.Cache = cache.Noop{}
		return
	}

	c.Redis = rc
	c.Cache = infraCache.NewRedisCache(rc.Client)
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool
	ttl := c.Config.Cache.TTL

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache, ttl)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool, c.Cache, ttl)
	// books không cache; validation author/category luôn đọc DB
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.AuditRepo = auditRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo)
	c.BookService = bookService.NewService(c.BookRepo)
	c.UserService = userService.NewUserService(c.UserRepo)

	var sink auditService.Sink = auditService.NewDatabaseSink(c.AuditRepo)
	if c.AsynqClient != nil {
		sink = auditService.NewQueueSink(c.AsynqClient)
	}
	c.AuditLogger = auditService.NewAsyncLogger(sink, auditService.Options{
		BufferSize:   c.Config.Audit.BufferSize,
		Workers:      c.Config.Audit.Workers,
		WriteTimeout: c.Config.Audit.WriteTimeout,
	})
	log.Info().Str("sink", c.Config.Audit.Sink).Msg("Audit logger started")
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.BookHandler = bookHandler.NewHandler(c.BookService, c.AuditLogger)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
}

// Cleanup dọn dẹp resources khi shutdown, ngược thứ tự khởi tạo.
// Audit được drain trước khi đóng pool vì database sink còn cần connection.
func (c *Container) Cleanup(ctx context.Context) {
	log.Info().Msg("Cleaning up container resources...")

	if c.AuditLogger != nil {
		if err := c.AuditLogger.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Audit logger did not drain in time")
		}
	}

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close asynq client")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
