package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"report_backend/internal/config"
	"report_backend/internal/controller"
	"report_backend/internal/middleware"
	"report_backend/internal/repository"
	"report_backend/internal/service"
	"report_backend/internal/util"
	"report_backend/pkg/configwatcher"
	"report_backend/pkg/database"
	"report_backend/pkg/logger"
	"report_backend/pkg/monitoring"
	"report_backend/pkg/security"
	"report_backend/pkg/tracing"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	ConfigDir       string
	configCallbacks []func(*config.Config)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	closers []func(context.Context) error
}

// store is the set of repositories backed by the configured driver.
type store struct {
	driver      string
	individuals repository.IndividualRepository
	results     repository.ResultRepository
	ping        controller.PingFunc
	background  func(ctx context.Context)
}

type services struct {
	individual *service.IndividualService
	result     *service.ResultService
	storage    *service.StorageService
	export     *service.ExportService
}

type controllers struct {
	individual *controller.IndividualController
	result     *controller.ResultController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) onClose(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

func (a *App) initStore(cfg *config.Config) (*store, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		client, db, err := database.InitMongo(a.ctx, &cfg.Database.Mongo, cfg.Database.Timeout)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		a.onClose(client.Disconnect)

		individuals := repository.NewMongoIndividualRepository(db)
		results := repository.NewMongoResultRepository(db)
		if err := individuals.EnsureIndexes(a.ctx); err != nil {
			return nil, fmt.Errorf("ensure individual indexes: %w", err)
		}
		if err := results.EnsureIndexes(a.ctx); err != nil {
			return nil, fmt.Errorf("ensure result indexes: %w", err)
		}

		return &store{
			driver:      config.DriverMongo,
			individuals: individuals,
			results:     results,
			ping:        func(ctx context.Context) error { return client.Ping(ctx, nil) },
		}, nil

	case config.DriverMySQL:
		db, err := database.InitDB(&cfg.Database.MySQL)
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		a.onClose(func(context.Context) error { return sqlDB.Close() })

		return &store{
			driver:      config.DriverMySQL,
			individuals: repository.NewMySQLIndividualRepository(db),
			results:     repository.NewMySQLResultRepository(db),
			ping:        sqlDB.PingContext,
		}, nil

	default:
		db, err := database.InitBadger(&cfg.Database.Badger)
		if err != nil {
			return nil, err
		}
		a.onClose(func(context.Context) error { return db.Close() })

		gcInterval := cfg.Database.Badger.GCInterval
		return &store{
			driver:      config.DriverBadger,
			individuals: repository.NewBadgerIndividualRepository(db),
			results:     repository.NewBadgerResultRepository(db),
			ping: func(context.Context) error {
				if db.IsClosed() {
					return errors.New("badger database is closed")
				}
				return nil
			},
			background: func(ctx context.Context) {
				if cfg.Database.Badger.InMemory {
					return
				}
				database.RunBadgerGC(ctx, db, gcInterval, 0.5)
			},
		}, nil
	}
}

func (a *App) initLocker(cfg *config.Config) (service.UserLocker, error) {
	if cfg.Lock.Driver != config.LockRedis {
		return service.NewKeyedMutex(), nil
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	a.onClose(func(context.Context) error { return rdb.Close() })
	return service.NewRedisLocker(rdb, cfg.Lock.TTL, cfg.Lock.Retry), nil
}

func (a *App) initServices(st *store, locker service.UserLocker, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(&cfg.Storage)
	s.individual = service.NewIndividualService(st.individuals, locker, &cfg.Individual)
	s.result = service.NewResultService(st.results, &cfg.Results)
	s.export = service.NewExportService(s.individual, s.storage)

	return s
}

func (a *App) initControllers(s *services, st *store) *controllers {
	return &controllers{
		individual: controller.NewIndividualController(s.individual, s.export),
		result:     controller.NewResultController(s.result),
		health:     controller.NewHealthController(st.driver, st.ping),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(st *store) {
	if st.background != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			st.background(a.ctx)
		}()
	}

	if a.Config.Server.WatchConfig {
		a.RegisterConfigCallback(func(cfg *config.Config) {
			logger.SetMode(cfg.Server.Mode)
		})

		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			err := configwatcher.WatchConfig(a.ctx, filepath.Join(a.ConfigDir, "config.yaml"), func(cfg *config.Config) {
				for _, cb := range a.configCallbacks {
					cb(cfg)
				}
			})
			if err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}
}

// NewApp connects every backing service and builds the router. configDir is
// the directory config.yaml was loaded from.
func NewApp(cfg *config.Config, configDir string) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config:    cfg,
		ConfigDir: configDir,
		ctx:       ctx,
		cancel:    cancel,
	}

	st, err := app.initStore(cfg)
	if err != nil {
		app.shutdown()
		return nil, err
	}

	locker, err := app.initLocker(cfg)
	if err != nil {
		app.shutdown()
		return nil, err
	}

	services := app.initServices(st, locker, cfg)
	controllers := app.initControllers(services, st)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			app.shutdown()
			return nil, fmt.Errorf("init tracing: %w", err)
		}
		app.onClose(tp.Shutdown)
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == util.StorageLocal && strings.HasPrefix(cfg.Storage.PublicURL, "/") {
		router.Static(cfg.Storage.PublicURL, cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(st)

	return app, nil
}

// shutdown stops background tasks and closes connections in reverse order.
func (a *App) shutdown() {
	a.cancel()
	a.wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.Log.Error("Failed to close resource", zap.Error(err))
		}
	}
	a.closers = nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.shutdown()
	logger.Log.Info("Server exiting")
}
