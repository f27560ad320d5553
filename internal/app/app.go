package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/hostdash/internal/config"
	"github.com/MrSnakeDoc/hostdash/internal/domain"
	"github.com/MrSnakeDoc/hostdash/internal/files"
	"github.com/MrSnakeDoc/hostdash/internal/httpserver"
	"github.com/MrSnakeDoc/hostdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hostdash/internal/journal"
	"github.com/MrSnakeDoc/hostdash/internal/logger"
	"github.com/MrSnakeDoc/hostdash/internal/projects"
	"github.com/MrSnakeDoc/hostdash/internal/redis"
	redisstore "github.com/MrSnakeDoc/hostdash/internal/store/redis"
	"github.com/MrSnakeDoc/hostdash/internal/sysmetrics"
	"github.com/MrSnakeDoc/hostdash/internal/systemd"
	"github.com/MrSnakeDoc/hostdash/internal/version"
	"github.com/MrSnakeDoc/hostdash/web"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	catalog, err := projects.LoadCatalog(cfg.ProjectsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	source := cfg.ProjectsFile
	if source == "" {
		source = "builtin"
	}
	loggerClient.Info("projects loaded",
		logger.Int("count", catalog.Len()),
		logger.String("source", source))

	var (
		jrnl        domain.Journal
		backend     string
		redisClient *goredis.Client
	)
	if cfg.RedisEnabled() {
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		loggerClient.Info("Redis initialized successfully")
		jrnl = redisstore.NewStore(redisClient, cfg.JournalSize)
		backend = "redis"
	} else {
		jrnl = journal.NewMemory(cfg.JournalSize)
		backend = "memory"
	}
	loggerClient.Info("action journal ready",
		logger.String("backend", backend),
		logger.Int("size", cfg.JournalSize))

	d := deps.Deps{
		Logger:              loggerClient,
		StartTime:           time.Now(),
		Version:             version.Version,
		Commit:              version.Commit,
		BuildDate:           version.BuildDate,
		GoVersion:           version.GoVersion,
		TimeNow:             time.Now,
		AllowedHosts:        cfg.AllowedHosts,
		AllowedCIDRS:        cfg.AllowedCIDRS,
		TrustProxy:          cfg.TrustProxy,
		ControlBurst:        cfg.ControlBurst,
		ControlRefillPerMin: cfg.ControlRefillPerMin,
		Catalog:             catalog,
		Services:            systemd.New(cfg.Systemctl),
		Sampler:             sysmetrics.New(cfg.CPUInterval, cfg.DiskPath),
		Files:               files.NewBrowser(catalog),
		Journal:             jrnl,
		JournalBackend:      backend,
		JournalSize:         cfg.JournalSize,
		Page:                web.Dashboard,
		PageFile:            cfg.PageFile,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg.ListenAddr, d),
		redisClient: redisClient,
	}, nil
}

func (a *App) Run() error {
	defer func() { _ = a.logger.Sync() }()

	a.logger.Infof("🚀 Starting hostdash v%s on %s", version.Version, a.cfg.ListenAddr)
	a.logger.Infof("hostdash %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.closeRedis()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.closeRedis()
	a.logger.Info("✅ hostdash stopped cleanly")
	return nil
}

func (a *App) closeRedis() {
	if a.redisClient == nil {
		return
	}
	if err := a.redisClient.Close(); err != nil {
		a.logger.Warnf("failed to close redis: %v", err)
		return
	}
	a.logger.Info("✅ Redis closed cleanly")
}
