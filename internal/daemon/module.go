package daemon

import (
	"context"

	"github.com/matheus3301/tgclone/internal/api"
	"github.com/matheus3301/tgclone/internal/config"
	"github.com/matheus3301/tgclone/internal/lock"
	"github.com/matheus3301/tgclone/internal/logging"
	"github.com/matheus3301/tgclone/internal/metrics"
	"github.com/matheus3301/tgclone/internal/ratelimit"
	"github.com/matheus3301/tgclone/internal/session"
	"github.com/matheus3301/tgclone/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Params holds the resolved session configuration passed to the fx module.
type Params struct {
	SessionName string
	SocketPath  string // optional override for testing; empty = use default
	Config      *config.Config
	Stderr      bool // also log to stderr
	Debug       bool
}

// Module returns the fx module for the daemon, composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	if p.Config == nil {
		p.Config = config.Default()
	}
	return fx.Module("daemon",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideLock,
			provideStore,
			provideDirectoryService,
			provideLimiter,
			metrics.New,
			provideMetricsServer,
			NewServer,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideLogger(p Params) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if p.Debug {
		level = zapcore.DebugLevel
	}
	return logging.New(session.LogPath(p.SessionName, "tgcd"), p.SessionName, logging.Options{
		Stderr: p.Stderr,
		Level:  level,
	})
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := session.EnsureDir(p.SessionName); err != nil {
		return nil, err
	}
	logger.Info("acquiring session lock", zap.String("session", p.SessionName))
	l, err := lock.Acquire(session.LockPath(p.SessionName))
	if err != nil {
		return nil, err
	}
	logger.Info("session lock acquired")
	return l, nil
}

// provideStore depends on the lock so the database is never opened by two
// daemons at once.
func provideStore(p Params, _ *lock.Lock, logger *zap.Logger) (*store.DB, error) {
	dbPath := session.DirectoryDBPath(p.SessionName)
	db, result, err := store.OpenMigrated(dbPath, store.DirectorySchema)
	if err != nil {
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("store initialized", zap.String("path", dbPath))
	return db, nil
}

func provideDirectoryService(p Params, db *store.DB, logger *zap.Logger) *api.DirectoryService {
	return api.NewDirectoryService(db, logger.Named("directory"), p.Config.SearchLimit)
}

func provideLimiter(p Params) *ratelimit.Limiter {
	return ratelimit.New(p.Config.RateLimitRPS, p.Config.RateLimitBurst, 0)
}

// provideMetricsServer returns nil when no metrics address is configured.
func provideMetricsServer(p Params, m *metrics.Metrics, logger *zap.Logger) (*metrics.Server, error) {
	if p.Config.MetricsAddr == "" {
		return nil, nil
	}
	return metrics.Listen(p.Config.MetricsAddr, m, logger)
}

func registerLifecycle(lc fx.Lifecycle, srv *Server, ms *metrics.Server, db *store.DB, lk *lock.Lock, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if n, err := db.AccountCount(); err == nil {
				logger.Info("directory loaded", zap.Int64("accounts", n))
			}

			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("gRPC server error", zap.Error(err))
				}
			}()

			if ms != nil {
				go func() {
					if err := ms.Start(); err != nil {
						logger.Error("metrics server error", zap.Error(err))
					}
				}()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if ms != nil {
				if err := ms.Stop(ctx); err != nil {
					logger.Warn("error stopping metrics server", zap.Error(err))
				}
			}
			srv.Stop(ctx)
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("daemon stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
