package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"report_backend/internal/config"
	"report_backend/pkg/logger"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// badgerLogger routes badger's internal logging through zap.
type badgerLogger struct {
	log *zap.SugaredLogger
}

func (l *badgerLogger) Errorf(format string, args ...interface{})   { l.log.Errorf(format, args...) }
func (l *badgerLogger) Warningf(format string, args ...interface{}) { l.log.Warnf(format, args...) }
func (l *badgerLogger) Infof(format string, args ...interface{})    { l.log.Debugf(format, args...) }
func (l *badgerLogger) Debugf(format string, args ...interface{})   { l.log.Debugf(format, args...) }

// InitBadger opens the embedded store. In-memory mode ignores Path and is
// what the tests use.
func InitBadger(cfg *config.BadgerConfig) (*badger.DB, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("badger path is required for persistent database")
		}
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.
		WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(&badgerLogger{log: logger.Log.Named("badger").Sugar()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	logger.Log.Info("Database connection established",
		zap.String("driver", config.DriverBadger),
		zap.Bool("in_memory", cfg.InMemory),
	)
	return db, nil
}

// RunBadgerGC triggers value log garbage collection every interval until ctx
// is cancelled.
func RunBadgerGC(ctx context.Context, db *badger.DB, interval time.Duration, ratio float64) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// ErrNoRewrite only means there was nothing to collect.
			if err := db.RunValueLogGC(ratio); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				logger.Log.Warn("badger value log GC error", zap.Error(err))
			}
		}
	}
}
