package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, DriverBadger, cfg.Database.Driver)
	assert.Equal(t, 10*time.Second, cfg.Database.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Database.Badger.GCInterval)
	assert.Equal(t, LockLocal, cfg.Lock.Driver)
	assert.Equal(t, 50*time.Millisecond, cfg.Lock.Retry)
	assert.Equal(t, RecomputeIncoming, cfg.Individual.ScoreRecompute)
	assert.Equal(t, 25.0, cfg.Results.MaxTotalScore)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: "7000"
  mode: release
database:
  driver: mongo
  mongo:
    uri: mongodb://db:27017
individual:
  score_recompute: merged
lock:
  driver: redis
  ttl: 3s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("MONGO_URI", "mongodb://override:27017")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "mongodb://override:27017", cfg.Database.Mongo.URI)
	assert.Equal(t, "report", cfg.Database.Mongo.Database)
	assert.Equal(t, RecomputeMerged, cfg.Individual.ScoreRecompute)
	assert.Equal(t, LockRedis, cfg.Lock.Driver)
	assert.Equal(t, 3*time.Second, cfg.Lock.TTL)
}

func TestLoadConfig_RejectsUnknownValues(t *testing.T) {
	tests := map[string]string{
		"driver":    "database:\n  driver: postgres\n",
		"lock":      "lock:\n  driver: etcd\n",
		"recompute": "individual:\n  score_recompute: sometimes\n",
		"mode":      "server:\n  mode: verbose\n",
		"max score": "results:\n  max_total_score: 0\n",
	}

	for name, yaml := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

			_, err := LoadConfig(dir)
			assert.Error(t, err)
		})
	}
}
