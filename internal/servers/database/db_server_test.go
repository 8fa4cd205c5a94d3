package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"whiteboardLabeler/configs"
	"whiteboardLabeler/internal/models"
)

func TestOpenSQLiteMigrates(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "labeler.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	for _, table := range []interface{}{&models.Whiteboard{}, &models.Chunk{}, &models.Contractor{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	cfg, err := configs.Load(writeConfig(t, "storage:\n  driver: mongo\n"))
	require.NoError(t, err)
	_, err = Open(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestGetPSQL(t *testing.T) {
	cfg, err := configs.Load(writeConfig(t, "database:\n  host: db\n  port: 6543\n  name: labels\n"))
	require.NoError(t, err)
	psql := getPSQL(cfg)
	assert.Equal(t, "db", psql.Host)
	assert.Equal(t, 6543, psql.Port)
	assert.Equal(t, "labels", psql.Name)
	assert.Equal(t, "disable", psql.SSL)
}
