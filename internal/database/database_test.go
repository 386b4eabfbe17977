package database

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockService(t *testing.T) (*service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return &service{db: gormDB, name: "notes", log: zap.NewNop()}, mock
}

func TestHealthUp(t *testing.T) {
	svc, mock := newMockService(t)
	mock.ExpectPing()

	stats := svc.Health()
	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, "It's healthy", stats["message"])
	assert.Contains(t, stats, "open_connections")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthDown(t *testing.T) {
	svc, mock := newMockService(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	stats := svc.Health()
	assert.Equal(t, "down", stats["status"])
	assert.Contains(t, stats["error"], "connection refused")
}

func TestClose(t *testing.T) {
	svc, mock := newMockService(t)
	mock.ExpectClose()

	require.NoError(t, svc.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
