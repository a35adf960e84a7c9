package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"kisanmandi/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "localhost",
		DBUser:     "kisan",
		DBPassword: "secret",
		DBName:     "mandi",
		DBPort:     "5432",
	}

	assert.Equal(t,
		"host=localhost user=kisan password=secret dbname=mandi port=5432 sslmode=disable",
		buildDSN(cfg),
	)
}

func TestNewDatabase_InvalidDriver(t *testing.T) {
	db, err := newDatabaseWithDriver(&config.Config{}, "no_such_driver")

	assert.Nil(t, db)
	assert.ErrorContains(t, err, "failed to connect to DB")
}

// stubDriver hands out connections without a server; db.Ping only needs Open to succeed.
type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (stubConn) Close() error                        { return nil }
func (stubConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }

func init() {
	sql.Register("kisan_stub", stubDriver{})
}

func TestNewDatabase_Success(t *testing.T) {
	db, err := newDatabaseWithDriver(&config.Config{DBHost: "localhost"}, "kisan_stub")

	require.NoError(t, err)
	assert.NotNil(t, db)
	assert.NoError(t, db.Close())
}
