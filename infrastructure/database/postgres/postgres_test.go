package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driver mínimo para controlar o resultado de commit e rollback
type txDriver struct {
	rollbackErr error
	rollbacks   int
	commits     int
}

func (d *txDriver) Open(string) (driver.Conn, error) { return &txConn{driver: d}, nil }

type txConn struct{ driver *txDriver }

func (c *txConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("não suportado") }
func (c *txConn) Close() error                        { return nil }
func (c *txConn) Begin() (driver.Tx, error)           { return &fakeTx{driver: c.driver}, nil }

type fakeTx struct{ driver *txDriver }

func (t *fakeTx) Commit() error {
	t.driver.commits++
	return nil
}

func (t *fakeTx) Rollback() error {
	t.driver.rollbacks++
	return t.driver.rollbackErr
}

func newTestConnection(t *testing.T, d *txDriver) *Connection {
	t.Helper()

	name := "txdriver_" + t.Name()
	sql.Register(name, d)

	db, err := sql.Open(name, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &Connection{DB: db}
}

func TestConnection_RunInTransaction(t *testing.T) {
	t.Run("sucesso faz commit", func(t *testing.T) {
		d := &txDriver{}
		conn := newTestConnection(t, d)

		err := conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error { return nil })

		require.NoError(t, err)
		assert.Equal(t, 1, d.commits)
		assert.Equal(t, 0, d.rollbacks)
	})

	t.Run("erro faz rollback e é devolvido", func(t *testing.T) {
		d := &txDriver{}
		conn := newTestConnection(t, d)
		cause := errors.New("falha no upsert")

		err := conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error { return cause })

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, 1, d.rollbacks)
		assert.Equal(t, 0, d.commits)
	})

	t.Run("falha no rollback preserva a causa original", func(t *testing.T) {
		d := &txDriver{rollbackErr: errors.New("conexão perdida")}
		conn := newTestConnection(t, d)
		cause := errors.New("falha no upsert")

		err := conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error { return cause })

		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "conexão perdida")
	})
}
