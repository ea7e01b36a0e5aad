package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/order"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

func TestOrderUpdateStatusWithUnchangedRow(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewOrderRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_number", "status"}).
			AddRow("o1", "ORD-1", string(order.StatusAccepted)))
	mock.ExpectBegin()
	// 状态未变化，驱动报告 0 行受影响
	mock.ExpectExec(`UPDATE "orders" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	o, err := repo.UpdateStatus(context.Background(), "o1", order.StatusAccepted)
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, "ORD-1", o.OrderNumber)
	assert.Equal(t, order.StatusAccepted, o.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderUpdateStatusMissing(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewOrderRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_number", "status"}))

	o, err := repo.UpdateStatus(context.Background(), "ghost", order.StatusAccepted)
	require.NoError(t, err)
	assert.Nil(t, o)
	assert.NoError(t, mock.ExpectationsWereMet())
}
