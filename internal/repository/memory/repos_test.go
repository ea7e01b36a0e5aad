package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/booking"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/order"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/product"
	"github.com/vanshrane27/electrohub-showcase/internal/datamodels/registration"
)

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	require.NoError(t, repo.Create(ctx, &order.Order{ID: "o1", UserID: "u1", Total: decimal.NewFromInt(100), Status: order.StatusPending}))
	require.NoError(t, repo.Create(ctx, &order.Order{ID: "o2", UserID: "u2", Total: decimal.NewFromInt(250), Status: order.StatusPending}))

	got, err := repo.UpdateStatus(ctx, "o1", order.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, order.StatusAccepted, got.Status)

	missing, err := repo.UpdateStatus(ctx, "nope", order.StatusAccepted)
	require.NoError(t, err)
	assert.Nil(t, missing)

	recent, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "o2", recent[0].ID)

	n, err := repo.CountByStatus(ctx, order.StatusPending)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	sum, err := repo.SumTotal(ctx)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(350)))
}

func TestCopiesAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	p := &product.Product{ID: "p1", Name: "TV", Position: 2}
	require.NoError(t, repo.Upsert(ctx, p))
	require.NoError(t, repo.Upsert(ctx, &product.Product{ID: "p0", Name: "Laptop", Position: 1}))

	p.Name = "changed"
	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "TV", got.Name)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p0", list[0].ID)

	require.NoError(t, repo.Delete(ctx, "p0"))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestLatestRegistrationAndBookingOrder(t *testing.T) {
	ctx := context.Background()
	regs := NewRegistrationRepository()
	require.NoError(t, regs.Create(ctx, &registration.Registration{ID: "r1", SerialNumber: "SN1", PurchaseDate: "2024-01-01"}))
	require.NoError(t, regs.Create(ctx, &registration.Registration{ID: "r2", SerialNumber: "SN1", PurchaseDate: "2025-01-01"}))
	got, err := regs.LatestBySerial(ctx, "SN1")
	require.NoError(t, err)
	assert.Equal(t, "r2", got.ID)

	bookings := NewBookingRepository()
	require.NoError(t, bookings.Create(ctx, &booking.Booking{ID: "b1", CustomerID: "c1", PreferredDate: "2025-03-02"}))
	require.NoError(t, bookings.Create(ctx, &booking.Booking{ID: "b2", CustomerID: "c1", PreferredDate: "2025-03-01"}))
	list, err := bookings.ListByCustomer(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b2", list[0].ID)
}
