package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshrane27/electrohub-showcase/internal/infra/mq"
	"github.com/vanshrane27/electrohub-showcase/internal/infra/sheets"
	"github.com/vanshrane27/electrohub-showcase/internal/service"
)

type fakeDelivery struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (d *fakeDelivery) Ack(multiple bool) error {
	d.acked = true
	return nil
}

func (d *fakeDelivery) Nack(multiple, requeue bool) error {
	d.nacked = true
	d.requeued = requeue
	return nil
}

type fakeSheet struct {
	rows   map[string][][]string
	failed bool
}

func (f *fakeSheet) Append(ctx context.Context, sheet string, rows [][]string) error {
	if f.failed {
		return errors.New("quota exceeded")
	}
	f.rows[sheet] = append(f.rows[sheet], rows...)
	return nil
}

func (f *fakeSheet) Values(ctx context.Context, sheet string) ([][]string, error) {
	return f.rows[sheet], nil
}

func (f *fakeSheet) EnsureHeaders(ctx context.Context, sheet string, headers []string) error {
	if f.failed {
		return errors.New("quota exceeded")
	}
	if len(f.rows[sheet]) == 0 {
		f.rows[sheet] = [][]string{headers}
	}
	return nil
}

func message(t *testing.T) []byte {
	raw, err := json.Marshal(service.SyncMessage{
		Kind:    service.SyncContactForm,
		Contact: &service.ContactRow{FirstName: "Ravi", LastName: "K", Phone: "+919876543210", Message: "hi"},
	})
	require.NoError(t, err)
	return raw
}

type fakeRetrier struct {
	queue   string
	attempt int
	calls   int
}

func (r *fakeRetrier) Retry(ctx context.Context, queue string, body []byte, attempt int) error {
	r.queue = queue
	r.attempt = attempt
	r.calls++
	return nil
}

func immediate(c *Consumer, r Retrier) *Consumer {
	c.retry = r
	c.backoff = 0
	return c
}

func TestSheetsSyncAcksOnSuccess(t *testing.T) {
	sheet := &fakeSheet{rows: map[string][][]string{}}
	w := NewSheetsSync(service.NewSheetsService(sheet, nil))
	d := &fakeDelivery{}

	w.Handle(context.Background(), Message{Body: message(t)}, d)

	assert.True(t, d.acked)
	assert.False(t, d.nacked)
	require.Len(t, sheet.rows[service.SheetContactForms], 2)
	assert.Equal(t, "Ravi", sheet.rows[service.SheetContactForms][1][1])
}

func TestSheetsSyncDropsMalformed(t *testing.T) {
	w := NewSheetsSync(service.NewSheetsService(&fakeSheet{rows: map[string][][]string{}}, nil))
	d := &fakeDelivery{}

	w.Handle(context.Background(), Message{Body: []byte(`{"kind":"unknown"}`)}, d)

	assert.True(t, d.nacked)
	assert.False(t, d.requeued)
}

func TestSheetsSyncRetriesTransientFailure(t *testing.T) {
	r := &fakeRetrier{}
	w := immediate(NewSheetsSync(service.NewSheetsService(&fakeSheet{rows: map[string][][]string{}, failed: true}, nil)), r)
	d := &fakeDelivery{}

	w.Handle(context.Background(), Message{Body: message(t)}, d)

	assert.Equal(t, 1, r.calls)
	assert.Equal(t, mq.QueueSheetsSync, r.queue)
	assert.Equal(t, 1, r.attempt)
	assert.True(t, d.acked)
	assert.False(t, d.nacked)
}

func TestSheetsSyncDropsAfterMaxAttempts(t *testing.T) {
	r := &fakeRetrier{}
	w := immediate(NewSheetsSync(service.NewSheetsService(&fakeSheet{rows: map[string][][]string{}, failed: true}, nil)), r)
	d := &fakeDelivery{}

	w.Handle(context.Background(), Message{Body: message(t), Attempt: DefaultMaxAttempts - 1}, d)

	assert.Zero(t, r.calls)
	assert.True(t, d.nacked)
	assert.False(t, d.requeued)
}

func TestSheetsSyncDropsPermanentFailure(t *testing.T) {
	r := &fakeRetrier{}
	apply := func(ctx context.Context, body []byte) error {
		return service.Persistence("append contact row", &sheets.APIError{Op: "append", Status: 403, Body: "forbidden"})
	}
	w := immediate(NewConsumer(mq.QueueSheetsSync, apply), r)
	d := &fakeDelivery{}

	w.Handle(context.Background(), Message{Body: message(t)}, d)

	assert.Zero(t, r.calls)
	assert.True(t, d.nacked)
	assert.False(t, d.requeued)
}

func TestSheetsSyncRequeuesWhenRepublishFails(t *testing.T) {
	apply := func(ctx context.Context, body []byte) error { return errors.New("timeout") }
	w := immediate(NewConsumer(mq.QueueSheetsSync, apply), failingRetrier{})
	d := &fakeDelivery{}

	w.Handle(context.Background(), Message{Body: message(t)}, d)

	assert.True(t, d.nacked)
	assert.True(t, d.requeued)
}

type failingRetrier struct{}

func (failingRetrier) Retry(ctx context.Context, queue string, body []byte, attempt int) error {
	return errors.New("channel closed")
}

func TestOrderSyncAppendsOrderRow(t *testing.T) {
	sheet := &fakeSheet{rows: map[string][][]string{}}
	w := NewOrderSync(service.NewSheetsService(sheet, nil))
	assert.Equal(t, mq.QueueOrderPlaced, w.Queue())

	body, err := json.Marshal(service.OrderPlacedEvent{OrderID: "o1", OrderNumber: "ORD-1", Email: "a@b.co", Items: 2, Total: "100.00", PlacedAt: "2025-01-01T00:00:00.000Z"})
	require.NoError(t, err)
	d := &fakeDelivery{}

	w.Handle(context.Background(), Message{Body: body}, d)

	assert.True(t, d.acked)
	rows := sheet.rows[service.SheetOrders]
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"o1", "ORD-1", "", "a@b.co", "2", "100.00", "2025-01-01T00:00:00.000Z"}, rows[1])
}

func TestAttemptHeader(t *testing.T) {
	assert.Equal(t, 0, attemptOf(nil))
	assert.Equal(t, 3, attemptOf(amqp.Table{attemptHeader: int32(3)}))
	assert.Equal(t, 4, attemptOf(amqp.Table{attemptHeader: int64(4)}))
}
