package controller

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	notifService "tripku_backend/internals/features/home/notifications/service"
	"tripku_backend/internals/features/payment/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func paymentRows(paymentID, userID uuid.UUID, orderID, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"payment_id", "payment_order_id", "payment_user_id", "payment_event_id",
		"payment_amount", "payment_status",
	}).AddRow(paymentID, orderID, userID, uuid.New(), int64(250000), status)
}

// A settlement flips the payment from pending to paid; the user must get a
// status notification. The dispatch runs on a background goroutine, so the
// notification insert is awaited rather than asserted inline.
func TestWebhookSettlementDispatchesStatusNotification(t *testing.T) {
	gdb, mock := newMockDB(t)
	ctl := NewPaymentController(gdb, validator.New(), notifService.NewDispatcher(gdb))

	app := fiber.New()
	app.Post("/api/payments/notification", ctl.HandleNotification)

	paymentID := uuid.New()
	userID := uuid.New()
	orderID := "TRIPKU-EVT-1a2b3c4d5e6f"

	mock.ExpectQuery(`SELECT .+ FROM "payments" WHERE payment_order_id =`).
		WillReturnRows(paymentRows(paymentID, userID, orderID, model.PaymentStatusPending))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "payments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"notification_id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	body := []byte(`{"order_id":"` + orderID + `","transaction_status":"settlement"}`)
	req := httptest.NewRequest(fiber.MethodPost, "/api/payments/notification", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Eventually(t, func() bool {
		return mock.ExpectationsWereMet() == nil
	}, 2*time.Second, 10*time.Millisecond, "status notification was never dispatched")
}

// A webhook that does not change the status (gateway retry, interim state)
// must not notify the user again.
func TestWebhookUnchangedStatusSkipsNotification(t *testing.T) {
	gdb, mock := newMockDB(t)
	ctl := NewPaymentController(gdb, validator.New(), notifService.NewDispatcher(gdb))

	app := fiber.New()
	app.Post("/api/payments/notification", ctl.HandleNotification)

	orderID := "TRIPKU-EVT-f6e5d4c3b2a1"

	mock.ExpectQuery(`SELECT .+ FROM "payments" WHERE payment_order_id =`).
		WillReturnRows(paymentRows(uuid.New(), uuid.New(), orderID, model.PaymentStatusPending))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "payments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := []byte(`{"order_id":"` + orderID + `","transaction_status":"pending"}`)
	req := httptest.NewRequest(fiber.MethodPost, "/api/payments/notification", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookUnknownOrder(t *testing.T) {
	gdb, mock := newMockDB(t)
	ctl := NewPaymentController(gdb, validator.New(), nil)

	app := fiber.New()
	app.Post("/api/payments/notification", ctl.HandleNotification)

	mock.ExpectQuery(`SELECT .+ FROM "payments" WHERE payment_order_id =`).
		WillReturnRows(sqlmock.NewRows([]string{"payment_id"}))

	body := []byte(`{"order_id":"TRIPKU-EVT-missing00000","transaction_status":"settlement"}`)
	req := httptest.NewRequest(fiber.MethodPost, "/api/payments/notification", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
