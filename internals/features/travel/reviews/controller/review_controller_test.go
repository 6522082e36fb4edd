package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
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

func newReviewApp(t *testing.T, userID uuid.UUID) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()
	gdb, mock := newMockDB(t)
	ctl := NewReviewController(gdb, validator.New())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		return c.Next()
	})
	app.Put("/api/u/adventures/:id/review", ctl.Upsert)
	return app, mock
}

// Re-submitting a review hits the ON CONFLICT path: the stored row keeps its
// original primary key, and the reload after the upsert must find it by the
// natural key alone. Bind args are pinned so a pk condition sneaking into
// the reload fails the test.
func TestUpsertReviewResubmitKeepsOriginalRow(t *testing.T) {
	userID := uuid.New()
	adventureID := uuid.New()
	originalReviewID := uuid.New()
	app, mock := newReviewApp(t, userID)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "adventures"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "reviews".+ON CONFLICT`).
		WillReturnRows(sqlmock.NewRows([]string{"review_id"}).AddRow(originalReviewID))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT .+ FROM "reviews" WHERE \(?review_user_id = \$1 AND review_adventure_id = \$2\)?`).
		WithArgs(userID, adventureID, 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"review_id", "review_adventure_id", "review_user_id",
			"review_rating", "review_comment",
		}).AddRow(originalReviewID, adventureID, userID, 4, "even better the second time"))

	body := []byte(`{"review_rating":4,"review_comment":"even better the second time"}`)
	req := httptest.NewRequest(fiber.MethodPut, "/api/u/adventures/"+adventureID.String()+"/review", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			ReviewID     uuid.UUID `json:"review_id"`
			ReviewRating int       `json:"review_rating"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, originalReviewID, envelope.Data.ReviewID)
	assert.Equal(t, 4, envelope.Data.ReviewRating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertReviewUnpublishedAdventure(t *testing.T) {
	userID := uuid.New()
	adventureID := uuid.New()
	app, mock := newReviewApp(t, userID)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "adventures"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	body := []byte(`{"review_rating":5}`)
	req := httptest.NewRequest(fiber.MethodPut, "/api/u/adventures/"+adventureID.String()+"/review", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
