// Package pgerr maps Postgres error codes coming out of GORM to HTTP
// statuses so controllers can answer 409/400 instead of a blanket 500.
package pgerr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	helper "tripku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

// Map translates a database error to (status, message).
func Map(err error) (int, string) {
	// pgx
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return codeToStatus(pgxErr.Code, pgxErr.Message)
	}
	// lib/pq
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return codeToStatus(string(pqErr.Code), pqErr.Error())
	}
	return http.StatusInternalServerError, err.Error()
}

func codeToStatus(code, fallback string) (int, string) {
	switch code {
	case "23P01":
		return http.StatusConflict, "Time range overlap (exclusion violation)."
	case "23503":
		return http.StatusBadRequest, "Referenced record not found (FK violation)."
	case "23505":
		return http.StatusConflict, "Duplicate record (unique violation)."
	default:
		return http.StatusInternalServerError, fallback
	}
}

// Write maps the error and writes the standard JSON error envelope.
func Write(c *fiber.Ctx, err error) error {
	code, msg := Map(err)
	return helper.JsonError(c, code, msg)
}
