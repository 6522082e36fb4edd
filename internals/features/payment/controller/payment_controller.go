package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	eventModel "tripku_backend/internals/features/bookings/events/model"
	notifModel "tripku_backend/internals/features/home/notifications/model"
	notifService "tripku_backend/internals/features/home/notifications/service"
	"tripku_backend/internals/features/payment/dto"
	"tripku_backend/internals/features/payment/model"
	"tripku_backend/internals/features/payment/service"
	userModel "tripku_backend/internals/features/users/user/model"
	helper "tripku_backend/internals/helpers"
	"tripku_backend/internals/helpers/pgerr"
)

type PaymentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Notifier *notifService.Dispatcher
}

func NewPaymentController(db *gorm.DB, v *validator.Validate, notifier *notifService.Dispatcher) *PaymentController {
	return &PaymentController{DB: db, Validate: v, Notifier: notifier}
}

func buildOrderID() string {
	short := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return "TRIPKU-EVT-" + short
}

// POST /api/u/events/:id/pay — create a pending payment and a Snap token
func (ctl *PaymentController) Checkout(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid event id")
	}

	var event eventModel.EventModel
	err = ctl.DB.WithContext(c.UserContext()).
		Where("event_id = ?", eventID).
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "event not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load event")
	}
	if event.EventPrice <= 0 {
		return helper.JsonError(c, fiber.StatusConflict, "event is free, no payment required")
	}

	var user userModel.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("user_id = ?", userID).
		First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load user")
	}

	payment := &model.PaymentModel{
		PaymentID:      uuid.New(),
		PaymentOrderID: buildOrderID(),
		PaymentUserID:  userID,
		PaymentEventID: eventID,
		PaymentAmount:  event.EventPrice,
		PaymentStatus:  model.PaymentStatusPending,
	}

	token, err := service.GenerateSnapToken(payment.PaymentOrderID, payment.PaymentAmount, user.UserName, user.UserEmail)
	if err != nil {
		log.Printf("[PAYMENT] snap token failed for order %s: %v", payment.PaymentOrderID, err)
		return helper.JsonError(c, fiber.StatusBadGateway, "payment gateway unavailable")
	}
	payment.PaymentSnapToken = token

	if err := ctl.DB.WithContext(c.UserContext()).Create(payment).Error; err != nil {
		return pgerr.Write(c, err)
	}

	return helper.JsonCreated(c, "Payment created", dto.ToPaymentResponse(payment))
}

// POST /api/payments/notification — Midtrans webhook, unauthenticated
func (ctl *PaymentController) HandleNotification(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	orderID, _ := body["order_id"].(string)
	transactionStatus, _ := body["transaction_status"].(string)
	if orderID == "" || transactionStatus == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	var payment model.PaymentModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("payment_order_id = ?", orderID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[PAYMENT] webhook for unknown order %s", orderID)
		return c.SendStatus(fiber.StatusNotFound)
	}
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	updates := map[string]interface{}{
		"payment_gateway_status": transactionStatus,
	}
	// Updates writes the map values back onto payment, so the prior status
	// has to be kept aside for the change check below.
	prevStatus := payment.PaymentStatus
	newStatus := prevStatus
	switch transactionStatus {
	case "settlement", "capture", "success":
		newStatus = model.PaymentStatusPaid
		updates["payment_settled_at"] = time.Now()
	case "deny", "cancel", "failure":
		newStatus = model.PaymentStatusFailed
	case "expire":
		newStatus = model.PaymentStatusExpired
	}
	updates["payment_status"] = newStatus

	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&payment).
		Updates(updates).Error; err != nil {
		log.Printf("[PAYMENT] webhook update failed for order %s: %v", orderID, err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	if ctl.Notifier != nil && newStatus != prevStatus {
		recipient := payment.PaymentUserID
		ctl.Notifier.SendAsync(&recipient,
			notifModel.KindPaymentStatus,
			"Payment "+newStatus,
			"Your payment for order "+orderID+" is now "+newStatus+".",
			map[string]interface{}{
				"payment_id":       payment.PaymentID.String(),
				"payment_order_id": orderID,
				"payment_status":   newStatus,
			})
	}

	return c.SendStatus(fiber.StatusOK)
}

// GET /api/u/payments — my payments
func (ctl *PaymentController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&model.PaymentModel{}).
		Where("payment_user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		tx = tx.Where("payment_status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count payments")
	}

	var payments []model.PaymentModel
	if err := tx.Order("payment_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list payments")
	}

	return helper.JsonList(c, "", dto.ToPaymentResponseList(payments), helper.BuildPagination(total, paging))
}

// GET /api/a/payments — all payments
func (ctl *PaymentController) ListAll(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.PaymentModel{})
	if status := c.Query("status"); status != "" {
		tx = tx.Where("payment_status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count payments")
	}

	var payments []model.PaymentModel
	if err := tx.Order("payment_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to list payments")
	}

	return helper.JsonList(c, "", dto.ToPaymentResponseList(payments), helper.BuildPagination(total, paging))
}
