package handler

import (
	"context"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/domain/notification"
	"jobboard/internal/pkg/pagination"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type NotificationUsecase interface {
	List(ctx context.Context, userID uuid.UUID, p pagination.Params) (pagination.Page[notification.Notification], error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
}

type NotificationHandler struct {
	uc NotificationUsecase
}

func NewNotificationHandler(uc NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router, g Guards) {
	if r == nil {
		return
	}

	r.Get("", g.User(h.List))
	r.Patch("/:id/read", g.User(h.MarkRead))
}

func (h *NotificationHandler) List(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	page, err := h.uc.List(c.Context(), userID, pageParams(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, pagination.Map(page, dto.NewNotificationResponse))
}

func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.MarkRead(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return ok(c, nil)
}
