// Package paymentlist реализует HTTP-обработчик списка платежей
// с фильтрами по курсу и способу оплаты.
package paymentlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/daniilsolovey/course-platform/internal/http/response"
	"github.com/daniilsolovey/course-platform/internal/lib/sl"
	"github.com/daniilsolovey/course-platform/internal/models"
)

// Handler обрабатывает HTTP-запросы на получение списка платежей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка платежей.
type Service interface {
	List(ctx context.Context, courseID *int64, method *string) ([]*models.PaymentInfo, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список платежей
// @Description Возвращает платежи, отсортированные по дате от новых к старым. Поддерживает фильтры по курсу и способу оплаты.
// @Tags Payments
// @Produce  json
// @Param course_id query int false "Фильтр по курсу"
// @Param payment_method query string false "Фильтр по способу оплаты (cash или card)"
// @Success 200 {array} models.PaymentInfo "Список платежей"
// @Failure 400 {object} response.ErrorResponse "Некорректный фильтр"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /payments/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var courseID *int64
	if raw := r.URL.Query().Get("course_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Error("invalid course_id filter", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid course_id"))
			return
		}
		courseID = &id
	}

	var method *string
	if raw := r.URL.Query().Get("payment_method"); raw != "" {
		if raw != models.PaymentMethodCash && raw != models.PaymentMethodCard {
			log.Error("invalid payment_method filter", slog.String("value", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid payment_method"))
			return
		}
		method = &raw
	}

	result, err := h.service.List(r.Context(), courseID, method)
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list payments"))
		return
	}

	log.Info("payments listed", slog.Int("count", len(result)))
	render.JSON(w, r, response.StatusOKWithData(result))
}
