package models

import (
	"strconv"
	"time"
)

// Способы оплаты.
const (
	// PaymentMethodCash — оплата наличными.
	PaymentMethodCash = "cash"
	// PaymentMethodCard — перевод на счёт.
	PaymentMethodCard = "card"
)

// Payment — неизменяемая запись журнала платежей. Записи только добавляются,
// дата проставляется базой автоматически.
type Payment struct {
	ID          int64     // Идентификатор платежа
	UserUID     string    // Плательщик
	CourseID    *int64    // Оплаченный курс (может отсутствовать)
	Amount      float64   // Сумма оплаты
	Method      string    // Способ оплаты: cash или card
	PaymentDate time.Time // Дата оплаты
}

// DummyPayment используется для приёма данных платежа из JSON-запроса.
type DummyPayment struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`            // Сумма оплаты
	Method   string  `json:"payment_method" validate:"required,oneof=cash card"` // Способ оплаты
	CourseID *int64  `json:"course_id,omitempty" validate:"omitempty,gt=0"` // Оплаченный курс
}

// PaymentInfo — представление платежа в ответах API. Сумма отдаётся строкой
// с двумя знаками после запятой.
type PaymentInfo struct {
	ID          int64     `json:"id"`
	UserUID     string    `json:"user_uid"`
	CourseID    *int64    `json:"course_id,omitempty"`
	Amount      string    `json:"amount"`
	Method      string    `json:"payment_method"`
	PaymentDate time.Time `json:"payment_date"`
}

// PaymentCourse — запись об инициированной внешней платёжной сессии.
// Идентификатор сессии и ссылка на оплату заполняются после ответа
// платёжного провайдера; до этого запись хранится в «несвязанном» виде.
type PaymentCourse struct {
	ID          int64     // Идентификатор записи
	UserUID     string    // Пользователь, инициировавший оплату
	Amount      float64   // Сумма к оплате
	SessionID   *string   // Идентификатор сессии у провайдера
	PaymentLink *string   // Ссылка на страницу оплаты
	CreatedAt   time.Time // Дата создания записи
}

// AmountString возвращает сумму в виде строки с двумя знаками после запятой.
func (p *PaymentCourse) AmountString() string {
	return strconv.FormatFloat(p.Amount, 'f', 2, 64)
}

// DummyPaymentSession используется для приёма запроса на создание платёжной сессии.
type DummyPaymentSession struct {
	Amount float64 `json:"amount" validate:"required,gt=0"` // Сумма к оплате
}

// PaymentSessionInfo — представление платёжной сессии в ответах API.
type PaymentSessionInfo struct {
	ID          int64   `json:"id"`
	Amount      string  `json:"amount"`
	SessionID   *string `json:"session_id"`
	PaymentLink *string `json:"payment_link"`
}
