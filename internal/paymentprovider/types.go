// Package paymentprovider реализует клиент внешнего платёжного процессора:
// создание объекта цены и чекаут-сессии со ссылкой на оплату.
package paymentprovider

// CreatePriceRequest — запрос на создание объекта цены.
// Сумма передаётся в минорных единицах валюты (центах).
type CreatePriceRequest struct {
	Currency   string `json:"currency"`    // Валюта, например "usd"
	UnitAmount int64  `json:"unit_amount"` // Сумма в минорных единицах
	Product    struct {
		Name string `json:"name"` // Название продукта
	} `json:"product_data"`
}

// Price — объект цены, созданный у провайдера.
type Price struct {
	ID         string `json:"id"`
	Currency   string `json:"currency"`
	UnitAmount int64  `json:"unit_amount"`
}

// CreateSessionRequest — запрос на создание чекаут-сессии по объекту цены.
type CreateSessionRequest struct {
	SuccessURL string     `json:"success_url"`
	Mode       string     `json:"mode"`
	LineItems  []LineItem `json:"line_items"`
}

// LineItem — позиция чекаут-сессии.
type LineItem struct {
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// Session — чекаут-сессия провайдера: непрозрачный идентификатор
// и ссылка для перенаправления пользователя на оплату.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
