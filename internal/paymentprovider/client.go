package paymentprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Client — клиент API платёжного процессора. Ключ передаётся явно при
// создании и нигде не хранится как глобальное состояние процесса.
type Client struct {
	apiKey     string
	apiURL     string
	successURL string
	httpClient *http.Client
}

// NewClient создаёт новый клиент платёжного процессора.
func NewClient(apiKey, apiURL, successURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		apiURL:     apiURL,
		successURL: successURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errors.New("unexpected status: " + resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

// CreatePrice создаёт объект цены на указанную сумму в минорных единицах.
func (c *Client) CreatePrice(ctx context.Context, unitAmount int64) (*Price, error) {
	reqParams := CreatePriceRequest{
		Currency:   "usd",
		UnitAmount: unitAmount,
	}
	reqParams.Product.Name = "Payment course"

	req, err := c.newRequest(ctx, http.MethodPost, "/prices", reqParams)
	if err != nil {
		return nil, err
	}

	var price Price
	if err := c.do(req, &price); err != nil {
		return nil, err
	}
	return &price, nil
}

// CreateCheckoutSession создаёт чекаут-сессию по объекту цены и возвращает
// её идентификатор и ссылку на страницу оплаты.
func (c *Client) CreateCheckoutSession(ctx context.Context, priceID string) (*Session, error) {
	reqParams := CreateSessionRequest{
		SuccessURL: c.successURL,
		Mode:       "payment",
		LineItems: []LineItem{
			{Price: priceID, Quantity: 1},
		},
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/checkout/sessions", reqParams)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
