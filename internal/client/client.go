// Package client is a typed Go client for the orderdesk HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"orderdesk/internal/api"
	"orderdesk/internal/models"
	"orderdesk/internal/wizard"
)

// APIError is a non-2xx answer from the server. Validation failures carry
// the wizard error code, so errors.Is matches the wizard sentinels.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Code       string `json:"code"`
	Prompt     string `json:"prompt"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, e.Code)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Is matches validation sentinels by code.
func (e *APIError) Is(target error) bool {
	var v *wizard.ValidationError
	if errors.As(target, &v) {
		return e.Code != "" && e.Code == v.Code
	}
	return false
}

// Client handles requests to the orderdesk API
type Client struct {
	httpClient *http.Client
	BaseURL    string
}

// New creates a client for the server at baseURL
func New(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
	}
}

// CheckHealth checks if the API is up and running
func (c *Client) CheckHealth(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// Categories lists the catalog categories, All first
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := c.do(ctx, http.MethodGet, "/api/v1/categories", nil, &out)
	return out, err
}

// Products lists the catalog filtered by category and a name search
func (c *Client) Products(ctx context.Context, category models.Category, search string) ([]models.Product, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", string(category))
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/api/v1/catalog"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []models.Product
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) CreateSession(ctx context.Context) (*api.SessionView, error) {
	return c.session(ctx, http.MethodPost, "/api/v1/sessions", nil)
}

func (c *Client) GetSession(ctx context.Context, id string) (*api.SessionView, error) {
	return c.session(ctx, http.MethodGet, sessionPath(id, ""), nil)
}

func (c *Client) CloseSession(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, sessionPath(id, ""), nil, nil)
}

func (c *Client) AddItem(ctx context.Context, id string, productID int) (*api.SessionView, error) {
	body := map[string]int{"product_id": productID}
	return c.session(ctx, http.MethodPost, sessionPath(id, "/cart/items"), body)
}

func (c *Client) DecrementItem(ctx context.Context, id string, productID int) (*api.SessionView, error) {
	return c.session(ctx, http.MethodPost, sessionPath(id, "/cart/items/"+strconv.Itoa(productID)+"/decrement"), nil)
}

func (c *Client) DeleteItem(ctx context.Context, id string, productID int) (*api.SessionView, error) {
	return c.session(ctx, http.MethodDelete, sessionPath(id, "/cart/items/"+strconv.Itoa(productID)), nil)
}

// UpdateCustomer sets the customer name and order type together
func (c *Client) UpdateCustomer(ctx context.Context, id, name string, orderType wizard.OrderType) (*api.SessionView, error) {
	body := map[string]string{"customer_name": name, "order_type": string(orderType)}
	return c.session(ctx, http.MethodPut, sessionPath(id, "/customer"), body)
}

func (c *Client) ChoosePayment(ctx context.Context, id string, option wizard.PaymentOption) (*api.SessionView, error) {
	body := map[string]string{"payment_option": string(option)}
	return c.session(ctx, http.MethodPost, sessionPath(id, "/payment"), body)
}

func (c *Client) SetAmount(ctx context.Context, id, amount string) (*api.SessionView, error) {
	body := map[string]string{"amount_received": amount}
	return c.session(ctx, http.MethodPut, sessionPath(id, "/amount"), body)
}

func (c *Client) Advance(ctx context.Context, id string) (*api.SessionView, error) {
	return c.session(ctx, http.MethodPost, sessionPath(id, "/advance"), nil)
}

func (c *Client) Retreat(ctx context.Context, id string) (*api.SessionView, error) {
	return c.session(ctx, http.MethodPost, sessionPath(id, "/retreat"), nil)
}

func (c *Client) Reset(ctx context.Context, id string) (*api.SessionView, error) {
	return c.session(ctx, http.MethodPost, sessionPath(id, "/reset"), nil)
}

// Receipt fetches the receipt of a completed order
func (c *Client) Receipt(ctx context.Context, id string) (*wizard.Receipt, error) {
	var r wizard.Receipt
	if err := c.do(ctx, http.MethodGet, sessionPath(id, "/receipt"), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) session(ctx context.Context, method, path string, body interface{}) (*api.SessionView, error) {
	var v api.SessionView
	if err := c.do(ctx, method, path, body, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		data, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = string(data)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func sessionPath(id, rest string) string {
	return "/api/v1/sessions/" + url.PathEscape(id) + rest
}
