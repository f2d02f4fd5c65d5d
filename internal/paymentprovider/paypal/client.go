// Package paypal реализует клиент PayPal Orders API v2:
// получение OAuth2 токена, запрос и подтверждение заказов.
package paypal

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Ошибки клиента PayPal.
var (
	// ErrOrderNotFound возвращается, если заказ не найден в PayPal.
	ErrOrderNotFound = errors.New("order not found")
	// ErrProvider возвращается при прочих ошибках PayPal API.
	ErrProvider = errors.New("payment provider error")
)

// Client — клиент PayPal REST API.
type Client struct {
	clientID   string
	secretKey  string
	apiURL     string
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient создаёт новый клиент PayPal.
// apiURL — базовый адрес API (sandbox или production).
func NewClient(clientID, secretKey, apiURL string) *Client {
	return &Client{
		clientID:   clientID,
		secretKey:  secretKey,
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// getAccessToken возвращает действующий OAuth2 токен,
// запрашивая новый, если текущий истёк.
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	const op = "paypal.getAccessToken"

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.secretKey))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status %s: %w", op, resp.Status, ErrProvider)
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	c.accessToken = tokenResp.AccessToken
	// обновляем токен за минуту до фактического истечения
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn-60) * time.Second)

	return c.accessToken, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// GetOrder возвращает заказ PayPal по его идентификатору.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	const op = "paypal.GetOrder"

	req, err := c.newRequest(ctx, http.MethodGet, "/v2/checkout/orders/"+orderID, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", op, ErrOrderNotFound)
	case resp.StatusCode != http.StatusOK:
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, fmt.Errorf("%s: %s %s: %w", op, resp.Status, errResp.Message, ErrProvider)
	}

	var order OrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &order, nil
}

// CaptureOrder подтверждает (захватывает) одобренный заказ PayPal.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	const op = "paypal.CaptureOrder"

	req, err := c.newRequest(ctx, http.MethodPost, "/v2/checkout/orders/"+orderID+"/capture", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", op, ErrOrderNotFound)
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, fmt.Errorf("%s: %s %s: %w", op, resp.Status, errResp.Message, ErrProvider)
	}

	var order OrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &order, nil
}
