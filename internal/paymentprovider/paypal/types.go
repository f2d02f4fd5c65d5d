package paypal

// tokenResponse — ответ PayPal на запрос OAuth2 токена.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Amount описывает сумму заказа.
type Amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

// PurchaseUnit описывает единицу покупки в заказе.
type PurchaseUnit struct {
	ReferenceID string `json:"reference_id,omitempty"`
	Amount      Amount `json:"amount"`
}

// Payer описывает плательщика.
type Payer struct {
	EmailAddress string `json:"email_address"`
	PayerID      string `json:"payer_id"`
}

// OrderResponse — ответ PayPal по заказу (Orders API v2).
type OrderResponse struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
	Payer         *Payer         `json:"payer,omitempty"`
}

// Статусы заказа PayPal.
const (
	OrderStatusCreated   = "CREATED"
	OrderStatusApproved  = "APPROVED"
	OrderStatusCompleted = "COMPLETED"
)

// errorResponse — тело ошибки PayPal API.
type errorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}
