package payment

// Session is the gateway-agnostic view of a hosted checkout session.
type Session struct {
	ID            string
	URL           string
	PaymentStatus string
}

// SessionParams carries everything a gateway needs to open a checkout
// session. Amounts are in minor units (cents) as processors expect.
type SessionParams struct {
	CustomerEmail string
	Description   string
	AmountMinor   int64
	SuccessURL    string
	CancelURL     string
}

// Gateway abstracts the payment processor so the reconciler can be tested
// without network calls.
type Gateway interface {
	CreateSession(p SessionParams) (Session, error)
	RetrieveSession(id string) (Session, error)
}
