package ports

import (
	"context"
	"time"
)

// TransactionAction identifies the kind of money movement recorded in a Transaction
type TransactionAction string

const (
	TransactionActionPay    TransactionAction = "pay"
	TransactionActionRefund TransactionAction = "refund"
)

// RegisterCardRequest contains the card data to store with the gateway (SECURECARDREGISTRATION)
type RegisterCardRequest struct {
	MerchantRef    string // Caller-chosen reference for the stored card (required)
	CardNumber     string // PAN (required)
	CardExpiry     string // MMYY, e.g. "0920" for September 2020 (required)
	CardType       string // Card brand, e.g. "MASTERCARD" (required)
	CardHolderName string // Name on the card (required)
	CVV            string // Optional, sent last when present
}

// UnregisterCardRequest removes a stored card (SECURECARDREMOVAL)
type UnregisterCardRequest struct {
	MerchantRef string // Reference used at registration (required)
	Reference   string // Gateway CARDREFERENCE returned at registration (required)
}

// PaymentRequest is a direct card payment (PAYMENT).
// Optional fields are only sent when non-empty.
type PaymentRequest struct {
	OrderID        string
	Amount         string // Sent and hashed verbatim, e.g. "10.50"
	Currency       string // ISO 4217 code, e.g. "EUR"
	CardNumber     string
	CardExpiry     string
	CardType       string
	CardHolderName string

	CVV              string
	CustomerPostcode string
	CustomerCity     string
	CustomerRegion   string
	CustomerCountry  string // ISO 3166-1 alpha-2
	CustomerAddress1 string
	CustomerAddress2 string
	CustomerPhone    string // International format
	Description      string
	IPAddress        string
}

// StoredCardPaymentRequest is a payment with a previously registered card
type StoredCardPaymentRequest struct {
	OrderID       string
	Amount        string
	Currency      string
	CardReference string // Gateway CARDREFERENCE, sent in the CARDNUMBER field
}

// PaymentOptions carries gateway-specific payment settings.
// Empty values are replaced by the gateway defaults before the request is built.
type PaymentOptions struct {
	TerminalType    string // Default "2"
	TransactionType string // Default "7"
}

// RefundRequest refunds (part of) a previous payment
type RefundRequest struct {
	PaymentRef string // UNIQUEREF of the original payment (required)
	Amount     string // Amount to refund (required)
	Currency   string // Not sent to the gateway; echoed into the Transaction
}

// RefundOptions describes who refunds and why.
// Empty values are replaced by "UNKNOWN" before the request is built.
type RefundOptions struct {
	Operator string
	Reason   string
}

// GatewayResponse is the verbatim gateway answer kept for audit
type GatewayResponse struct {
	Root   string            // Root element, e.g. PAYMENTRESPONSE or ERROR
	Fields map[string]string // Child elements by name
	Raw    string            // Raw XML body
}

// Registration is the normalized result of a card registration
type Registration struct {
	Reference         string // Gateway CARDREFERENCE
	CardHolderName    string
	CardExpiry        string
	CardNumber        string    // Masked PAN
	RegisteredAt      time.Time // Client-side UTC time the request was built
	ProviderTimestamp time.Time // Response DATETIME
	RespondedAt       time.Time // Client-side UTC time the response was mapped
	Active            bool
	ServiceProvider   string
	OriginalResponse  GatewayResponse
}

// Unregistration is the normalized result of a card removal
type Unregistration struct {
	Reference         string
	ProviderTimestamp time.Time
	RespondedAt       time.Time
	Active            bool
	ServiceProvider   string
	OriginalResponse  GatewayResponse
}

// Transaction is the normalized result of a payment or refund
type Transaction struct {
	Action TransactionAction

	// Echoed request data
	OrderID        string // pay only
	PayReference   string // refund only: UNIQUEREF of the refunded payment
	Amount         string
	Currency       string
	CardNumber     string // Masked PAN, or the stored-card reference verbatim
	PaidAt         time.Time
	PaymentOptions *PaymentOptions // pay only, after defaults
	RefundOptions  *RefundOptions  // refund only, after defaults

	// Gateway result
	ProviderReference string    // UNIQUEREF
	ProviderTimestamp time.Time // Response DATETIME
	Approved          bool      // RESPONSECODE == "A"
	ResponseCode      string
	ResponseText      string
	ApprovalCode      *string // nil when the gateway returns an empty APPROVALCODE
	BankResponseCode  string

	RespondedAt      time.Time
	ServiceProvider  string
	OriginalResponse GatewayResponse
}

// GlobalOneAdapter defines the port for the GlobalOne XML payment gateway.
// Every call issues exactly one request. Errors are either *errors.GatewayError (ERROR document),
// *errors.TransportError (network or decoding failure) or *errors.ValidationError (rejected
// locally before anything is sent).
type GlobalOneAdapter interface {
	Register(ctx context.Context, req *RegisterCardRequest) (*Registration, error)
	Unregister(ctx context.Context, req *UnregisterCardRequest) (*Unregistration, error)
	Pay(ctx context.Context, req *PaymentRequest, opts *PaymentOptions) (*Transaction, error)
	PayRegistered(ctx context.Context, req *StoredCardPaymentRequest, opts *PaymentOptions) (*Transaction, error)
	Refund(ctx context.Context, req *RefundRequest, opts *RefundOptions) (*Transaction, error)
}
