package globalone

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kevin07696/globalonepay/internal/adapters/ports"
	pkgerrors "github.com/kevin07696/globalonepay/pkg/errors"
	pkghttp "github.com/kevin07696/globalonepay/pkg/http"
	"github.com/kevin07696/globalonepay/pkg/observability"
	"github.com/kevin07696/globalonepay/pkg/timeutil"
	"go.uber.org/zap"
)

// Operation names used in logs, metrics and TransportError.Op
const (
	opRegister      = "register"
	opUnregister    = "unregister"
	opPay           = "pay"
	opPayRegistered = "pay_registered"
	opRefund        = "refund"
)

// Adapter implements ports.GlobalOneAdapter.
// It holds no mutable state and is safe for concurrent use.
type Adapter struct {
	config     Config
	endpoint   string
	httpClient ports.HTTPClient
	logger     *zap.Logger
	now        func() time.Time
}

var _ ports.GlobalOneAdapter = (*Adapter)(nil)

// NewAdapter creates a GlobalOne adapter with dependency injection.
// No network call is made.
func NewAdapter(cfg Config, httpClient ports.HTTPClient, logger *zap.Logger) (*Adapter, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	endpoint, err := cfg.endpoint()
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		return nil, pkgerrors.NewValidationError("httpClient", "is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("GlobalOne adapter initialized",
		zap.String("endpoint", endpoint),
		zap.String("terminal_id", cfg.TerminalID),
		zap.String("merchant_code", cfg.MerchantCode),
		zap.Bool("multi_currency", cfg.MultiCurrency),
	)

	return &Adapter{
		config:     cfg,
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger,
		now:        timeutil.Now,
	}, nil
}

// NewAdapterWithDefaults creates a GlobalOne adapter with the gateway HTTP client from pkg/http
func NewAdapterWithDefaults(cfg Config, logger *zap.Logger) (*Adapter, error) {
	client := pkghttp.NewHTTPClient(pkghttp.GatewayClientConfig(cfg.Timeout))
	return NewAdapter(cfg, client, logger)
}

// Endpoint returns the resolved URL requests are posted to
func (a *Adapter) Endpoint() string {
	return a.endpoint
}

// Register stores a card with the gateway and returns its CARDREFERENCE
func (a *Adapter) Register(ctx context.Context, data *ports.RegisterCardRequest) (*ports.Registration, error) {
	if err := validateRegister(data); err != nil {
		return nil, err
	}

	registeredAt := a.now()
	req := BuildRegisterRequest(a.config.Credentials, data, timeutil.FormatGatewayTimestamp(registeredAt))

	resp, elapsed, err := a.send(ctx, opRegister, req,
		zap.String("merchant_ref", data.MerchantRef),
		zap.String("card_number", MaskCardNumber(data.CardNumber)),
		zap.String("card_type", data.CardType),
	)
	if err != nil {
		return nil, err
	}

	registration, err := a.mapRegistration(data, resp, registeredAt)
	if err != nil {
		return nil, a.malformed(opRegister, resp, elapsed, err)
	}

	observability.RecordGatewayRequest(opRegister, observability.OutcomeSuccess, elapsed)
	a.logger.Info("Card registered with GlobalOne",
		zap.String("merchant_ref", data.MerchantRef),
		zap.String("card_reference", registration.Reference),
	)
	return registration, nil
}

// Unregister removes a stored card
func (a *Adapter) Unregister(ctx context.Context, data *ports.UnregisterCardRequest) (*ports.Unregistration, error) {
	if err := validateUnregister(data); err != nil {
		return nil, err
	}

	req := BuildUnregisterRequest(a.config.Credentials, data, timeutil.FormatGatewayTimestamp(a.now()))

	resp, elapsed, err := a.send(ctx, opUnregister, req,
		zap.String("merchant_ref", data.MerchantRef),
		zap.String("card_reference", data.Reference),
	)
	if err != nil {
		return nil, err
	}

	unregistration, err := a.mapUnregistration(data, resp)
	if err != nil {
		return nil, a.malformed(opUnregister, resp, elapsed, err)
	}

	observability.RecordGatewayRequest(opUnregister, observability.OutcomeSuccess, elapsed)
	a.logger.Info("Card unregistered from GlobalOne",
		zap.String("merchant_ref", data.MerchantRef),
		zap.String("card_reference", data.Reference),
	)
	return unregistration, nil
}

// Pay charges a card directly
func (a *Adapter) Pay(ctx context.Context, data *ports.PaymentRequest, opts *ports.PaymentOptions) (*ports.Transaction, error) {
	if err := validatePayment(data); err != nil {
		return nil, err
	}

	options := paymentOptionsWithDefaults(opts)
	paidAt := a.now()
	req := BuildPaymentRequest(a.config.Credentials, data, options, timeutil.FormatGatewayTimestamp(paidAt))

	maskedCard := MaskCardNumber(data.CardNumber)
	resp, elapsed, err := a.send(ctx, opPay, req,
		zap.String("order_id", data.OrderID),
		zap.String("amount", data.Amount),
		zap.String("currency", data.Currency),
		zap.String("card_number", maskedCard),
		zap.String("transaction_type", options.TransactionType),
	)
	if err != nil {
		return nil, err
	}

	txn, err := a.mapPayment(opPay, data.OrderID, data.Amount, data.Currency, maskedCard, options, paidAt, resp)
	if err != nil {
		return nil, a.malformed(opPay, resp, elapsed, err)
	}

	a.recordTransaction(opPay, txn, elapsed)
	return txn, nil
}

// PayRegistered charges a card stored with Register
func (a *Adapter) PayRegistered(ctx context.Context, data *ports.StoredCardPaymentRequest, opts *ports.PaymentOptions) (*ports.Transaction, error) {
	if err := validateStoredCardPayment(data); err != nil {
		return nil, err
	}

	options := paymentOptionsWithDefaults(opts)
	paidAt := a.now()
	req := BuildStoredCardPaymentRequest(a.config.Credentials, data, options, timeutil.FormatGatewayTimestamp(paidAt))

	resp, elapsed, err := a.send(ctx, opPayRegistered, req,
		zap.String("order_id", data.OrderID),
		zap.String("amount", data.Amount),
		zap.String("currency", data.Currency),
		zap.String("card_reference", data.CardReference),
	)
	if err != nil {
		return nil, err
	}

	// A stored-card reference is not a PAN and is returned as is
	txn, err := a.mapPayment(opPayRegistered, data.OrderID, data.Amount, data.Currency, data.CardReference, options, paidAt, resp)
	if err != nil {
		return nil, a.malformed(opPayRegistered, resp, elapsed, err)
	}

	a.recordTransaction(opPayRegistered, txn, elapsed)
	return txn, nil
}

// Refund returns (part of) a previous payment identified by its UNIQUEREF
func (a *Adapter) Refund(ctx context.Context, data *ports.RefundRequest, opts *ports.RefundOptions) (*ports.Transaction, error) {
	if err := validateRefund(data); err != nil {
		return nil, err
	}

	options := refundOptionsWithDefaults(opts)
	refundedAt := a.now()
	req := BuildRefundRequest(a.config.Credentials, data, options, timeutil.FormatGatewayTimestamp(refundedAt))

	resp, elapsed, err := a.send(ctx, opRefund, req,
		zap.String("payment_ref", data.PaymentRef),
		zap.String("amount", data.Amount),
		zap.String("operator", options.Operator),
	)
	if err != nil {
		return nil, err
	}

	txn, err := a.mapRefund(data, options, refundedAt, resp)
	if err != nil {
		return nil, a.malformed(opRefund, resp, elapsed, err)
	}

	a.recordTransaction(opRefund, txn, elapsed)
	return txn, nil
}

// send posts one request and classifies the outcome.
// ERROR documents become *GatewayError; everything that prevents reading a document becomes *TransportError.
// Success is recorded by the caller once the document has been mapped.
func (a *Adapter) send(ctx context.Context, op string, req *Request, fields ...zap.Field) (*ports.GatewayResponse, time.Duration, error) {
	if err := validateEncodable(req); err != nil {
		return nil, 0, err
	}

	a.logger.Info("Sending GlobalOne request",
		append([]zap.Field{
			zap.String("operation", op),
			zap.String("root", req.Root),
			zap.String("terminal_id", a.config.TerminalID),
		}, fields...)...,
	)

	startTime := time.Now()
	resp, statusCode, err := a.roundTrip(ctx, req)
	elapsed := time.Since(startTime)
	if err != nil {
		a.logger.Error("GlobalOne request failed",
			zap.String("operation", op),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		observability.RecordGatewayRequest(op, observability.OutcomeTransportError, elapsed)
		return nil, elapsed, pkgerrors.NewTransportError(op, err)
	}

	a.logger.Info("Received GlobalOne response",
		zap.String("operation", op),
		zap.String("root", resp.Root),
		zap.Int("status_code", statusCode),
		zap.Duration("elapsed", elapsed),
		zap.Int("body_length", len(resp.Raw)),
	)
	a.logger.Debug("GlobalOne response body",
		zap.String("operation", op),
		zap.String("response_body", resp.Raw),
	)

	if gwErr := gatewayError(resp); gwErr != nil {
		a.logger.Warn("GlobalOne returned an error document",
			zap.String("operation", op),
			zap.String("error_code", gwErr.Code),
			zap.String("error_string", gwErr.Message),
		)
		observability.RecordGatewayRequest(op, observability.OutcomeGatewayError, elapsed)
		observability.RecordGatewayError(op, gwErr.Code)
		return nil, elapsed, gwErr
	}

	return resp, elapsed, nil
}

// roundTrip encodes, posts and decodes one document. The HTTP status is not interpreted:
// the gateway reports failures in the body.
func (a *Adapter) roundTrip(ctx context.Context, req *Request) (*ports.GatewayResponse, int, error) {
	body, err := req.Encode()
	if err != nil {
		return nil, 0, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/xml")

	httpResp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	resp, err := parseResponse(respBody)
	if err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("failed to parse response (status %d): %w", httpResp.StatusCode, err)
	}
	return resp, httpResp.StatusCode, nil
}

// malformed reports a success document that cannot be mapped
func (a *Adapter) malformed(op string, resp *ports.GatewayResponse, elapsed time.Duration, err error) error {
	a.logger.Error("Malformed GlobalOne response",
		zap.String("operation", op),
		zap.String("root", resp.Root),
		zap.Error(err),
	)
	observability.RecordGatewayRequest(op, observability.OutcomeTransportError, elapsed)
	return pkgerrors.NewTransportError(op, err)
}

func (a *Adapter) recordTransaction(op string, txn *ports.Transaction, elapsed time.Duration) {
	observability.RecordGatewayRequest(op, observability.OutcomeSuccess, elapsed)
	a.logger.Info("GlobalOne transaction processed",
		zap.String("operation", op),
		zap.String("unique_ref", txn.ProviderReference),
		zap.String("response_code", txn.ResponseCode),
		zap.String("response_text", txn.ResponseText),
		zap.Bool("approved", txn.Approved),
	)
	observability.RecordTransaction(string(txn.Action), txn.ResponseCode, txn.Currency, txn.Approved, amountCents(txn.Amount))
}
