package globalone

import (
	"time"

	"github.com/kevin07696/globalonepay/internal/adapters/ports"
	"github.com/kevin07696/globalonepay/pkg/timeutil"
	"go.uber.org/zap"
)

// approvedResponseCode marks an approved payment or refund
const approvedResponseCode = "A"

// MaskCardNumber replaces everything but the last four characters with ten asterisks
func MaskCardNumber(cardNumber string) string {
	if len(cardNumber) < 4 {
		return "**********" + cardNumber
	}
	return "**********" + cardNumber[len(cardNumber)-4:]
}

// optionalString returns nil for an empty value
func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// providerTime parses a response DATETIME. An unparsable value is logged and left zero.
func (a *Adapter) providerTime(op, value string, parse func(string) (time.Time, error)) time.Time {
	t, err := parse(value)
	if err != nil {
		a.logger.Warn("Unparsable DATETIME in GlobalOne response",
			zap.String("operation", op),
			zap.String("datetime", value),
			zap.Error(err),
		)
		return time.Time{}
	}
	return t
}

func (a *Adapter) mapRegistration(data *ports.RegisterCardRequest, resp *ports.GatewayResponse, registeredAt time.Time) (*ports.Registration, error) {
	if err := expectRoot(resp, rootRegisterResponse); err != nil {
		return nil, err
	}
	values, err := requireFields(resp, "CARDREFERENCE")
	if err != nil {
		return nil, err
	}

	return &ports.Registration{
		Reference:         values[0],
		CardHolderName:    data.CardHolderName,
		CardExpiry:        data.CardExpiry,
		CardNumber:        MaskCardNumber(data.CardNumber),
		RegisteredAt:      registeredAt,
		ProviderTimestamp: a.providerTime(opRegister, resp.Fields["DATETIME"], timeutil.ParseGatewayTimestamp),
		RespondedAt:       a.now(),
		Active:            true,
		ServiceProvider:   ServiceProviderName,
		OriginalResponse:  *resp,
	}, nil
}

func (a *Adapter) mapUnregistration(data *ports.UnregisterCardRequest, resp *ports.GatewayResponse) (*ports.Unregistration, error) {
	if err := expectRoot(resp, rootUnregisterResponse); err != nil {
		return nil, err
	}

	return &ports.Unregistration{
		Reference:         data.Reference,
		ProviderTimestamp: a.providerTime(opUnregister, resp.Fields["DATETIME"], timeutil.ParseGatewayTimestamp),
		RespondedAt:       a.now(),
		Active:            false,
		ServiceProvider:   ServiceProviderName,
		OriginalResponse:  *resp,
	}, nil
}

// mapPayment maps a PAYMENTRESPONSE; cardNumber is already masked (or a stored-card reference)
func (a *Adapter) mapPayment(op, orderID, amount, currency, cardNumber string, opts ports.PaymentOptions, paidAt time.Time, resp *ports.GatewayResponse) (*ports.Transaction, error) {
	if err := expectRoot(resp, rootPaymentResponse); err != nil {
		return nil, err
	}
	values, err := requireFields(resp, "UNIQUEREF", "RESPONSECODE")
	if err != nil {
		return nil, err
	}
	responseCode := values[1]

	return &ports.Transaction{
		Action:            ports.TransactionActionPay,
		OrderID:           orderID,
		Amount:            amount,
		Currency:          currency,
		CardNumber:        cardNumber,
		PaidAt:            paidAt,
		PaymentOptions:    &opts,
		ProviderReference: values[0],
		ProviderTimestamp: a.providerTime(op, resp.Fields["DATETIME"], timeutil.ParsePaymentTimestamp),
		Approved:          responseCode == approvedResponseCode,
		ResponseCode:      responseCode,
		ResponseText:      resp.Fields["RESPONSETEXT"],
		ApprovalCode:      optionalString(resp.Fields["APPROVALCODE"]),
		BankResponseCode:  resp.Fields["BANKRESPONSECODE"],
		RespondedAt:       a.now(),
		ServiceProvider:   ServiceProviderName,
		OriginalResponse:  *resp,
	}, nil
}

func (a *Adapter) mapRefund(data *ports.RefundRequest, opts ports.RefundOptions, refundedAt time.Time, resp *ports.GatewayResponse) (*ports.Transaction, error) {
	if err := expectRoot(resp, rootRefundResponse); err != nil {
		return nil, err
	}
	values, err := requireFields(resp, "UNIQUEREF", "RESPONSECODE")
	if err != nil {
		return nil, err
	}
	responseCode := values[1]

	return &ports.Transaction{
		Action:            ports.TransactionActionRefund,
		PayReference:      data.PaymentRef,
		Amount:            data.Amount,
		Currency:          data.Currency,
		PaidAt:            refundedAt,
		RefundOptions:     &opts,
		ProviderReference: values[0],
		ProviderTimestamp: a.providerTime(opRefund, resp.Fields["DATETIME"], timeutil.ParseGatewayTimestamp),
		Approved:          responseCode == approvedResponseCode,
		ResponseCode:      responseCode,
		ResponseText:      resp.Fields["RESPONSETEXT"],
		RespondedAt:       a.now(),
		ServiceProvider:   ServiceProviderName,
		OriginalResponse:  *resp,
	}, nil
}
