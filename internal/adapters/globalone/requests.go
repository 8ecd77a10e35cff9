package globalone

import (
	"github.com/kevin07696/globalonepay/internal/adapters/ports"
)

const (
	// DefaultTerminalType is sent when PaymentOptions.TerminalType is empty
	DefaultTerminalType = "2"
	// DefaultTransactionType is sent when PaymentOptions.TransactionType is empty
	DefaultTransactionType = "7"
	// UnknownRefundValue fills a missing refund operator or reason
	UnknownRefundValue = "UNKNOWN"
	// SecureCardType replaces the card brand when paying with a stored card
	SecureCardType = "SECURECARD"
)

// The builders below are pure: credentials, request data and the formatted DATETIME in,
// ordered document out. The same dateTime string is hashed and sent.

// BuildRegisterRequest builds a SECURECARDREGISTRATION document
func BuildRegisterRequest(c Credentials, data *ports.RegisterCardRequest, dateTime string) *Request {
	hash := registerHash(c, data.MerchantRef, dateTime, data.CardNumber, data.CardExpiry, data.CardType, data.CardHolderName)

	req := newRequest(rootRegister, 9)
	req.add("MERCHANTREF", data.MerchantRef)
	req.add("TERMINALID", c.TerminalID)
	req.add("DATETIME", dateTime)
	req.add("CARDNUMBER", data.CardNumber)
	req.add("CARDEXPIRY", data.CardExpiry)
	req.add("CARDTYPE", data.CardType)
	req.add("CARDHOLDERNAME", data.CardHolderName)
	req.add("HASH", hash)
	req.addIfPresent("CVV", data.CVV)
	return req
}

// BuildUnregisterRequest builds a SECURECARDREMOVAL document
func BuildUnregisterRequest(c Credentials, data *ports.UnregisterCardRequest, dateTime string) *Request {
	hash := unregisterHash(c, data.MerchantRef, dateTime, data.Reference)

	req := newRequest(rootUnregister, 5)
	req.add("MERCHANTREF", data.MerchantRef)
	req.add("CARDREFERENCE", data.Reference)
	req.add("TERMINALID", c.TerminalID)
	req.add("DATETIME", dateTime)
	req.add("HASH", hash)
	return req
}

// BuildPaymentRequest builds a PAYMENT document for a card payment.
// opts must already carry its defaults (see paymentOptionsWithDefaults).
func BuildPaymentRequest(c Credentials, data *ports.PaymentRequest, opts ports.PaymentOptions, dateTime string) *Request {
	hash := paymentHash(c, data.OrderID, data.Currency, data.Amount, dateTime)

	req := newRequest(rootPayment, 22)
	req.add("ORDERID", data.OrderID)
	req.add("TERMINALID", c.TerminalID)
	req.add("AMOUNT", data.Amount)
	req.add("DATETIME", dateTime)
	req.add("CARDNUMBER", data.CardNumber)
	req.add("CARDTYPE", data.CardType)
	req.add("CARDEXPIRY", data.CardExpiry)
	req.add("CARDHOLDERNAME", data.CardHolderName)
	req.add("HASH", hash)
	req.add("CURRENCY", data.Currency)
	req.add("TERMINALTYPE", opts.TerminalType)
	req.add("TRANSACTIONTYPE", opts.TransactionType)

	req.addIfPresent("CVV", data.CVV)
	req.addIfPresent("POSTCODE", data.CustomerPostcode)
	req.addIfPresent("CITY", data.CustomerCity)
	req.addIfPresent("REGION", data.CustomerRegion)
	req.addIfPresent("COUNTRY", data.CustomerCountry)
	req.addIfPresent("ADDRESS1", data.CustomerAddress1)
	req.addIfPresent("ADDRESS2", data.CustomerAddress2)
	req.addIfPresent("PHONE", data.CustomerPhone)
	req.addIfPresent("DESCRIPTION", data.Description)
	req.addIfPresent("IPADDRESS", data.IPAddress)
	return req
}

// BuildStoredCardPaymentRequest builds a PAYMENT document for a registered card
func BuildStoredCardPaymentRequest(c Credentials, data *ports.StoredCardPaymentRequest, opts ports.PaymentOptions, dateTime string) *Request {
	hash := paymentHash(c, data.OrderID, data.Currency, data.Amount, dateTime)

	req := newRequest(rootPayment, 10)
	req.add("ORDERID", data.OrderID)
	req.add("TERMINALID", c.TerminalID)
	req.add("AMOUNT", data.Amount)
	req.add("DATETIME", dateTime)
	req.add("CARDNUMBER", data.CardReference)
	req.add("CARDTYPE", SecureCardType)
	req.add("HASH", hash)
	req.add("CURRENCY", data.Currency)
	req.add("TERMINALTYPE", opts.TerminalType)
	req.add("TRANSACTIONTYPE", opts.TransactionType)
	return req
}

// BuildRefundRequest builds a REFUND document.
// opts must already carry its defaults (see refundOptionsWithDefaults).
func BuildRefundRequest(c Credentials, data *ports.RefundRequest, opts ports.RefundOptions, dateTime string) *Request {
	hash := refundHash(c, data.PaymentRef, data.Amount, dateTime)

	req := newRequest(rootRefund, 7)
	req.add("UNIQUEREF", data.PaymentRef)
	req.add("TERMINALID", c.TerminalID)
	req.add("AMOUNT", data.Amount)
	req.add("DATETIME", dateTime)
	req.add("HASH", hash)
	req.add("OPERATOR", opts.Operator)
	req.add("REASON", opts.Reason)
	return req
}

// paymentOptionsWithDefaults fills TerminalType ("2") and TransactionType ("7").
// The caller's value is never mutated.
func paymentOptionsWithDefaults(opts *ports.PaymentOptions) ports.PaymentOptions {
	var out ports.PaymentOptions
	if opts != nil {
		out = *opts
	}
	if out.TerminalType == "" {
		out.TerminalType = DefaultTerminalType
	}
	if out.TransactionType == "" {
		out.TransactionType = DefaultTransactionType
	}
	return out
}

// refundOptionsWithDefaults fills Operator and Reason with "UNKNOWN"
func refundOptionsWithDefaults(opts *ports.RefundOptions) ports.RefundOptions {
	var out ports.RefundOptions
	if opts != nil {
		out = *opts
	}
	if out.Operator == "" {
		out.Operator = UnknownRefundValue
	}
	if out.Reason == "" {
		out.Reason = UnknownRefundValue
	}
	return out
}
