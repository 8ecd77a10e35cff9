package globalone

import (
	"fmt"
	"unicode/utf8"

	"github.com/kevin07696/globalonepay/internal/adapters/ports"
	pkgerrors "github.com/kevin07696/globalonepay/pkg/errors"
	"github.com/shopspring/decimal"
)

type requiredField struct {
	name  string
	value string
}

func requireAll(fields ...requiredField) error {
	for _, f := range fields {
		if f.value == "" {
			return pkgerrors.NewValidationError(f.name, "is required")
		}
	}
	return nil
}

// validateAmount checks the amount is a positive decimal.
// The original string is what gets hashed and sent; it is never reformatted.
func validateAmount(amount string) error {
	if amount == "" {
		return pkgerrors.NewValidationError("amount", "is required")
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return pkgerrors.NewValidationError("amount", "must be numeric")
	}
	if !d.IsPositive() {
		return pkgerrors.NewValidationError("amount", "must be greater than zero")
	}
	return nil
}

func validateRegister(req *ports.RegisterCardRequest) error {
	if req == nil {
		return pkgerrors.NewValidationError("request", "is required")
	}
	return requireAll(
		requiredField{"merchantRef", req.MerchantRef},
		requiredField{"cardNumber", req.CardNumber},
		requiredField{"cardExpiry", req.CardExpiry},
		requiredField{"cardType", req.CardType},
		requiredField{"cardHolderName", req.CardHolderName},
	)
}

func validateUnregister(req *ports.UnregisterCardRequest) error {
	if req == nil {
		return pkgerrors.NewValidationError("request", "is required")
	}
	return requireAll(
		requiredField{"merchantRef", req.MerchantRef},
		requiredField{"reference", req.Reference},
	)
}

func validatePayment(req *ports.PaymentRequest) error {
	if req == nil {
		return pkgerrors.NewValidationError("request", "is required")
	}
	if err := requireAll(
		requiredField{"orderId", req.OrderID},
		requiredField{"currency", req.Currency},
		requiredField{"cardNumber", req.CardNumber},
		requiredField{"cardExpiry", req.CardExpiry},
		requiredField{"cardType", req.CardType},
		requiredField{"cardHolderName", req.CardHolderName},
	); err != nil {
		return err
	}
	return validateAmount(req.Amount)
}

func validateStoredCardPayment(req *ports.StoredCardPaymentRequest) error {
	if req == nil {
		return pkgerrors.NewValidationError("request", "is required")
	}
	if err := requireAll(
		requiredField{"orderId", req.OrderID},
		requiredField{"currency", req.Currency},
		requiredField{"cardNumber", req.CardReference},
	); err != nil {
		return err
	}
	return validateAmount(req.Amount)
}

func validateRefund(req *ports.RefundRequest) error {
	if req == nil {
		return pkgerrors.NewValidationError("request", "is required")
	}
	if err := requireAll(requiredField{"paymentRef", req.PaymentRef}); err != nil {
		return err
	}
	return validateAmount(req.Amount)
}

// validateEncodable rejects values encoding/xml cannot carry verbatim.
// Every value must reach the gateway byte for byte as it was hashed.
func validateEncodable(req *Request) error {
	for _, f := range req.Fields {
		if !utf8.ValidString(f.Value) {
			return pkgerrors.NewValidationError(f.Name, "is not valid UTF-8")
		}
		for _, r := range f.Value {
			if !isXMLChar(r) {
				return pkgerrors.NewValidationError(f.Name, fmt.Sprintf("contains character %U not allowed in XML", r))
			}
		}
	}
	return nil
}

// isXMLChar reports whether r is in the XML 1.0 Char production
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

// amountCents converts a validated amount for metrics; invalid input yields 0
func amountCents(amount string) int64 {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0
	}
	return d.Shift(2).Round(0).IntPart()
}
