package globalone

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// HashData returns the lowercase hex MD5 of the values joined without separator.
// Callers pass the per-operation field values in gateway order, ending with the shared secret.
func HashData(parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, "")))
	return hex.EncodeToString(sum[:])
}

func registerHash(c Credentials, merchantRef, dateTime, cardNumber, cardExpiry, cardType, cardHolderName string) string {
	return HashData(c.TerminalID, merchantRef, dateTime, cardNumber, cardExpiry, cardType, cardHolderName, c.SharedSecret)
}

func unregisterHash(c Credentials, merchantRef, dateTime, reference string) string {
	return HashData(c.TerminalID, merchantRef, dateTime, reference, c.SharedSecret)
}

// paymentHash only includes the currency for multi-currency terminals.
// The gateway recomputes the hash the same way, so getting this wrong yields E13 INVALID HASH.
func paymentHash(c Credentials, orderID, currency, amount, dateTime string) string {
	hashedCurrency := ""
	if c.MultiCurrency {
		hashedCurrency = currency
	}
	return HashData(c.TerminalID, orderID, hashedCurrency, amount, dateTime, c.SharedSecret)
}

func refundHash(c Credentials, paymentRef, amount, dateTime string) string {
	return HashData(c.TerminalID, paymentRef, amount, dateTime, c.SharedSecret)
}
