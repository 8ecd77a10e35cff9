package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kevin07696/globalonepay/internal/adapters/ports"
)

// cliArgs holds the request fields of every action. A JSON file may supply them
// with the same names; non-empty flags win.
type cliArgs struct {
	MerchantRef     string `json:"merchant_ref"`
	Reference       string `json:"reference"`
	OrderID         string `json:"order_id"`
	PaymentRef      string `json:"payment_ref"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	CardNumber      string `json:"card_number"`
	CardExpiry      string `json:"card_expiry"`
	CardType        string `json:"card_type"`
	CardHolderName  string `json:"card_holder"`
	CVV             string `json:"cvv"`
	TransactionType string `json:"transaction_type"`
	Operator        string `json:"operator"`
	Reason          string `json:"reason"`
	JSONFile        string `json:"-"`
}

func (a *cliArgs) mergeJSONFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fromFile cliArgs
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&a.MerchantRef, fromFile.MerchantRef)
	fill(&a.Reference, fromFile.Reference)
	fill(&a.OrderID, fromFile.OrderID)
	fill(&a.PaymentRef, fromFile.PaymentRef)
	fill(&a.Amount, fromFile.Amount)
	fill(&a.Currency, fromFile.Currency)
	fill(&a.CardNumber, fromFile.CardNumber)
	fill(&a.CardExpiry, fromFile.CardExpiry)
	fill(&a.CardType, fromFile.CardType)
	fill(&a.CardHolderName, fromFile.CardHolderName)
	fill(&a.CVV, fromFile.CVV)
	fill(&a.TransactionType, fromFile.TransactionType)
	fill(&a.Operator, fromFile.Operator)
	fill(&a.Reason, fromFile.Reason)
	return nil
}

// GlobalOneCLI runs a single gateway action and prints the result as JSON
type GlobalOneCLI struct {
	adapter ports.GlobalOneAdapter
	out     io.Writer
}

func (cli *GlobalOneCLI) run(ctx context.Context, action string, args cliArgs) error {
	var (
		result interface{}
		err    error
	)

	switch action {
	case "register":
		result, err = cli.register(ctx, args)
	case "unregister":
		result, err = cli.adapter.Unregister(ctx, &ports.UnregisterCardRequest{
			MerchantRef: args.MerchantRef,
			Reference:   args.Reference,
		})
	case "pay":
		result, err = cli.pay(ctx, args)
	case "pay-registered":
		result, err = cli.payRegistered(ctx, args)
	case "refund":
		result, err = cli.refund(ctx, args)
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func (cli *GlobalOneCLI) register(ctx context.Context, args cliArgs) (*ports.Registration, error) {
	merchantRef := args.MerchantRef
	if merchantRef == "" {
		merchantRef = newReference()
	}
	return cli.adapter.Register(ctx, &ports.RegisterCardRequest{
		MerchantRef:    merchantRef,
		CardNumber:     args.CardNumber,
		CardExpiry:     args.CardExpiry,
		CardType:       strings.ToUpper(args.CardType),
		CardHolderName: args.CardHolderName,
		CVV:            args.CVV,
	})
}

func (cli *GlobalOneCLI) pay(ctx context.Context, args cliArgs) (*ports.Transaction, error) {
	amount, err := normalizeAmount(args.Amount)
	if err != nil {
		return nil, err
	}
	return cli.adapter.Pay(ctx, &ports.PaymentRequest{
		OrderID:        orderID(args.OrderID),
		Amount:         amount,
		Currency:       strings.ToUpper(args.Currency),
		CardNumber:     args.CardNumber,
		CardExpiry:     args.CardExpiry,
		CardType:       strings.ToUpper(args.CardType),
		CardHolderName: args.CardHolderName,
		CVV:            args.CVV,
	}, &ports.PaymentOptions{TransactionType: args.TransactionType})
}

func (cli *GlobalOneCLI) payRegistered(ctx context.Context, args cliArgs) (*ports.Transaction, error) {
	amount, err := normalizeAmount(args.Amount)
	if err != nil {
		return nil, err
	}
	return cli.adapter.PayRegistered(ctx, &ports.StoredCardPaymentRequest{
		OrderID:       orderID(args.OrderID),
		Amount:        amount,
		Currency:      strings.ToUpper(args.Currency),
		CardReference: args.Reference,
	}, &ports.PaymentOptions{TransactionType: args.TransactionType})
}

func (cli *GlobalOneCLI) refund(ctx context.Context, args cliArgs) (*ports.Transaction, error) {
	amount, err := normalizeAmount(args.Amount)
	if err != nil {
		return nil, err
	}
	return cli.adapter.Refund(ctx, &ports.RefundRequest{
		PaymentRef: args.PaymentRef,
		Amount:     amount,
		Currency:   strings.ToUpper(args.Currency),
	}, &ports.RefundOptions{Operator: args.Operator, Reason: args.Reason})
}

// normalizeAmount renders an amount with two decimals, e.g. "10.5" becomes "10.50"
func normalizeAmount(amount string) (string, error) {
	if amount == "" {
		return "", fmt.Errorf("amount is required")
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return d.StringFixed(2), nil
}

func orderID(id string) string {
	if id != "" {
		return id
	}
	return newReference()
}

// newReference returns a 32-character hex id, short enough for gateway reference fields
func newReference() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
