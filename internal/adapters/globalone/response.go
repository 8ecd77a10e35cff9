package globalone

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/kevin07696/globalonepay/internal/adapters/ports"
	pkgerrors "github.com/kevin07696/globalonepay/pkg/errors"
)

// Response root elements
const (
	rootError              = "ERROR"
	rootRegisterResponse   = "SECURECARDREGISTRATIONRESPONSE"
	rootUnregisterResponse = "SECURECARDREMOVALRESPONSE"
	rootPaymentResponse    = "PAYMENTRESPONSE"
	rootRefundResponse     = "REFUNDRESPONSE"
)

// xmlDocument captures any flat gateway document: the root name plus its child elements
type xmlDocument struct {
	XMLName xml.Name
	Fields  []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// parseResponse decodes a gateway body into root name and fields.
// The first occurrence of a repeated field wins.
func parseResponse(body []byte) (*ports.GatewayResponse, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal XML: %w", err)
	}

	fields := make(map[string]string, len(doc.Fields))
	for _, f := range doc.Fields {
		if _, seen := fields[f.XMLName.Local]; seen {
			continue
		}
		fields[f.XMLName.Local] = strings.TrimSpace(f.Value)
	}

	return &ports.GatewayResponse{
		Root:   doc.XMLName.Local,
		Fields: fields,
		Raw:    string(body),
	}, nil
}

// gatewayError returns a *GatewayError when resp is an ERROR document, nil otherwise
func gatewayError(resp *ports.GatewayResponse) *pkgerrors.GatewayError {
	if resp.Root != rootError {
		return nil
	}
	return pkgerrors.NewGatewayError(resp.Fields["ERRORCODE"], resp.Fields["ERRORSTRING"])
}

// expectRoot rejects a success document of the wrong kind
func expectRoot(resp *ports.GatewayResponse, root string) error {
	if resp.Root != root {
		return fmt.Errorf("unexpected response root %q, want %q", resp.Root, root)
	}
	return nil
}

// requireFields returns the named values, failing on the first one that is missing or empty
func requireFields(resp *ports.GatewayResponse, names ...string) ([]string, error) {
	values := make([]string, len(names))
	for i, name := range names {
		v := resp.Fields[name]
		if v == "" {
			return nil, fmt.Errorf("%s.%s is missing from response", resp.Root, name)
		}
		values[i] = v
	}
	return values, nil
}
