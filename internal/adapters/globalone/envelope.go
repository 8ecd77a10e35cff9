package globalone

import (
	"encoding/xml"
	"fmt"

	"github.com/kevin07696/globalonepay/pkg/encoding"
)

// Request root elements
const (
	rootRegister   = "SECURECARDREGISTRATION"
	rootUnregister = "SECURECARDREMOVAL"
	rootPayment    = "PAYMENT"
	rootRefund     = "REFUND"
)

// Field is one flat child element of a request document
type Field struct {
	Name  string
	Value string
}

// Request is an ordered gateway request document.
// The gateway validates the hash against fields in the order sent, so Fields is never reordered.
type Request struct {
	Root   string
	Fields []Field
}

func newRequest(root string, capacity int) *Request {
	return &Request{Root: root, Fields: make([]Field, 0, capacity)}
}

func (r *Request) add(name, value string) {
	r.Fields = append(r.Fields, Field{Name: name, Value: value})
}

// addIfPresent skips empty values: optional fields are omitted, never sent empty
func (r *Request) addIfPresent(name, value string) {
	if value != "" {
		r.add(name, value)
	}
}

// Value returns the first field with the given name
func (r *Request) Value(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Names returns the field names in document order
func (r *Request) Names() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

// Encode renders the document with an XML declaration and one child element per field
func (r *Request) Encode() ([]byte, error) {
	buf := encoding.GetBuffer()
	defer encoding.PutBuffer(buf)
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(buf)
	root := xml.StartElement{Name: xml.Name{Local: r.Root}}
	if err := enc.EncodeToken(root); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", r.Root, err)
	}
	for _, f := range r.Fields {
		if err := enc.EncodeElement(f.Value, xml.StartElement{Name: xml.Name{Local: f.Name}}); err != nil {
			return nil, fmt.Errorf("failed to encode %s.%s: %w", r.Root, f.Name, err)
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", r.Root, err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush %s: %w", r.Root, err)
	}
	return encoding.CopyBytes(buf), nil
}
