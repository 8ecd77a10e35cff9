package globalone

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestEncode(t *testing.T) {
	req := newRequest(rootRefund, 3)
	req.add("UNIQUEREF", "I3R9T0B7QR")
	req.add("AMOUNT", "5.00")
	req.add("REASON", "Damaged & returned <box>")

	body, err := req.Encode()

	require.NoError(t, err)
	assert.Equal(t,
		xml.Header+`<REFUND><UNIQUEREF>I3R9T0B7QR</UNIQUEREF><AMOUNT>5.00</AMOUNT><REASON>Damaged &amp; returned &lt;box&gt;</REASON></REFUND>`,
		string(body),
	)
}

func TestRequestAddIfPresent(t *testing.T) {
	req := newRequest(rootPayment, 2)
	req.addIfPresent("CITY", "")
	req.addIfPresent("COUNTRY", "ES")

	assert.Equal(t, []string{"COUNTRY"}, req.Names())

	_, ok := req.Value("CITY")
	assert.False(t, ok)
	v, ok := req.Value("COUNTRY")
	assert.True(t, ok)
	assert.Equal(t, "ES", v)
}

func TestRequestEncode_RoundTripsThroughParser(t *testing.T) {
	req := newRequest(rootUnregister, 2)
	req.add("MERCHANTREF", "card-1")
	req.add("CARDREFERENCE", "2967539432523495")

	body, err := req.Encode()
	require.NoError(t, err)

	parsed, err := parseResponse(body)
	require.NoError(t, err)
	assert.Equal(t, rootUnregister, parsed.Root)
	assert.Equal(t, "card-1", parsed.Fields["MERCHANTREF"])
	assert.Equal(t, "2967539432523495", parsed.Fields["CARDREFERENCE"])
}
