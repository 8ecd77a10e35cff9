package globalone

import (
	"testing"

	pkgerrors "github.com/kevin07696/globalonepay/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<PAYMENTRESPONSE>
	<UNIQUEREF>I3R9T0B7QR</UNIQUEREF>
	<RESPONSECODE>A</RESPONSECODE>
	<RESPONSETEXT>APPROVAL</RESPONSETEXT>
	<APPROVALCODE></APPROVALCODE>
	<DATETIME>2017-10-01T12:58:26</DATETIME>
	<HASH>4ae930ef7e98895925ce1f11fb8f2a6e</HASH>
	<HASH>ignored-duplicate</HASH>
</PAYMENTRESPONSE>`)

	resp, err := parseResponse(body)

	require.NoError(t, err)
	assert.Equal(t, "PAYMENTRESPONSE", resp.Root)
	assert.Equal(t, "I3R9T0B7QR", resp.Fields["UNIQUEREF"])
	assert.Equal(t, "A", resp.Fields["RESPONSECODE"])
	assert.Equal(t, "", resp.Fields["APPROVALCODE"])
	assert.Equal(t, "4ae930ef7e98895925ce1f11fb8f2a6e", resp.Fields["HASH"])
	assert.Equal(t, string(body), resp.Raw)
}

func TestParseResponse_Malformed(t *testing.T) {
	for name, body := range map[string]string{
		"empty":     "",
		"not xml":   "Service Unavailable",
		"truncated": "<PAYMENTRESPONSE><UNIQUEREF>abc",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseResponse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestGatewayError(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "code and string",
			body:        `<ERROR><ERRORCODE>E13</ERRORCODE><ERRORSTRING>INVALID HASH</ERRORSTRING></ERROR>`,
			wantCode:    "E13",
			wantMessage: "INVALID HASH",
		},
		{
			name:        "missing code defaults to 0",
			body:        `<ERROR><ERRORSTRING>Invalid UNIQUEREF field</ERRORSTRING></ERROR>`,
			wantCode:    "0",
			wantMessage: "Invalid UNIQUEREF field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := parseResponse([]byte(tt.body))
			require.NoError(t, err)

			gwErr := gatewayError(resp)

			require.NotNil(t, gwErr)
			assert.Equal(t, tt.wantCode, gwErr.Code)
			assert.Equal(t, tt.wantMessage, gwErr.Message)
			assert.IsType(t, &pkgerrors.GatewayError{}, gwErr)
		})
	}
}

func TestGatewayError_NotAnErrorDocument(t *testing.T) {
	resp, err := parseResponse([]byte(`<REFUNDRESPONSE><RESPONSECODE>A</RESPONSECODE></REFUNDRESPONSE>`))
	require.NoError(t, err)

	assert.Nil(t, gatewayError(resp))
}

func TestRequireFields(t *testing.T) {
	resp, err := parseResponse([]byte(`<REFUNDRESPONSE><UNIQUEREF>IZBPMUSXLA</UNIQUEREF><RESPONSECODE></RESPONSECODE></REFUNDRESPONSE>`))
	require.NoError(t, err)

	values, err := requireFields(resp, "UNIQUEREF")
	require.NoError(t, err)
	assert.Equal(t, []string{"IZBPMUSXLA"}, values)

	_, err = requireFields(resp, "UNIQUEREF", "RESPONSECODE")
	assert.EqualError(t, err, "REFUNDRESPONSE.RESPONSECODE is missing from response")
}
