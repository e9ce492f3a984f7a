package emails

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPaymentReceivedTemplate(t *testing.T) {
	html := RenderTemplate("payment_received", map[string]any{
		"NAME":      "Amina",
		"AMOUNT":    "2500.50",
		"CURRENCY":  "KES",
		"PROGRAM":   "Certified Data Analyst",
		"REFERENCE": "CERT-1-ABCDEF",
	})
	require.NotNil(t, html)
	assert.Contains(t, *html, "KES 2500.50")
	assert.Contains(t, *html, "Certified Data Analyst")
	assert.Contains(t, *html, "CERT-1-ABCDEF")
}

func TestRenderUnknownTemplate(t *testing.T) {
	assert.Nil(t, RenderTemplate("does_not_exist", nil))
}
