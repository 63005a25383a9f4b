package pdf

import (
	"bytes"
	"testing"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/config"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCoupon = models.Coupon{
	Code:     "123456789012",
	Name:     "RAVI KUMAR",
	Seva:     models.SevaAbhishekam,
	IssuedAt: "2026-08-30",
	IsActive: true,
}

func newTestRenderer() *Renderer {
	return NewRenderer(config.PDFConfig{
		TempleName:    "ISKCON Mangaluru",
		TempleAddress: "Shakthinagar, Mangaluru",
	})
}

func TestRender(t *testing.T) {
	r := newTestRenderer()

	content, err := r.Render(testCoupon)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
	assert.Greater(t, len(content), 1000)
}

func TestRender_AllSevas(t *testing.T) {
	r := newTestRenderer()

	for _, seva := range models.AllSevas() {
		c := testCoupon
		c.Seva = seva

		content, err := r.Render(c)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "coupon_RAVI_KUMAR_123456789012.pdf", FileName(testCoupon))
}

func TestGenerateQRCode(t *testing.T) {
	content, err := GenerateQRCode("123456789012", 256)
	require.NoError(t, err)

	// PNG magic bytes.
	assert.True(t, bytes.HasPrefix(content, []byte("\x89PNG\r\n\x1a\n")))
}

func TestQuoteCatalogue(t *testing.T) {
	require.NotEmpty(t, gitaQuotes)
	for _, q := range gitaQuotes {
		assert.NotEmpty(t, q.Translation)
		assert.Positive(t, q.Chapter)
		assert.Positive(t, q.Verse)
	}
}
