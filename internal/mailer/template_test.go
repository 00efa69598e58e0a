package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Molmash/molmash/internal/domain"
)

func TestRenderRequestNote(t *testing.T) {
	note := &domain.RequestNote{
		Name:        "Иван Петров",
		Phone:       "+79161234567",
		Email:       "ivan@example.com",
		RequestTime: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
	}

	body, err := RenderRequestNote(note)
	require.NoError(t, err)

	assert.Contains(t, body, "Иван Петров")
	assert.Contains(t, body, "+79161234567")
	assert.Contains(t, body, "ivan@example.com")
	assert.Contains(t, body, "14.03.2025 09:26:53")
	assert.Contains(t, body, "Новая заявка")
}

func TestRenderRequestNote_EscapesHTML(t *testing.T) {
	note := &domain.RequestNote{
		Name:        "<script>alert(1)</script>",
		Phone:       "+123456789",
		Email:       "x@example.com",
		RequestTime: time.Now(),
	}

	body, err := RenderRequestNote(note)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestFormatRequestTime(t *testing.T) {
	ts := time.Date(2025, 12, 1, 23, 5, 4, 0, time.UTC)
	assert.Equal(t, "01.12.2025 23:05:04", FormatRequestTime(ts))
}
