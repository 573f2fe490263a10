package tui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bialog/bialog/internal/api"
	"github.com/bialog/bialog/internal/pagination"
)

func TestFormatYen(t *testing.T) {
	assert.Equal(t, "980円", FormatYen(980))
	assert.Equal(t, "4,800円", FormatYen(4800))
	assert.Equal(t, "1,234,567円", FormatYen(1234567))
	assert.Equal(t, "12本", FormatCans(12))
}

func TestFormatPurchaseDate(t *testing.T) {
	assert.Equal(t, "2024/03/09", FormatPurchaseDate(api.Purchaselog{DateTime: "2024-03-09T18:30:00"}))
	assert.Equal(t, "2024/03/09", FormatPurchaseDate(api.Purchaselog{DateTime: "2024-03-09"}))
	assert.Equal(t, "昨日", FormatPurchaseDate(api.Purchaselog{DateTime: "昨日"}))

	ts := time.Date(2024, 3, 9, 12, 0, 0, 0, time.Local).Format(time.RFC3339)
	assert.Equal(t, "2024/03/09", FormatPurchaseDate(api.Purchaselog{DateTime: ts}))
}

func TestSurveyLabelAndTruncate(t *testing.T) {
	assert.Equal(t, "回答済み", SurveyLabel(true))
	assert.Equal(t, "未回答", SurveyLabel(false))
	assert.Equal(t, "よなよな", truncate("よなよな", 4))
	assert.Equal(t, "よな…", truncate("よなよなエール", 3))
}

func TestDetectOutputMode(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, OutputModePlain, DetectOutputMode(&buf, false))
	assert.Equal(t, OutputModePlain, DetectOutputMode(&buf, true))
	assert.Equal(t, "plain", OutputModePlain.String())
	assert.Equal(t, "interactive", OutputModeInteractive.String())
}

func TestRenderPageWindow(t *testing.T) {
	entries := pagination.VisiblePageWindow(6, 10, 5)
	out := RenderPageWindow(entries, 6)
	assert.Contains(t, out, "[6]")
	assert.Contains(t, out, "…")
	assert.Contains(t, out, "10")
}

func TestToast(t *testing.T) {
	toast := NewToast(0)
	assert.Empty(t, toast.View())

	toast.NotifyInfo("first")
	firstID := toast.id
	toast.NotifyError("second")

	assert.True(t, toast.Update(toastExpiredMsg{id: firstID}))
	assert.Equal(t, "second", toast.Message(), "older timer must not clear a newer message")
	assert.True(t, toast.IsError())
	assert.Contains(t, toast.View(), "✗ second")

	assert.True(t, toast.Update(toastExpiredMsg{id: toast.id}))
	assert.Empty(t, toast.Message())
	assert.False(t, toast.Update(struct{}{}))
}

func TestViewStateString(t *testing.T) {
	assert.Equal(t, "loading", ViewStateLoading.String())
	assert.Equal(t, "list", ViewStateList.String())
}
