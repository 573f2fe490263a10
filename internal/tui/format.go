package tui

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bialog/bialog/internal/api"
)

var jaPrinter = message.NewPrinter(language.Japanese)

// FormatYen renders an amount with thousands separators, e.g. "4,800円".
func FormatYen(amount int) string {
	return jaPrinter.Sprintf("%d円", amount)
}

// FormatCans renders a can count, e.g. "12本".
func FormatCans(n int) string {
	return jaPrinter.Sprintf("%d本", n)
}

// FormatPurchaseDate renders the purchase date in local time as 2006/01/02.
// Unparsable timestamps are shown as sent.
func FormatPurchaseDate(p api.Purchaselog) string {
	t, err := p.PurchasedAt()
	if err != nil {
		return p.DateTime
	}
	return t.Local().Format("2006/01/02")
}

// SurveyLabel renders the survey flag.
func SurveyLabel(done bool) string {
	if done {
		return "回答済み"
	}
	return "未回答"
}

// truncate shortens s to at most n runes, marking the cut with "…".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 1 {
		return s
	}
	return string(r[:n-1]) + "…"
}
