// Package view turns API records into typed view models.
// Balance classification and money formatting live here so they can be
// tested without a terminal or an HTML document.
package view

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BalanceClass is the three-way reading of a customer's saldo.
type BalanceClass string

const (
	BalanceCredit  BalanceClass = "credit"
	BalanceDebt    BalanceClass = "debt"
	BalanceSettled BalanceClass = "settled"
)

// Tone is the color intent of a badge, shared by every renderer.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
	ToneWarning  Tone = "warning"
	ToneInfo     Tone = "info"
)

// Badge is a short styled label. Class is the CSS class used by the web front.
type Badge struct {
	Text  string
	Class string
	Tone  Tone
}

// Classify reads a server-computed saldo.
func Classify(saldo decimal.Decimal) BalanceClass {
	switch saldo.Sign() {
	case 1:
		return BalanceCredit
	case -1:
		return BalanceDebt
	default:
		return BalanceSettled
	}
}

// FormatAmount renders d with two decimals and a comma decimal separator.
// No thousands separator is used: 1500.5 becomes "1500,50".
func FormatAmount(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// FormatMoney prefixes FormatAmount with the currency symbol.
func FormatMoney(d decimal.Decimal) string {
	return "R$ " + FormatAmount(d)
}

// BalanceBadge is the saldo badge of the customers table and dashboard.
// Debt is shown as an absolute value.
func BalanceBadge(saldo decimal.Decimal) Badge {
	switch Classify(saldo) {
	case BalanceCredit:
		return Badge{Text: "Crédito: " + FormatMoney(saldo), Class: "saldo-positivo", Tone: TonePositive}
	case BalanceDebt:
		return Badge{Text: "Deve: " + FormatMoney(saldo.Abs()), Class: "saldo-negativo", Tone: ToneNegative}
	default:
		return Badge{Text: "Quitado", Class: "saldo-zero", Tone: ToneNeutral}
	}
}

// BalancePreview is the inline summary shown in the transaction form
// when a customer is selected.
type BalancePreview struct {
	Text       string
	Tone       Tone
	Background string
	Color      string
}

// NewBalancePreview builds the color-coded inline summary for saldo.
func NewBalancePreview(saldo decimal.Decimal) *BalancePreview {
	switch Classify(saldo) {
	case BalanceCredit:
		return &BalancePreview{
			Text:       "🟢 Cliente com CRÉDITO de " + FormatMoney(saldo),
			Tone:       TonePositive,
			Background: "#d4edda",
			Color:      "#155724",
		}
	case BalanceDebt:
		return &BalancePreview{
			Text:       "🔴 Cliente NEGATIVADO em " + FormatMoney(saldo.Abs()),
			Tone:       ToneNegative,
			Background: "#f8d7da",
			Color:      "#721c24",
		}
	default:
		return &BalancePreview{
			Text:       "⚪ Cliente QUITADO (saldo zero)",
			Tone:       ToneNeutral,
			Background: "#e2e3e5",
			Color:      "#383d41",
		}
	}
}
