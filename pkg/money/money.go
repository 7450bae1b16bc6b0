// Package money renders amounts and rates for display. Every function takes
// the locale explicitly; nothing here touches process-wide state.
package money

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol is the only currency the calculator deals with.
const Symbol = "R$"

// FormatCurrency renders amount with two decimals using the grouping and
// decimal separators of tag, prefixed by the currency symbol.
func FormatCurrency(tag language.Tag, amount float64) string {
	p := message.NewPrinter(tag)

	if amount < 0 {
		return "-" + Symbol + " " + p.Sprintf("%.2f", -amount)
	}

	return Symbol + " " + p.Sprintf("%.2f", amount)
}

// FormatPercent renders a rate given as a fraction (0.0236) as a two-decimal
// percentage ("2,36%" in pt-BR).
func FormatPercent(tag language.Tag, rate float64) string {
	return message.NewPrinter(tag).Sprintf("%.2f", rate*100) + "%"
}

// ParseLocale returns the language tag for s, defaulting to Brazilian
// Portuguese when s is empty or unknown.
func ParseLocale(s string) language.Tag {
	s = strings.TrimSpace(s)
	if s == "" {
		return language.BrazilianPortuguese
	}

	tag, err := language.Parse(s)
	if err != nil {
		return language.BrazilianPortuguese
	}

	return tag
}

// IsPortuguese reports whether tag belongs to the Portuguese language family.
func IsPortuguese(tag language.Tag) bool {
	base, _ := tag.Base()
	return base.String() == "pt"
}
