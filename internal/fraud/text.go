package fraud

import (
	"strings"

	"ledgerguard/internal/domain"
)

// ExtractHour finds the first HH:MM window in text whose hour is 00-23.
func ExtractHour(text string) (int, bool) {
	for i := 0; i+5 <= len(text); i++ {
		w := text[i : i+5]
		if !isDigit(w[0]) || !isDigit(w[1]) || w[2] != ':' || !isDigit(w[3]) || !isDigit(w[4]) {
			continue
		}
		hour := int(w[0]-'0')*10 + int(w[1]-'0')
		if hour <= 23 {
			return hour, true
		}
	}
	return 0, false
}

// MerchantBase returns the part of a description before its last '@'.
func MerchantBase(text string) string {
	if at := strings.LastIndexByte(text, '@'); at >= 0 {
		text = text[:at]
	}
	if len(text) > domain.MaxTextWidth {
		text = text[:domain.MaxTextWidth]
	}
	return text
}

// ExtractLocation returns the non-empty text after the last '@'.
func ExtractLocation(text string) (string, bool) {
	at := strings.LastIndexByte(text, '@')
	if at < 0 || at == len(text)-1 {
		return "", false
	}
	return text[at+1:], true
}
