// Package contact builds the WhatsApp call-to-action links shown next to
// every batch.
package contact

import (
	"net/url"
	"strings"

	"github.com/andiamoid/andiamo-admin/internal/client/api"
)

// Hardcoded fallbacks, used whenever the admin settings have not been
// fetched yet or a field is empty. Nil settings are a normal state here,
// never an error.
const (
	FallbackWhatsAppNumber = "+6281234567890"
	FallbackCTAMessage     = "Halo Andiamo.id, saya tertarik dengan batch ini."
)

// Link returns the WhatsApp link for a batch. A per-batch link set by the
// admin wins; otherwise the link is built from the settings (or fallbacks).
func Link(b api.Batch, settings *api.AdminSettings) string {
	if b.WhatsAppLink != "" {
		return b.WhatsAppLink
	}

	number := FallbackWhatsAppNumber
	message := FallbackCTAMessage
	if settings != nil {
		if settings.DefaultWhatsAppNumber != "" {
			number = settings.DefaultWhatsAppNumber
		}
		if settings.DefaultCTAMessage != "" {
			message = settings.DefaultCTAMessage
		}
	}

	return "https://wa.me/" + digits(number) + "?text=" + url.QueryEscape(message)
}

// digits strips everything but digits; wa.me wants the number bare, without
// the leading + or separators.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
