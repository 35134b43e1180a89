package tui

import (
	"fmt"

	"github.com/MKhiriev/go-ride-keeper/models"
)

// RenderCards prints saved cards with their masked numbers only.
func RenderCards(cards []models.SavedCard) string {
	if len(cards) == 0 {
		return renderPage("PAYMENT CARDS", "", "no saved cards")
	}

	t := newTable("ID", "HOLDER", "NUMBER", "ADDED")
	for _, c := range cards {
		t.Row(c.ID, valueOrDash(c.HolderName), c.Masked, c.CreatedAt.Local().Format(timeLayout))
	}

	return renderPage("PAYMENT CARDS", t.String(), fmt.Sprintf("%d card(s); reveal one with: reveal <id>", len(cards)))
}

// RenderCardField prints the result of encrypting a card number.
func RenderCardField(field models.CardField) string {
	return fmt.Sprintf("masked:    %s\nencrypted: %s\n", field.Masked, field.Encrypted)
}
