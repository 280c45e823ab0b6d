package partner

import (
	"strings"
	"time"

	"github.com/cecypo/powerpack-backend/internal/domain/shared"
)

// PartyKind distinguishes customers from suppliers
type PartyKind string

const (
	PartyKindCustomer PartyKind = "customer"
	PartyKindSupplier PartyKind = "supplier"
)

// ParseKind maps a caller-supplied kind to a PartyKind. An empty string
// is valid and means both kinds; anything else unrecognized reports
// false.
func ParseKind(s string) (PartyKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", true
	case "customer":
		return PartyKindCustomer, true
	case "supplier":
		return PartyKindSupplier, true
	default:
		return "", false
	}
}

// Party is a customer or supplier. Tax IDs are registered per party and
// checked for duplicates across both kinds.
type Party struct {
	shared.Entity
	Name        string    `gorm:"type:varchar(140);not null;uniqueIndex:idx_party_name_kind" json:"name"`
	Kind        PartyKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_party_name_kind" json:"kind"`
	DisplayName string    `gorm:"type:varchar(140)" json:"display_name"`
	TaxID       string    `gorm:"type:varchar(140);index" json:"tax_id"`
	Disabled    bool      `gorm:"not null;default:false" json:"disabled"`
}

// TableName returns the table name for GORM
func (Party) TableName() string {
	return "parties"
}

// NormalizeTaxID trims surrounding whitespace before matching. An empty
// tax ID never participates in duplicate checks.
func NormalizeTaxID(taxID string) string {
	return strings.TrimSpace(taxID)
}

// TaxIDMatch is one party holding a contested tax ID
type TaxIDMatch struct {
	PartyName   string    `json:"party_name"`
	DisplayName string    `json:"display_name"`
	Kind        PartyKind `json:"kind"`
	CreatedAt   time.Time `json:"created_at"`
}
