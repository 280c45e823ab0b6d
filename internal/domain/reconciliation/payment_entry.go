package reconciliation

import (
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentEntry is a posted payment document carrying an unallocated
// balance. Reconciliation consumes that balance and stamps accounting
// dimensions onto the entry.
type PaymentEntry struct {
	shared.Entity
	Name              string          `gorm:"type:varchar(140);not null;uniqueIndex" json:"name"`
	Company           string          `gorm:"type:varchar(140);not null" json:"company"`
	Party             string          `gorm:"type:varchar(140);not null;index" json:"party"`
	PartyType         string          `gorm:"type:varchar(20);not null" json:"party_type"`
	Currency          string          `gorm:"type:varchar(10);not null" json:"currency"`
	PaidAmount        decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"paid_amount"`
	UnallocatedAmount decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0" json:"unallocated_amount"`
	CostCenter        string          `gorm:"type:varchar(140)" json:"cost_center"`
	Project           string          `gorm:"type:varchar(140)" json:"project"`
}

// TableName returns the table name for GORM
func (PaymentEntry) TableName() string {
	return "payment_entries"
}
