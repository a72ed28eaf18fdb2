package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BudgetItem — строка сметы предложения.
// total всегда пересчитывается как quantity × unitPrice и не принимается от клиента.
type BudgetItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// BudgetItems хранится в колонке jsonb.
type BudgetItems []BudgetItem

// Value сериализует смету в jsonb.
func (b BudgetItems) Value() (driver.Value, error) {
	if b == nil {
		b = BudgetItems{}
	}
	return json.Marshal(b)
}

// Scan читает смету из jsonb.
func (b *BudgetItems) Scan(src interface{}) error {
	if src == nil {
		*b = BudgetItems{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("budget items: неожиданный тип %T", src)
	}
	return json.Unmarshal(data, b)
}

// Recalculate пересчитывает total каждой строки и возвращает сумму сметы.
// Единственный источник истины для total и total_value (см. Proposal.TotalValue).
func (b BudgetItems) Recalculate() float64 {
	var sum float64
	for i := range b {
		b[i].Total = b[i].Quantity * b[i].UnitPrice
		sum += b[i].Total
	}
	return sum
}

// Proposal описывает коммерческое предложение.
type Proposal struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	UserID        uuid.UUID   `db:"user_id" json:"user_id"`
	Title         string      `db:"title" json:"title"`
	ClientName    *string     `db:"client_name" json:"client_name,omitempty"`
	ClientEmail   *string     `db:"client_email" json:"client_email,omitempty"`
	Introduction  *string     `db:"introduction" json:"introduction,omitempty"`
	Justification *string     `db:"justification" json:"justification,omitempty"`
	Closing       *string     `db:"closing" json:"closing,omitempty"`
	ProjectIDs    []uuid.UUID `db:"project_ids" json:"project_ids"`
	BudgetItems   BudgetItems `db:"budget_items" json:"budget_items"`
	BudgetType    string      `db:"budget_type" json:"budget_type"`
	TotalValue    float64     `db:"total_value" json:"total_value"`
	LogoURL       *string     `db:"logo_url" json:"logo_url,omitempty"`
	PrimaryColor  string      `db:"primary_color" json:"primary_color"`
	CoverImageURL *string     `db:"cover_image_url" json:"cover_image_url,omitempty"`
	Status        string      `db:"status" json:"status"`
	ShareToken    *string     `db:"share_token" json:"share_token,omitempty"`
	ViewedAt      *time.Time  `db:"viewed_at" json:"viewed_at,omitempty"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

// RecalculateTotals пересчитывает смету и кэшированное поле total_value.
func (p *Proposal) RecalculateTotals() {
	p.TotalValue = p.BudgetItems.Recalculate()
}

// CanTransitionTo проверяет, что переход статуса не откатывает предложение назад.
func (p *Proposal) CanTransitionTo(status string) bool {
	next := ProposalStatusRank(status)
	if next < 0 {
		return false
	}
	return next >= ProposalStatusRank(p.Status)
}
