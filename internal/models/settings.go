package models

import (
	"time"

	"github.com/google/uuid"
)

// PortfolioSettings — настройки отображения портфолио, одна запись на пользователя.
type PortfolioSettings struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	UserID       uuid.UUID   `db:"user_id" json:"user_id"`
	Template     string      `db:"template" json:"template"`
	PrimaryColor string      `db:"primary_color" json:"primary_color"`
	Font         string      `db:"font" json:"font"`
	Columns      int         `db:"columns" json:"columns"`
	ProjectOrder []uuid.UUID `db:"project_order" json:"project_order"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// DefaultPortfolioSettings возвращает настройки по умолчанию для пользователя без сохранённой записи.
func DefaultPortfolioSettings(userID uuid.UUID) *PortfolioSettings {
	return &PortfolioSettings{
		UserID:       userID,
		Template:     TemplateCase,
		PrimaryColor: "#8B5CF6",
		Font:         "DM Sans",
		Columns:      2,
		ProjectOrder: []uuid.UUID{},
	}
}
