package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventMetadata — произвольные данные события, колонка jsonb.
type EventMetadata map[string]interface{}

// Value сериализует метаданные в jsonb.
func (m EventMetadata) Value() (driver.Value, error) {
	if m == nil {
		m = EventMetadata{}
	}
	return json.Marshal(m)
}

// Scan читает метаданные из jsonb.
func (m *EventMetadata) Scan(src interface{}) error {
	if src == nil {
		*m = EventMetadata{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("event metadata: неожиданный тип %T", src)
	}
	return json.Unmarshal(data, m)
}

// AnalyticsEvent — событие просмотра/клика, только вставка.
type AnalyticsEvent struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	UserID       uuid.UUID     `db:"user_id" json:"user_id"`
	EventType    string        `db:"event_type" json:"event_type"`
	ResourceType string        `db:"resource_type" json:"resource_type"`
	ResourceID   *uuid.UUID    `db:"resource_id" json:"resource_id,omitempty"`
	Metadata     EventMetadata `db:"metadata" json:"metadata"`
	Source       *string       `db:"source" json:"source,omitempty"`
	UserAgent    *string       `db:"user_agent" json:"user_agent,omitempty"`
	IPAddress    *string       `db:"ip_address" json:"ip_address,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}

// AnalyticsSummary — агрегат для дашборда.
type AnalyticsSummary struct {
	TotalViews     int        `json:"total_views"`
	TotalClicks    int        `json:"total_clicks"`
	UniqueVisitors int        `json:"unique_visitors"`
	ViewsByDay     []DayViews `json:"views_by_day"`
}

// DayViews — количество просмотров за один день.
type DayViews struct {
	Day   string `json:"day"`
	Views int    `json:"views"`
}

// Lead — заявка из контактной формы публичного портфолио.
type Lead struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Message   *string   `db:"message" json:"message,omitempty"`
	Source    string    `db:"source" json:"source"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
