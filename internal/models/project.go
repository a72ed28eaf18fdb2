package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProjectLink — внешняя ссылка проекта (Behance, сайт, репозиторий).
type ProjectLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// ProjectLinks хранится в колонке jsonb.
type ProjectLinks []ProjectLink

// Value сериализует ссылки в jsonb.
func (l ProjectLinks) Value() (driver.Value, error) {
	if l == nil {
		l = ProjectLinks{}
	}
	return json.Marshal(l)
}

// Scan читает ссылки из jsonb.
func (l *ProjectLinks) Scan(src interface{}) error {
	if src == nil {
		*l = ProjectLinks{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("project links: неожиданный тип %T", src)
	}
	return json.Unmarshal(data, l)
}

// ProjectStage — одна из четырёх фиксированных секций истории проекта.
type ProjectStage struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Названия этапов фиксированы, в базе хранятся только описания.
const (
	StageBriefingTitle  = "Briefing"
	StageChallengeTitle = "Desafio"
	StageExecutionTitle = "Execução"
	StageResultTitle    = "Resultado"
)

// Project описывает проект портфолио.
type Project struct {
	ID                   uuid.UUID    `db:"id" json:"id"`
	UserID               uuid.UUID    `db:"user_id" json:"user_id"`
	Title                string       `db:"title" json:"title"`
	Description          string       `db:"description" json:"description"`
	Images               []string     `db:"images" json:"images"`
	VideoURL             *string      `db:"video_url" json:"video_url,omitempty"`
	BriefingDescription  string       `db:"briefing_description" json:"briefing_description"`
	ChallengeDescription string       `db:"challenge_description" json:"challenge_description"`
	ExecutionDescription string       `db:"execution_description" json:"execution_description"`
	ResultDescription    string       `db:"result_description" json:"result_description"`
	Technologies         []string     `db:"technologies" json:"technologies"`
	Links                ProjectLinks `db:"links" json:"links"`
	Status               string       `db:"status" json:"status"`
	DisplayOrder         int          `db:"display_order" json:"display_order"`
	CreatedAt            time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time    `db:"updated_at" json:"updated_at"`
}

// Stages собирает четыре этапа с фиксированными названиями.
func (p *Project) Stages() []ProjectStage {
	return []ProjectStage{
		{Title: StageBriefingTitle, Description: p.BriefingDescription},
		{Title: StageChallengeTitle, Description: p.ChallengeDescription},
		{Title: StageExecutionTitle, Description: p.ExecutionDescription},
		{Title: StageResultTitle, Description: p.ResultDescription},
	}
}
