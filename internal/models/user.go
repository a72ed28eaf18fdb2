package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает учётную запись пользователя.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         string     `db:"role" json:"role"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Profile описывает профиль пользователя: данные онбординга,
// сгенерированное позиционирование и тарифный план.
type Profile struct {
	UserID             uuid.UUID `db:"user_id" json:"user_id"`
	Name               *string   `db:"name" json:"name,omitempty"`
	Area               *string   `db:"area" json:"area,omitempty"`
	Niche              *string   `db:"niche" json:"niche,omitempty"`
	PortfolioObjective *string   `db:"portfolio_objective" json:"portfolio_objective,omitempty"`
	ExperienceLevel    *string   `db:"experience_level" json:"experience_level,omitempty"`
	IdealClient        *string   `db:"ideal_client" json:"ideal_client,omitempty"`
	Bio                *string   `db:"bio" json:"bio,omitempty"`
	Plan               string    `db:"plan" json:"plan"`
	ProposalCount      int       `db:"proposal_count" json:"proposal_count"`
	OnboardingComplete bool      `db:"onboarding_complete" json:"onboarding_complete"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// IsPro сообщает, действует ли у пользователя платный тариф.
func (p *Profile) IsPro() bool {
	return p.Plan == PlanPro
}

// HasOnboardingData проверяет, заполнены ли все шесть полей онбординга.
func (p *Profile) HasOnboardingData() bool {
	fields := []*string{p.Name, p.Area, p.Niche, p.PortfolioObjective, p.ExperienceLevel, p.IdealClient}
	for _, f := range fields {
		if f == nil || *f == "" {
			return false
		}
	}
	return true
}

// Session представляет сохранённую сессию пользователя.
type Session struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	RefreshToken string    `db:"refresh_token" json:"refresh_token"`
	UserAgent    *string   `db:"user_agent" json:"user_agent,omitempty"`
	IPAddress    *string   `db:"ip_address" json:"ip_address,omitempty"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
