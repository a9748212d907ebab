package postgres

import (
	"database/sql"
	"time"

	"github.com/playrift/esports-ingest/internal/domain/league"
)

type leagueTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	Name      string         `db:"name"`
	Region    string         `db:"region"`
	LogoURL   sql.NullString `db:"logo_url"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:      m.PublicID,
		Name:    m.Name,
		Region:  m.Region,
		LogoURL: m.LogoURL.String,
	}
}
