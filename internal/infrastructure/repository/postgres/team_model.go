package postgres

import (
	"database/sql"
	"time"

	"github.com/playrift/esports-ingest/internal/domain/team"
)

type teamTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	LeaguePublicID sql.NullString `db:"league_public_id"`
	Name           string         `db:"name"`
	LogoURL        sql.NullString `db:"logo_url"`
	WinRate        float64        `db:"win_rate"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:       m.PublicID,
		LeagueID: m.LeaguePublicID.String,
		Name:     m.Name,
		LogoURL:  m.LogoURL.String,
		WinRate:  m.WinRate,
	}
}
