package postgres

import (
	"database/sql"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/playrift/esports-ingest/internal/domain/match"
)

type matchTableModel struct {
	ID                 int64          `db:"id"`
	PublicID           string         `db:"public_id"`
	LeaguePublicID     sql.NullString `db:"league_public_id"`
	TeamAPublicID      string         `db:"team_a_public_id"`
	TeamBPublicID      string         `db:"team_b_public_id"`
	ScheduledAt        time.Time      `db:"scheduled_at"`
	OddsA              float64        `db:"odds_a"`
	OddsB              float64        `db:"odds_b"`
	Status             string         `db:"status"`
	WinnerTeamPublicID sql.NullString `db:"winner_team_public_id"`
	StreamLinks        []byte         `db:"stream_links"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
	DeletedAt          *time.Time     `db:"deleted_at"`
}

func (m matchTableModel) toDomain() (match.Match, error) {
	var streams []match.StreamLink
	if len(m.StreamLinks) > 0 {
		if err := sonic.Unmarshal(m.StreamLinks, &streams); err != nil {
			return match.Match{}, fmt.Errorf("decode stream links for match %s: %w", m.PublicID, err)
		}
	}

	return match.Match{
		ID:           m.PublicID,
		LeagueID:     m.LeaguePublicID.String,
		TeamAID:      m.TeamAPublicID,
		TeamBID:      m.TeamBPublicID,
		ScheduledAt:  m.ScheduledAt.UTC(),
		OddsA:        m.OddsA,
		OddsB:        m.OddsB,
		Status:       m.Status,
		WinnerTeamID: m.WinnerTeamPublicID.String,
		StreamLinks:  streams,
	}, nil
}

func encodeStreamLinks(streams []match.StreamLink) ([]byte, error) {
	if len(streams) == 0 {
		return []byte("[]"), nil
	}
	raw, err := sonic.Marshal(streams)
	if err != nil {
		return nil, fmt.Errorf("encode stream links: %w", err)
	}
	return raw, nil
}
