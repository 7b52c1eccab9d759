package repository

import (
	"context"

	"maestro_marketplace/internal/chat/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ProfileRepository counterpart display data, read from the shared profiles table
type ProfileRepository interface {
	// GetParticipantInfo one counterpart's display data; ok=false when unknown
	GetParticipantInfo(ctx context.Context, memberID string) (domain.ParticipantInfo, bool, error)
	// GetParticipantInfos batch lookup for history assembly
	GetParticipantInfos(ctx context.Context, memberIDs []string) (map[string]domain.ParticipantInfo, error)
}

type pgProfileRepository struct {
	pool *pgxpool.Pool
}

// NewPgProfileRepository create a ProfileRepository
func NewPgProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &pgProfileRepository{pool: pool}
}

func (r *pgProfileRepository) GetParticipantInfo(ctx context.Context, memberID string) (domain.ParticipantInfo, bool, error) {
	var info domain.ParticipantInfo
	err := r.pool.QueryRow(ctx,
		`SELECT name, avatar FROM profiles WHERE member_id = $1`,
		memberID,
	).Scan(&info.Name, &info.Avatar)
	if err == pgx.ErrNoRows {
		return domain.ParticipantInfo{}, false, nil
	}
	if err != nil {
		return domain.ParticipantInfo{}, false, err
	}
	return info, true, nil
}

func (r *pgProfileRepository) GetParticipantInfos(ctx context.Context, memberIDs []string) (map[string]domain.ParticipantInfo, error) {
	out := make(map[string]domain.ParticipantInfo, len(memberIDs))
	if len(memberIDs) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT member_id, name, avatar FROM profiles WHERE member_id = ANY($1)`,
		memberIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var info domain.ParticipantInfo
		if err := rows.Scan(&id, &info.Name, &info.Avatar); err != nil {
			return nil, err
		}
		out[id] = info
	}
	return out, rows.Err()
}
