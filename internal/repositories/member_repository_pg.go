package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

type pgMemberRepository struct {
	db DB
}

func NewPGMemberRepository(db DB) MemberRepository {
	return &pgMemberRepository{db: db}
}

func (r *pgMemberRepository) CreateGroup(ctx context.Context, group *models.Group) error {
	q := `
        INSERT INTO groups
            (id, name, description, location, leader_id, member_count,
             treasury_threshold, kyc_status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.db.Exec(ctx, q,
		group.ID, group.Name, group.Description, group.Location,
		group.LeaderID, group.MemberCount, group.TreasuryThreshold,
		group.KYCStatus, group.CreatedAt,
	)
	return err
}

const baseSelectGroup = `
    SELECT id, name, description, location, leader_id, member_count,
           treasury_threshold, kyc_status, created_at
    FROM groups
`

func (r *pgMemberRepository) GetGroup(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	row := r.db.QueryRow(ctx, baseSelectGroup+` WHERE id = $1`, id)
	return scanGroup(row)
}

func (r *pgMemberRepository) ListGroups(ctx context.Context) ([]models.Group, error) {
	rows, err := r.db.Query(ctx, baseSelectGroup+` ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(
			&g.ID, &g.Name, &g.Description, &g.Location, &g.LeaderID,
			&g.MemberCount, &g.TreasuryThreshold, &g.KYCStatus, &g.CreatedAt,
		); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func scanGroup(row pgx.Row) (*models.Group, error) {
	var g models.Group
	err := row.Scan(
		&g.ID, &g.Name, &g.Description, &g.Location, &g.LeaderID,
		&g.MemberCount, &g.TreasuryThreshold, &g.KYCStatus, &g.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *pgMemberRepository) SetGroupLeader(ctx context.Context, groupID, leaderID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE groups SET leader_id = $2 WHERE id = $1`, groupID, leaderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *pgMemberRepository) CreateMember(ctx context.Context, member *models.Member) error {
	q := `
        INSERT INTO members
            (id, phone_number, full_name, group_id, location, role,
             phone_verified, kyc_status, created_at, last_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err := r.db.Exec(ctx, q,
		member.ID, member.PhoneNumber, member.FullName, member.GroupID,
		member.Location, member.Role, member.PhoneVerified, member.KYCStatus,
		member.CreatedAt, member.LastActive,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on phone_number
			return utils.ErrPhoneExists
		}
		return err
	}

	_, err = r.db.Exec(ctx, `UPDATE groups SET member_count = member_count + 1 WHERE id = $1`, member.GroupID)
	return err
}

const baseSelectMember = `
    SELECT id, phone_number, full_name, group_id, location, role,
           phone_verified, kyc_status, created_at, last_active
    FROM members
`

func (r *pgMemberRepository) GetMemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	return scanMember(r.db.QueryRow(ctx, baseSelectMember+` WHERE id = $1`, id))
}

func (r *pgMemberRepository) GetMemberByPhone(ctx context.Context, phoneNumber string) (*models.Member, error) {
	return scanMember(r.db.QueryRow(ctx, baseSelectMember+` WHERE phone_number = $1`, phoneNumber))
}

func scanMember(row pgx.Row) (*models.Member, error) {
	var m models.Member
	err := row.Scan(
		&m.ID, &m.PhoneNumber, &m.FullName, &m.GroupID, &m.Location,
		&m.Role, &m.PhoneVerified, &m.KYCStatus, &m.CreatedAt, &m.LastActive,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *pgMemberRepository) ListGroupMembers(ctx context.Context, groupID uuid.UUID) ([]models.Member, error) {
	rows, err := r.db.Query(ctx, baseSelectMember+` WHERE group_id = $1 ORDER BY created_at`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(
			&m.ID, &m.PhoneNumber, &m.FullName, &m.GroupID, &m.Location,
			&m.Role, &m.PhoneVerified, &m.KYCStatus, &m.CreatedAt, &m.LastActive,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *pgMemberRepository) SetPhoneVerified(ctx context.Context, memberID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE members SET phone_verified = TRUE WHERE id = $1`, memberID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *pgMemberRepository) UpdateKYCStatus(ctx context.Context, memberID uuid.UUID, status models.KYCStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE members SET kyc_status = $2 WHERE id = $1`, memberID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}
