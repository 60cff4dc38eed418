package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

type pgKYCRepository struct {
	db DB
}

func NewPGKYCRepository(db DB) KYCRepository {
	return &pgKYCRepository{db: db}
}

func (r *pgKYCRepository) CreateDocument(ctx context.Context, doc *models.KYCDocument) error {
	q := `
        INSERT INTO kyc_documents
            (id, member_id, document_type, document_number, issuing_authority,
             expiry_date, verification_status, created_at, verified_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.db.Exec(ctx, q,
		doc.ID, doc.MemberID, doc.DocumentType, doc.DocumentNumber,
		doc.IssuingAuthority, doc.ExpiryDate, doc.VerificationStatus,
		doc.CreatedAt, doc.VerifiedAt,
	)
	return err
}

const baseSelectKYCDocument = `
    SELECT id, member_id, document_type, document_number, issuing_authority,
           expiry_date, verification_status, created_at, verified_at
    FROM kyc_documents
`

func (r *pgKYCRepository) GetDocument(ctx context.Context, id uuid.UUID) (*models.KYCDocument, error) {
	var d models.KYCDocument
	err := r.db.QueryRow(ctx, baseSelectKYCDocument+` WHERE id = $1`, id).Scan(
		&d.ID, &d.MemberID, &d.DocumentType, &d.DocumentNumber,
		&d.IssuingAuthority, &d.ExpiryDate, &d.VerificationStatus,
		&d.CreatedAt, &d.VerifiedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *pgKYCRepository) ListMemberDocuments(ctx context.Context, memberID uuid.UUID) ([]models.KYCDocument, error) {
	rows, err := r.db.Query(ctx, baseSelectKYCDocument+` WHERE member_id = $1 ORDER BY created_at`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []models.KYCDocument
	for rows.Next() {
		var d models.KYCDocument
		if err := rows.Scan(
			&d.ID, &d.MemberID, &d.DocumentType, &d.DocumentNumber,
			&d.IssuingAuthority, &d.ExpiryDate, &d.VerificationStatus,
			&d.CreatedAt, &d.VerifiedAt,
		); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *pgKYCRepository) SetDocumentStatus(ctx context.Context, id uuid.UUID, status models.VerificationStatus, verifiedAt *time.Time) error {
	q := `UPDATE kyc_documents SET verification_status = $2, verified_at = $3 WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id, status, verifiedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *pgKYCRepository) CreateReview(ctx context.Context, review *models.KYCReview) error {
	q := `
        INSERT INTO kyc_reviews
            (member_id, previous_status, new_status, reviewer_notes, reviewed_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.Exec(ctx, q,
		review.MemberID, review.PreviousStatus, review.NewStatus,
		review.ReviewerNotes, review.ReviewedAt,
	)
	return err
}

func (r *pgKYCRepository) ListMemberReviews(ctx context.Context, memberID uuid.UUID) ([]models.KYCReview, error) {
	q := `
        SELECT member_id, previous_status, new_status, reviewer_notes, reviewed_at
        FROM kyc_reviews
        WHERE member_id = $1
        ORDER BY reviewed_at
    `
	rows, err := r.db.Query(ctx, q, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.KYCReview
	for rows.Next() {
		var rev models.KYCReview
		if err := rows.Scan(
			&rev.MemberID, &rev.PreviousStatus, &rev.NewStatus,
			&rev.ReviewerNotes, &rev.ReviewedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
