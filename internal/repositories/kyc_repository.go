package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// KYCRepository stores submitted identity documents and review decisions.
type KYCRepository interface {
	CreateDocument(ctx context.Context, doc *models.KYCDocument) error
	GetDocument(ctx context.Context, id uuid.UUID) (*models.KYCDocument, error)
	ListMemberDocuments(ctx context.Context, memberID uuid.UUID) ([]models.KYCDocument, error)
	SetDocumentStatus(ctx context.Context, id uuid.UUID, status models.VerificationStatus, verifiedAt *time.Time) error
	CreateReview(ctx context.Context, review *models.KYCReview) error
	ListMemberReviews(ctx context.Context, memberID uuid.UUID) ([]models.KYCReview, error)
}

type memoryKYCRepository struct {
	mu        sync.Mutex
	documents map[uuid.UUID]models.KYCDocument
	reviews   map[uuid.UUID][]models.KYCReview
}

func NewMemoryKYCRepository() KYCRepository {
	return &memoryKYCRepository{
		documents: make(map[uuid.UUID]models.KYCDocument),
		reviews:   make(map[uuid.UUID][]models.KYCReview),
	}
}

func (r *memoryKYCRepository) CreateDocument(ctx context.Context, doc *models.KYCDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.documents[doc.ID] = *doc
	return nil
}

func (r *memoryKYCRepository) GetDocument(ctx context.Context, id uuid.UUID) (*models.KYCDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.documents[id]
	if !ok {
		return nil, nil
	}
	cp := doc
	return &cp, nil
}

func (r *memoryKYCRepository) ListMemberDocuments(ctx context.Context, memberID uuid.UUID) ([]models.KYCDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var docs []models.KYCDocument
	for _, d := range r.documents {
		if d.MemberID == memberID {
			docs = append(docs, d)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].CreatedAt.Before(docs[j].CreatedAt) })
	return docs, nil
}

func (r *memoryKYCRepository) SetDocumentStatus(ctx context.Context, id uuid.UUID, status models.VerificationStatus, verifiedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.documents[id]
	if !ok {
		return utils.ErrNotFound
	}
	doc.VerificationStatus = status
	doc.VerifiedAt = verifiedAt
	r.documents[id] = doc
	return nil
}

func (r *memoryKYCRepository) CreateReview(ctx context.Context, review *models.KYCReview) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reviews[review.MemberID] = append(r.reviews[review.MemberID], *review)
	return nil
}

func (r *memoryKYCRepository) ListMemberReviews(ctx context.Context, memberID uuid.UUID) ([]models.KYCReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reviews := make([]models.KYCReview, len(r.reviews[memberID]))
	copy(reviews, r.reviews[memberID])
	return reviews, nil
}
