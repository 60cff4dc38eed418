package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// maxShortCodes bounds the zero-padded 3-digit code space (001-999).
const maxShortCodes = 999

// ShortCodeRepository maps proposals under active SMS voting to the short
// numeric code members reply with. Register allocates a code guaranteed
// not to collide with any currently registered proposal; a code freed by
// Close may be handed out again.
type ShortCodeRepository interface {
	Register(ctx context.Context, proposalID uuid.UUID, title string, groupID uuid.UUID, votingDeadline time.Time) (*models.SMSVotingRegistration, error)
	GetByShortCode(ctx context.Context, shortCode string) (*models.SMSVotingRegistration, error)
	GetByProposalID(ctx context.Context, proposalID uuid.UUID) (*models.SMSVotingRegistration, error)
	Close(ctx context.Context, proposalID uuid.UUID) error
}

type memoryShortCodeRepository struct {
	mu         sync.Mutex
	byProposal map[uuid.UUID]models.SMSVotingRegistration
	byCode     map[string]uuid.UUID
	nextCode   int
}

func NewMemoryShortCodeRepository() ShortCodeRepository {
	return &memoryShortCodeRepository{
		byProposal: make(map[uuid.UUID]models.SMSVotingRegistration),
		byCode:     make(map[string]uuid.UUID),
		nextCode:   1,
	}
}

func (r *memoryShortCodeRepository) Register(ctx context.Context, proposalID uuid.UUID, title string, groupID uuid.UUID, votingDeadline time.Time) (*models.SMSVotingRegistration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byProposal[proposalID]; ok {
		cp := existing
		return &cp, nil
	}
	if len(r.byCode) >= maxShortCodes {
		return nil, utils.ErrNoShortCodes
	}

	// Walk the sequence until a free code turns up. Codes released by
	// Close become eligible again on wrap-around.
	var code string
	for {
		candidate := fmt.Sprintf("%03d", r.nextCode)
		r.nextCode++
		if r.nextCode > maxShortCodes {
			r.nextCode = 1
		}
		if _, taken := r.byCode[candidate]; !taken {
			code = candidate
			break
		}
	}

	reg := models.SMSVotingRegistration{
		ProposalID:     proposalID,
		ShortCode:      code,
		Title:          title,
		GroupID:        groupID,
		VotingDeadline: votingDeadline,
		CreatedAt:      time.Now(),
	}
	r.byProposal[proposalID] = reg
	r.byCode[code] = proposalID

	cp := reg
	return &cp, nil
}

func (r *memoryShortCodeRepository) GetByShortCode(ctx context.Context, shortCode string) (*models.SMSVotingRegistration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	proposalID, ok := r.byCode[shortCode]
	if !ok {
		return nil, nil
	}
	reg := r.byProposal[proposalID]
	cp := reg
	return &cp, nil
}

func (r *memoryShortCodeRepository) GetByProposalID(ctx context.Context, proposalID uuid.UUID) (*models.SMSVotingRegistration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.byProposal[proposalID]
	if !ok {
		return nil, nil
	}
	cp := reg
	return &cp, nil
}

func (r *memoryShortCodeRepository) Close(ctx context.Context, proposalID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.byProposal[proposalID]
	if !ok {
		return nil
	}
	delete(r.byProposal, proposalID)
	delete(r.byCode, reg.ShortCode)
	return nil
}
