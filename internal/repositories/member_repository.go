package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// MemberRepository is the member/group directory: registration, lookup by
// id or phone, and the verification flags the voting pipeline consults.
type MemberRepository interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, id uuid.UUID) (*models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	SetGroupLeader(ctx context.Context, groupID, leaderID uuid.UUID) error

	CreateMember(ctx context.Context, member *models.Member) error
	GetMemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
	GetMemberByPhone(ctx context.Context, phoneNumber string) (*models.Member, error)
	ListGroupMembers(ctx context.Context, groupID uuid.UUID) ([]models.Member, error)
	SetPhoneVerified(ctx context.Context, memberID uuid.UUID) error
	UpdateKYCStatus(ctx context.Context, memberID uuid.UUID, status models.KYCStatus) error
}

type memoryMemberRepository struct {
	mu            sync.Mutex
	groups        map[uuid.UUID]models.Group
	members       map[uuid.UUID]models.Member
	phoneToMember map[string]uuid.UUID
}

func NewMemoryMemberRepository() MemberRepository {
	return &memoryMemberRepository{
		groups:        make(map[uuid.UUID]models.Group),
		members:       make(map[uuid.UUID]models.Member),
		phoneToMember: make(map[string]uuid.UUID),
	}
}

func (r *memoryMemberRepository) CreateGroup(ctx context.Context, group *models.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.groups[group.ID] = *group
	return nil
}

func (r *memoryMemberRepository) GetGroup(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[id]
	if !ok {
		return nil, nil
	}
	cp := group
	return &cp, nil
}

func (r *memoryMemberRepository) ListGroups(ctx context.Context) ([]models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	groups := make([]models.Group, 0, len(r.groups))
	for _, g := range r.groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].CreatedAt.Before(groups[j].CreatedAt) })
	return groups, nil
}

func (r *memoryMemberRepository) SetGroupLeader(ctx context.Context, groupID, leaderID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[groupID]
	if !ok {
		return utils.ErrNotFound
	}
	group.LeaderID = leaderID
	r.groups[groupID] = group
	return nil
}

func (r *memoryMemberRepository) CreateMember(ctx context.Context, member *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[member.GroupID]; !ok {
		return utils.ErrNotFound
	}
	if _, ok := r.phoneToMember[member.PhoneNumber]; ok {
		return utils.ErrPhoneExists
	}
	r.members[member.ID] = *member
	r.phoneToMember[member.PhoneNumber] = member.ID

	group := r.groups[member.GroupID]
	group.MemberCount++
	r.groups[member.GroupID] = group
	return nil
}

func (r *memoryMemberRepository) GetMemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	member, ok := r.members[id]
	if !ok {
		return nil, nil
	}
	cp := member
	return &cp, nil
}

func (r *memoryMemberRepository) GetMemberByPhone(ctx context.Context, phoneNumber string) (*models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.phoneToMember[phoneNumber]
	if !ok {
		return nil, nil
	}
	member := r.members[id]
	cp := member
	return &cp, nil
}

func (r *memoryMemberRepository) ListGroupMembers(ctx context.Context, groupID uuid.UUID) ([]models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var members []models.Member
	for _, m := range r.members {
		if m.GroupID == groupID {
			members = append(members, m)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].CreatedAt.Before(members[j].CreatedAt) })
	return members, nil
}

func (r *memoryMemberRepository) SetPhoneVerified(ctx context.Context, memberID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	member, ok := r.members[memberID]
	if !ok {
		return utils.ErrNotFound
	}
	member.PhoneVerified = true
	r.members[memberID] = member
	return nil
}

func (r *memoryMemberRepository) UpdateKYCStatus(ctx context.Context, memberID uuid.UUID, status models.KYCStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	member, ok := r.members[memberID]
	if !ok {
		return utils.ErrNotFound
	}
	member.KYCStatus = status
	r.members[memberID] = member
	return nil
}
