package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/dtos"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/repositories"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

// MemberService is the group and member directory.
type MemberService interface {
	CreateGroup(ctx context.Context, req *dtos.CreateGroupRequest) (*dtos.GroupResponse, error)
	GetGroup(ctx context.Context, id uuid.UUID) (*dtos.GroupResponse, error)
	ListGroups(ctx context.Context) ([]dtos.GroupResponse, error)
	ListGroupMembers(ctx context.Context, groupID uuid.UUID) (*dtos.MemberListResponse, error)

	RegisterMember(ctx context.Context, req *dtos.RegisterMemberRequest) (*dtos.MemberResponse, error)
	GetMemberByID(ctx context.Context, id uuid.UUID) (*dtos.MemberResponse, error)
	GetMemberByPhone(ctx context.Context, phoneNumber string) (*dtos.MemberResponse, error)
}

type memberService struct {
	memberRepo repositories.MemberRepository
}

func NewMemberService(memberRepo repositories.MemberRepository) MemberService {
	return &memberService{memberRepo: memberRepo}
}

// CreateGroup creates the group together with its leader's member record.
func (s *memberService) CreateGroup(ctx context.Context, req *dtos.CreateGroupRequest) (*dtos.GroupResponse, error) {
	now := time.Now()
	group := &models.Group{
		ID:                uuid.New(),
		Name:              req.GroupName,
		Description:       req.Description,
		Location:          req.Location,
		MemberCount:       0,
		TreasuryThreshold: req.TreasuryThreshold,
		KYCStatus:         models.KYCPending,
		CreatedAt:         now,
	}
	if err := s.memberRepo.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	leader := &models.Member{
		ID:          uuid.New(),
		PhoneNumber: req.LeaderPhone,
		FullName:    req.LeaderName,
		GroupID:     group.ID,
		Location:    req.Location,
		Role:        models.RoleLeader,
		KYCStatus:   models.KYCPending,
		CreatedAt:   now,
	}
	if err := s.memberRepo.CreateMember(ctx, leader); err != nil {
		return nil, err
	}
	if err := s.memberRepo.SetGroupLeader(ctx, group.ID, leader.ID); err != nil {
		return nil, err
	}
	group.LeaderID = leader.ID
	group.MemberCount = 1

	utils.Logger.Infof("Group %s (%s) created with leader %s", group.ID, group.Name, leader.ID)
	return groupToResponse(group), nil
}

func (s *memberService) GetGroup(ctx context.Context, id uuid.UUID) (*dtos.GroupResponse, error) {
	group, err := s.memberRepo.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, utils.ErrNotFound
	}
	return groupToResponse(group), nil
}

func (s *memberService) ListGroups(ctx context.Context) ([]dtos.GroupResponse, error) {
	groups, err := s.memberRepo.ListGroups(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]dtos.GroupResponse, 0, len(groups))
	for i := range groups {
		resp = append(resp, *groupToResponse(&groups[i]))
	}
	return resp, nil
}

func (s *memberService) ListGroupMembers(ctx context.Context, groupID uuid.UUID) (*dtos.MemberListResponse, error) {
	group, err := s.memberRepo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, utils.ErrNotFound
	}

	members, err := s.memberRepo.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	resp := &dtos.MemberListResponse{
		GroupID: groupID,
		Members: make([]dtos.MemberResponse, 0, len(members)),
		Count:   len(members),
	}
	for i := range members {
		resp.Members = append(resp.Members, *memberToResponse(&members[i]))
	}
	return resp, nil
}

func (s *memberService) RegisterMember(ctx context.Context, req *dtos.RegisterMemberRequest) (*dtos.MemberResponse, error) {
	role := models.MemberRole(req.Role)
	if role == "" {
		role = models.RoleMember
	}

	member := &models.Member{
		ID:          uuid.New(),
		PhoneNumber: req.PhoneNumber,
		FullName:    req.FullName,
		GroupID:     req.GroupID,
		Location:    req.Location,
		Role:        role,
		KYCStatus:   models.KYCPending,
		CreatedAt:   time.Now(),
	}
	if err := s.memberRepo.CreateMember(ctx, member); err != nil {
		return nil, err
	}

	utils.Logger.Infof("Member %s registered in group %s", member.ID, member.GroupID)
	return memberToResponse(member), nil
}

func (s *memberService) GetMemberByID(ctx context.Context, id uuid.UUID) (*dtos.MemberResponse, error) {
	member, err := s.memberRepo.GetMemberByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, utils.ErrNotFound
	}
	return memberToResponse(member), nil
}

func (s *memberService) GetMemberByPhone(ctx context.Context, phoneNumber string) (*dtos.MemberResponse, error) {
	member, err := s.memberRepo.GetMemberByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, utils.ErrNotFound
	}
	return memberToResponse(member), nil
}

func groupToResponse(group *models.Group) *dtos.GroupResponse {
	return &dtos.GroupResponse{
		GroupID:           group.ID,
		GroupName:         group.Name,
		Description:       group.Description,
		Location:          group.Location,
		LeaderID:          group.LeaderID,
		MemberCount:       group.MemberCount,
		TreasuryThreshold: group.TreasuryThreshold,
		KYCStatus:         string(group.KYCStatus),
		CreatedAt:         group.CreatedAt,
	}
}

func memberToResponse(member *models.Member) *dtos.MemberResponse {
	return &dtos.MemberResponse{
		MemberID:      member.ID,
		PhoneNumber:   member.PhoneNumber,
		FullName:      member.FullName,
		GroupID:       member.GroupID,
		Location:      member.Location,
		Role:          string(member.Role),
		PhoneVerified: member.PhoneVerified,
		KYCStatus:     string(member.KYCStatus),
		CreatedAt:     member.CreatedAt,
		LastActive:    member.LastActive,
	}
}
