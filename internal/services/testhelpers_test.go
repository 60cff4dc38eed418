package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/config"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/models"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/repositories"
)

// fakeGateway records outbound messages and can be told to fail, either
// for everything or for specific recipients.
type fakeGateway struct {
	mu      sync.Mutex
	sent    []sentSMS
	failAll bool
	failTo  map[string]bool
}

type sentSMS struct {
	To   string
	Body string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{failTo: make(map[string]bool)}
}

func (g *fakeGateway) Send(ctx context.Context, toPhone, body string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.failAll || g.failTo[toPhone] {
		return context.DeadlineExceeded
	}
	g.sent = append(g.sent, sentSMS{To: toPhone, Body: body})
	return nil
}

func (g *fakeGateway) sentTo(phone string) []sentSMS {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []sentSMS
	for _, s := range g.sent {
		if s.To == phone {
			out = append(out, s)
		}
	}
	return out
}

func testConfig() *config.Config {
	return &config.Config{
		AppName:                  "governance-service-test",
		AppPort:                  "0",
		OTPLength:                config.OTPLength,
		OTPExpiry:                config.DefaultOTPExpiry,
		OTPRequestInterval:       config.DefaultOTPRequestInterval,
		MaxOTPAttempts:           config.MaxOTPAttempts,
		SMSLimitPerNumberPerHour: config.DefaultSMSLimitPerNumberPerHour,
		GlobalSMSLimitPerHour:    config.DefaultGlobalSMSLimitPerHour,
		RateLimitWindow:          config.DefaultRateLimitWindow,
		DefaultVotingPeriod:      config.DefaultVotingPeriod,
	}
}

// fixture wires the full service graph onto in-memory stores and a fake
// gateway.
type fixture struct {
	cfg           *config.Config
	gateway       *fakeGateway
	otpRepo       repositories.OTPRepository
	memberRepo    repositories.MemberRepository
	proposalRepo  repositories.ProposalRepository
	voteRepo      repositories.VoteRepository
	shortCodeRepo repositories.ShortCodeRepository
	kycRepo       repositories.KYCRepository
	rateLimitRepo repositories.RateLimitRepository

	verification VerificationService
	members      MemberService
	kyc          KYCService
	votes        VoteService
	proposals    ProposalService
	smsVoting    SMSVotingService
}

func newFixture() *fixture {
	f := &fixture{
		cfg:           testConfig(),
		gateway:       newFakeGateway(),
		otpRepo:       repositories.NewMemoryOTPRepository(),
		memberRepo:    repositories.NewMemoryMemberRepository(),
		proposalRepo:  repositories.NewMemoryProposalRepository(),
		voteRepo:      repositories.NewMemoryVoteRepository(),
		shortCodeRepo: repositories.NewMemoryShortCodeRepository(),
		kycRepo:       repositories.NewMemoryKYCRepository(),
		rateLimitRepo: repositories.NewMemoryRateLimitRepository(),
	}

	rateLimiter := NewRateLimiterService(f.rateLimitRepo, f.cfg)
	f.kyc = NewKYCService(f.kycRepo, f.memberRepo)
	f.verification = NewVerificationService(f.otpRepo, f.memberRepo, f.kyc, rateLimiter, f.gateway, f.cfg)
	f.members = NewMemberService(f.memberRepo)
	f.votes = NewVoteService(f.voteRepo, f.proposalRepo)
	f.proposals = NewProposalService(f.proposalRepo, f.voteRepo, f.shortCodeRepo, f.cfg)
	f.smsVoting = NewSMSVotingService(f.shortCodeRepo, f.memberRepo, f.proposalRepo, f.votes, f.gateway)
	return f
}

// seedGroup creates a group and returns its id.
func (f *fixture) seedGroup(ctx context.Context) uuid.UUID {
	group := &models.Group{
		ID:        uuid.New(),
		Name:      "Umoja Savings Group",
		Location:  "Nairobi",
		KYCStatus: models.KYCPending,
		CreatedAt: time.Now(),
	}
	if err := f.memberRepo.CreateGroup(ctx, group); err != nil {
		panic(err)
	}
	return group.ID
}

// seedMember registers a member directly in the store.
func (f *fixture) seedMember(ctx context.Context, groupID uuid.UUID, phone string, verified bool) *models.Member {
	member := &models.Member{
		ID:            uuid.New(),
		PhoneNumber:   phone,
		FullName:      "Test Member " + phone,
		GroupID:       groupID,
		Role:          models.RoleMember,
		PhoneVerified: verified,
		KYCStatus:     models.KYCPending,
		CreatedAt:     time.Now(),
	}
	if err := f.memberRepo.CreateMember(ctx, member); err != nil {
		panic(err)
	}
	return member
}

// seedProposal creates a proposal in VOTING with the given deadline.
func (f *fixture) seedProposal(ctx context.Context, groupID uuid.UUID, deadline time.Time) *models.Proposal {
	proposal := &models.Proposal{
		ID:             uuid.New(),
		GroupID:        groupID,
		Title:          "Buy maize seed for the next planting season",
		CreatedBy:      uuid.New(),
		CreatedAt:      time.Now(),
		VotingDeadline: deadline,
		Status:         models.ProposalVoting,
	}
	if err := f.proposalRepo.Create(ctx, proposal); err != nil {
		panic(err)
	}
	return proposal
}
