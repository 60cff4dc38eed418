package routes

const (
	// Health
	Health = "/health"

	// Groups
	GroupsBase     = "/api/v1/groups"
	GroupByID      = "/api/v1/groups/{groupId}"
	GroupMembers   = "/api/v1/groups/{groupId}/members"
	GroupProposals = "/api/v1/groups/{groupId}/proposals"

	// Members
	MembersBase         = "/api/v1/members"
	MemberByID          = "/api/v1/members/{memberId}"
	MemberByPhone       = "/api/v1/members/phone/{phoneNumber}"
	MemberVotingHistory = "/api/v1/members/{memberId}/voting-history"

	// Phone verification
	PhoneRequestOTP = "/api/v1/phone/request-otp"
	PhoneVerifyOTP  = "/api/v1/phone/verify-otp"
	PhoneOTPStatus  = "/api/v1/phone/otp-status"

	// KYC
	KYCDocuments       = "/api/v1/kyc/documents"
	KYCMemberDocuments = "/api/v1/kyc/members/{memberId}/documents"
	KYCReview          = "/api/v1/kyc/review"
	KYCMemberReviews   = "/api/v1/kyc/members/{memberId}/reviews"

	// Proposals and SMS voting
	ProposalsBase          = "/api/v1/proposals"
	ProposalByID           = "/api/v1/proposals/{proposalId}"
	ProposalsByStatus      = "/api/v1/proposals/status/{status}"
	ProposalStartSMSVoting = "/api/v1/proposals/{proposalId}/start-sms-voting"
	ProposalSMSStatus      = "/api/v1/proposals/{proposalId}/sms-status"

	// Inbound SMS webhook (Twilio)
	WebhooksSMS = "/api/v1/webhooks/sms"
)
