package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/app"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/config"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/controllers"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/repositories"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/routes"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/services"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize application:", err)
	}
	defer application.Close()

	//----------------------------------------------------------------------
	// Repositories
	//----------------------------------------------------------------------
	var (
		otpRepo       repositories.OTPRepository
		memberRepo    repositories.MemberRepository
		proposalRepo  repositories.ProposalRepository
		voteRepo      repositories.VoteRepository
		shortCodeRepo repositories.ShortCodeRepository
		kycRepo       repositories.KYCRepository
		rateLimitRepo repositories.RateLimitRepository
	)
	if application.DB != nil {
		otpRepo = repositories.NewPGOTPRepository(application.DB)
		memberRepo = repositories.NewPGMemberRepository(application.DB)
		proposalRepo = repositories.NewPGProposalRepository(application.DB)
		voteRepo = repositories.NewPGVoteRepository(application.DB)
		shortCodeRepo = repositories.NewPGShortCodeRepository(application.DB)
		kycRepo = repositories.NewPGKYCRepository(application.DB)
		rateLimitRepo = repositories.NewPGRateLimitRepository(application.DB)
	} else {
		otpRepo = repositories.NewMemoryOTPRepository()
		memberRepo = repositories.NewMemoryMemberRepository()
		proposalRepo = repositories.NewMemoryProposalRepository()
		voteRepo = repositories.NewMemoryVoteRepository()
		shortCodeRepo = repositories.NewMemoryShortCodeRepository()
		kycRepo = repositories.NewMemoryKYCRepository()
		rateLimitRepo = repositories.NewMemoryRateLimitRepository()
	}

	//----------------------------------------------------------------------
	// Services
	//----------------------------------------------------------------------
	gateway := services.NewSMSGateway(cfg)
	rateLimiterService := services.NewRateLimiterService(rateLimitRepo, cfg)
	kycService := services.NewKYCService(kycRepo, memberRepo)
	verificationService := services.NewVerificationService(
		otpRepo,
		memberRepo,
		kycService,
		rateLimiterService,
		gateway,
		cfg,
	)
	memberService := services.NewMemberService(memberRepo)
	voteService := services.NewVoteService(voteRepo, proposalRepo)
	proposalService := services.NewProposalService(proposalRepo, voteRepo, shortCodeRepo, cfg)
	smsVotingService := services.NewSMSVotingService(
		shortCodeRepo,
		memberRepo,
		proposalRepo,
		voteService,
		gateway,
	)
	cleanupService := services.NewCleanupService(otpRepo, rateLimitRepo)

	//----------------------------------------------------------------------
	// Controllers
	//----------------------------------------------------------------------
	healthController := controllers.NewHealthController(application)
	verificationController := controllers.NewVerificationController(verificationService)
	memberController := controllers.NewMemberController(memberService, voteService)
	kycController := controllers.NewKYCController(kycService)
	proposalController := controllers.NewProposalController(proposalService, smsVotingService)
	smsWebhookController := controllers.NewSMSWebhookController(smsVotingService)

	//----------------------------------------------------------------------
	// Router & Endpoints
	//----------------------------------------------------------------------
	router := mux.NewRouter()

	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods("GET")

	router.HandleFunc(routes.GroupsBase, memberController.CreateGroupHandler).Methods("POST")
	router.HandleFunc(routes.GroupsBase, memberController.ListGroupsHandler).Methods("GET")
	router.HandleFunc(routes.GroupByID, memberController.GetGroupHandler).Methods("GET")
	router.HandleFunc(routes.GroupMembers, memberController.ListGroupMembersHandler).Methods("GET")
	router.HandleFunc(routes.GroupProposals, proposalController.ListGroupProposalsHandler).Methods("GET")

	router.HandleFunc(routes.MembersBase, memberController.RegisterMemberHandler).Methods("POST")
	router.HandleFunc(routes.MemberByID, memberController.GetMemberHandler).Methods("GET")
	router.HandleFunc(routes.MemberByPhone, memberController.GetMemberByPhoneHandler).Methods("GET")
	router.HandleFunc(routes.MemberVotingHistory, memberController.VotingHistoryHandler).Methods("GET")

	router.HandleFunc(routes.PhoneRequestOTP, verificationController.RequestOTPHandler).Methods("POST")
	router.HandleFunc(routes.PhoneVerifyOTP, verificationController.VerifyOTPHandler).Methods("POST")
	router.HandleFunc(routes.PhoneOTPStatus, verificationController.OTPStatusHandler).Methods("GET")

	router.HandleFunc(routes.KYCDocuments, kycController.SubmitDocumentHandler).Methods("POST")
	router.HandleFunc(routes.KYCMemberDocuments, kycController.ListMemberDocumentsHandler).Methods("GET")
	router.HandleFunc(routes.KYCReview, kycController.ReviewHandler).Methods("POST")
	router.HandleFunc(routes.KYCMemberReviews, kycController.ListMemberReviewsHandler).Methods("GET")

	router.HandleFunc(routes.ProposalsBase, proposalController.CreateProposalHandler).Methods("POST")
	router.HandleFunc(routes.ProposalByID, proposalController.GetProposalHandler).Methods("GET")
	router.HandleFunc(routes.ProposalsByStatus, proposalController.ListProposalsByStatusHandler).Methods("GET")
	router.HandleFunc(routes.ProposalStartSMSVoting, proposalController.StartSMSVotingHandler).Methods("POST")
	router.HandleFunc(routes.ProposalSMSStatus, proposalController.SMSVotingStatusHandler).Methods("GET")

	router.HandleFunc(routes.WebhooksSMS, smsWebhookController.InboundSMSHandler).Methods("POST")

	//----------------------------------------------------------------------
	// Scheduled jobs
	//----------------------------------------------------------------------
	c := cron.New()

	// deadline sweep
	_, schErr1 := c.AddFunc("@every 1m", func() {
		if _, e := proposalService.CheckVotingDeadlines(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled voting deadline sweep failed")
		}
	})
	if schErr1 != nil {
		utils.Logger.WithError(schErr1).Fatal("Failed to schedule voting deadline sweep")
	}

	// expired OTP and rate limit counter cleanup
	_, schErr2 := c.AddFunc("@every 10m", func() {
		cleanupService.Run(context.Background())
	})
	if schErr2 != nil {
		utils.Logger.WithError(schErr2).Fatal("Failed to schedule cleanup job")
	}

	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Failed to start server:", err)
	}
}
