package http

import (
	"log"

	"exsys/internal/config"
	"exsys/internal/domain"
	"exsys/internal/infra/auth/access"
	"exsys/internal/infra/auth/token"
	"exsys/internal/infra/db"
	"exsys/internal/infra/messaging"
	"exsys/internal/infra/ratelimit"
	"exsys/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg config.Config
	r   *gin.Engine

	classifier *access.Classifier
	verifier   domain.TokenVerifier
	directory  domain.PrincipalDirectory

	auth         *usecase.AuthService
	users        *usecase.UserService
	offices      *usecase.OfficeService
	clients      *usecase.ClientService
	transactions *usecase.TransactionService
	campaigns    *usecase.CampaignService
	actions      *usecase.ActionService
	quick        *usecase.QuickMessageService
	reference    *usecase.ReferenceService

	loginLimiter domain.RateLimiter
	store        *db.Store
	tokenInitErr error
}

func NewServer(cfg config.Config, store *db.Store) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{cfg: cfg, store: store, r: r, classifier: access.Default()}
	s.initDeps()
	s.routes()
	return s
}

// ServerDeps lets tests assemble a server over fakes instead of a
// database.
type ServerDeps struct {
	Classifier   *access.Classifier
	Verifier     domain.TokenVerifier
	Directory    domain.PrincipalDirectory
	Auth         *usecase.AuthService
	Users        *usecase.UserService
	Offices      *usecase.OfficeService
	Clients      *usecase.ClientService
	Transactions *usecase.TransactionService
	Campaigns    *usecase.CampaignService
	Actions      *usecase.ActionService
	Quick        *usecase.QuickMessageService
	Reference    *usecase.ReferenceService
	LoginLimiter domain.RateLimiter
}

func NewServerWithDeps(cfg config.Config, deps ServerDeps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:          cfg,
		r:            r,
		classifier:   deps.Classifier,
		verifier:     deps.Verifier,
		directory:    deps.Directory,
		auth:         deps.Auth,
		users:        deps.Users,
		offices:      deps.Offices,
		clients:      deps.Clients,
		transactions: deps.Transactions,
		campaigns:    deps.Campaigns,
		actions:      deps.Actions,
		quick:        deps.Quick,
		reference:    deps.Reference,
		loginLimiter: deps.LoginLimiter,
	}
	if s.classifier == nil {
		s.classifier = access.Default()
	}
	s.routes()
	return s
}

func (s *Server) initDeps() {
	tokens, err := token.NewService(s.cfg.JWTSecret, s.cfg.TokenTTL())
	if err != nil {
		s.tokenInitErr = err
		return
	}
	s.verifier = tokens

	gdb := s.store.DB
	userRepo := db.NewUserRepository(gdb)
	officeRepo := db.NewOfficeRepository(gdb)
	clientRepo := db.NewClientRepository(gdb)
	txRepo := db.NewTransactionRepository(gdb)
	campaignRepo := db.NewCampaignRepository(gdb)
	actionRepo := db.NewActionRepository(gdb)
	quickRepo := db.NewQuickMessageRepository(gdb)
	segmentRepo := db.NewSegmentHistoryRepository(gdb)
	countryRepo := db.NewCountryRepository(gdb)

	s.directory = &db.PrincipalDirectory{Users: userRepo}
	sender := &messaging.LogSender{}

	s.auth = &usecase.AuthService{Users: userRepo, Tokens: tokens}
	s.users = &usecase.UserService{Users: userRepo, Offices: officeRepo}
	s.offices = &usecase.OfficeService{Offices: officeRepo, Users: userRepo, Clients: clientRepo}
	s.clients = &usecase.ClientService{Clients: clientRepo, Segments: segmentRepo, Offices: officeRepo}
	s.transactions = &usecase.TransactionService{Transactions: txRepo, Clients: clientRepo}
	s.campaigns = &usecase.CampaignService{Campaigns: campaignRepo, Clients: clientRepo}
	s.actions = &usecase.ActionService{Actions: actionRepo, Campaigns: campaignRepo, Sender: sender}
	s.quick = &usecase.QuickMessageService{Messages: quickRepo, Clients: clientRepo, Sender: sender}
	s.reference = &usecase.ReferenceService{Countries: countryRepo}

	s.initLoginLimiter()
}

func (s *Server) initLoginLimiter() {
	if s.cfg.LoginRateLimit <= 0 {
		return
	}
	if s.cfg.RedisAddr != "" {
		limiter, err := ratelimit.NewRedisLimiter(s.cfg.RedisAddr, s.cfg.RedisPassword, s.cfg.RedisDB, nil)
		if err == nil {
			s.loginLimiter = limiter
			return
		}
		log.Printf("redis limiter unavailable, using in-memory fallback: %v", err)
	}
	s.loginLimiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{
		MaxKeys: s.cfg.LoginRateMaxKeys,
	})
}

func (s *Server) routes() {
	s.r.Use(s.gate)

	s.r.GET("/healthz", s.handleHealthz)

	api := s.r.Group("/api")
	{
		api.POST("/auth/login", s.rateLimitLogin, s.handleLogin)
		api.GET("/auth/me", s.handleMe)
		api.GET("/doc", s.handleDoc)
		api.GET("/doc.json", s.handleDocJSON)

		api.GET("/shared/transactions/details", s.handleSharedTransactionDetails)

		api.POST("/clients", s.handleCreateClient)
		api.PUT("/clients", s.handleUpdateClient)
		api.DELETE("/clients", s.handleDeleteClient)
		api.GET("/clients/details", s.handleClientDetails)
		api.GET("/clients/my-clients", s.handleMyClients)
		api.GET("/clients/by-office", s.handleClientsByOffice)
		api.GET("/clients/admin/by-exchange-office", s.handleClientsByOffice)
		api.GET("/clients/grouped-by-exchange-office", s.handleClientsGrouped)
		api.GET("/clients/segment-history", s.handleClientSegmentHistory)

		api.POST("/transactions", s.handleCreateTransaction)
		api.GET("/transactions/my-office", s.handleMyOfficeTransactions)
		api.GET("/transactions/by-exchange-office", s.handleTransactionsByOffice)
		api.GET("/transactions/by-client", s.handleTransactionsByClient)
		api.GET("/transactions/details", s.handleTransactionDetails)
		api.PUT("/transactions/update", s.handleUpdateTransaction)
		api.DELETE("/transactions/delete", s.handleDeleteTransaction)

		api.POST("/users", s.handleCreateUser)
		api.GET("/users", s.handleListUsers)
		api.PUT("/users/update", s.handleUpdateUser)
		api.PATCH("/users/status", s.handleUserStatus)
		api.PUT("/users/reset-password", s.handleResetPassword)
		api.PUT("/users/change-password", s.handleChangePassword)
		api.GET("/users/agents/grouped-by-exchange-office", s.handleAgentsGrouped)

		api.POST("/exchange-offices", s.handleCreateOffice)
		api.GET("/exchange-offices", s.handleListOffices)
		api.PUT("/exchange-offices", s.handleUpdateOffice)
		api.DELETE("/exchange-offices", s.handleDeleteOffice)
		api.PATCH("/exchange-offices/status", s.handleOfficeStatus)
		api.GET("/exchange-offices/my-office", s.handleMyOffice)

		api.POST("/marketing-campaigns", s.handleCreateCampaign)
		api.GET("/marketing-campaigns", s.handleCampaignDetails)
		api.GET("/marketing-campaigns/list", s.handleListCampaigns)
		api.PATCH("/marketing-campaigns/status", s.handleCampaignStatus)
		api.POST("/marketing-campaigns/add-target-clients", s.handleCampaignAddTargets)
		api.DELETE("/marketing-campaigns/remove-target-clients", s.handleCampaignRemoveTargets)

		api.POST("/agent/marketing-action", s.handleCreateAction)
		api.GET("/agent/marketing-action", s.handleActionDetails)
		api.GET("/agent/marketing-actions/by-campaign", s.handleActionsByCampaign)

		api.POST("/agent/quick-message", s.handleCreateQuickMessage)
		api.GET("/agent/quick-message", s.handleQuickMessageDetails)
		api.GET("/agent/quick-messages", s.handleListQuickMessages)

		api.GET("/countries", s.handleListCountries)
		api.GET("/enums/genders", s.handleEnumGenders)
		api.GET("/enums/nationalities", s.handleEnumNationalities)
		api.GET("/enums/acquisition-sources", s.handleEnumAcquisitionSources)
		api.GET("/enums/roles", s.handleEnumRoles)
		api.GET("/enums/statuses", s.handleEnumStatuses)
		api.GET("/enums/currencies", s.handleEnumCurrencies)
		api.GET("/enums/campaign-statuses", s.handleEnumCampaignStatuses)
		api.GET("/enums/channel-types", s.handleEnumChannelTypes)
		api.GET("/enums/all", s.handleEnumAll)
	}
}

func (s *Server) Run() error {
	if s.tokenInitErr != nil {
		return s.tokenInitErr
	}
	return s.r.Run(s.cfg.HTTPAddr)
}
