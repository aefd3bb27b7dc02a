package http

import (
	"net/http"
	"strconv"
	"time"

	"exsys/internal/usecase"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealthz(c *gin.Context) {
	mode := "no-db"
	if s.store != nil && s.store.DB != nil {
		mode = "db"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": mode})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type principalResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	OfficeID   string `json:"exchangeOfficeId,omitempty"`
	OfficeName string `json:"exchangeOfficeName,omitempty"`
}

type loginResponse struct {
	Token     string            `json:"token"`
	ExpiresIn int64             `json:"expiresIn"`
	User      principalResponse `json:"user"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	result, err := s.auth.Login(c.Request.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
		User: principalResponse{
			ID:         result.User.ID,
			Email:      result.User.Email,
			FirstName:  result.User.FirstName,
			LastName:   result.User.LastName,
			Phone:      result.User.Phone,
			Role:       string(result.User.Role),
			Status:     string(result.User.Status),
			OfficeID:   result.User.OfficeID,
			OfficeName: result.User.OfficeName,
		},
	})
}

func (s *Server) handleMe(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		writeDenial(c, msgInvalidToken)
		return
	}
	c.JSON(http.StatusOK, principalResponse{
		ID:         principal.ID,
		Email:      principal.Email,
		FirstName:  principal.FirstName,
		LastName:   principal.LastName,
		Phone:      principal.Phone,
		Role:       string(principal.Role),
		Status:     string(principal.Status),
		OfficeID:   principal.OfficeID,
		OfficeName: principal.OfficeName,
	})
}

// rateLimitLogin throttles login attempts per client IP. With no
// limiter configured it is a no-op.
func (s *Server) rateLimitLogin(c *gin.Context) {
	if s.loginLimiter == nil || s.cfg.LoginRateLimit <= 0 {
		c.Next()
		return
	}
	key := "login:" + c.ClientIP()
	decision, err := s.loginLimiter.Allow(c.Request.Context(), key, s.cfg.LoginRateLimit, s.cfg.LoginRateWindow())
	if err != nil {
		// Fail open: a broken limiter must not lock everyone out.
		c.Next()
		return
	}
	c.Header("RateLimit-Limit", strconv.Itoa(decision.Limit))
	c.Header("RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	c.Header("RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
	if !decision.Allowed {
		retryAfter := int(time.Until(decision.ResetAt).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{
			Error: "Too many login attempts. Please try again later.",
		})
		return
	}
	c.Next()
}

func (s *Server) handleDoc(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "exsys API",
		"docJson": "/api/doc.json",
	})
}

func (s *Server) handleDocJSON(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"openapi": "3.0.0",
		"info": gin.H{
			"title":   "exsys API",
			"version": "1.0.0",
		},
	})
}

func (s *Server) handleListCountries(c *gin.Context) {
	countries, err := s.reference.ListCountries(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, countries)
}

func (s *Server) handleEnumGenders(c *gin.Context) {
	c.JSON(http.StatusOK, s.reference.Enums().Genders)
}

func (s *Server) handleEnumNationalities(c *gin.Context) {
	nationalities, err := s.reference.Nationalities(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nationalities)
}

func (s *Server) handleEnumAcquisitionSources(c *gin.Context) {
	c.JSON(http.StatusOK, s.reference.Enums().AcquisitionSources)
}

func (s *Server) handleEnumRoles(c *gin.Context) {
	c.JSON(http.StatusOK, s.reference.Enums().Roles)
}

func (s *Server) handleEnumStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, s.reference.Enums().Statuses)
}

func (s *Server) handleEnumCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, s.reference.Enums().Currencies)
}

func (s *Server) handleEnumCampaignStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, s.reference.Enums().CampaignStatuses)
}

func (s *Server) handleEnumChannelTypes(c *gin.Context) {
	c.JSON(http.StatusOK, s.reference.Enums().ChannelTypes)
}

func (s *Server) handleEnumAll(c *gin.Context) {
	c.JSON(http.StatusOK, s.reference.Enums())
}
