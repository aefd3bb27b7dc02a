package http

import (
	"net/http"
	"time"

	"exsys/internal/domain"
	"exsys/internal/usecase"

	"github.com/gin-gonic/gin"
)

type userPayload struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	OfficeID  string `json:"exchangeOfficeId"`
}

type userResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	OfficeID   string `json:"exchangeOfficeId,omitempty"`
	OfficeName string `json:"exchangeOfficeName,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

func buildUserResponse(user domain.User) userResponse {
	return userResponse{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Phone:      user.Phone,
		Role:       string(user.Role),
		Status:     string(user.Status),
		OfficeID:   user.OfficeID,
		OfficeName: user.OfficeName,
		CreatedAt:  user.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var req userPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	user, err := s.users.Create(c.Request.Context(), usecase.CreateUserInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      req.Role,
		OfficeID:  req.OfficeID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, buildUserResponse(*user))
}

func (s *Server) handleListUsers(c *gin.Context) {
	principal, _ := getPrincipal(c)
	users, err := s.users.List(c.Request.Context(), principal)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, buildUserResponse(user))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	var req userPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	user, err := s.users.Update(c.Request.Context(), req.ID, usecase.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		OfficeID:  req.OfficeID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildUserResponse(*user))
}

func (s *Server) handleUserStatus(c *gin.Context) {
	var req userPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	user, err := s.users.SetStatus(c.Request.Context(), req.ID, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildUserResponse(*user))
}

type resetPasswordRequest struct {
	ID          string `json:"id"`
	NewPassword string `json:"newPassword"`
}

func (s *Server) handleResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	if err := s.users.ResetPassword(c.Request.Context(), req.ID, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) handleChangePassword(c *gin.Context) {
	principal, _ := getPrincipal(c)
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	err := s.users.ChangePassword(c.Request.Context(), principal, usecase.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (s *Server) handleAgentsGrouped(c *gin.Context) {
	grouped, err := s.users.AgentsByOffice(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(grouped))
	for _, group := range grouped {
		agents := make([]userResponse, 0, len(group.Agents))
		for _, agent := range group.Agents {
			agents = append(agents, buildUserResponse(agent))
		}
		out = append(out, gin.H{
			"exchangeOffice": buildOfficeResponse(group.Office),
			"agents":         agents,
		})
	}
	c.JSON(http.StatusOK, out)
}

type officePayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Status  string `json:"status"`
}

type officeResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func buildOfficeResponse(office domain.ExchangeOffice) officeResponse {
	return officeResponse{
		ID:        office.ID,
		Name:      office.Name,
		Address:   office.Address,
		City:      office.City,
		Phone:     office.Phone,
		Email:     office.Email,
		Status:    string(office.Status),
		CreatedAt: office.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleCreateOffice(c *gin.Context) {
	var req officePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	office, err := s.offices.Create(c.Request.Context(), usecase.CreateOfficeInput{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, buildOfficeResponse(*office))
}

func (s *Server) handleListOffices(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		office, err := s.offices.Details(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, buildOfficeResponse(*office))
		return
	}
	offices, err := s.offices.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]officeResponse, 0, len(offices))
	for _, office := range offices {
		out = append(out, buildOfficeResponse(office))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleUpdateOffice(c *gin.Context) {
	var req officePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	office, err := s.offices.Update(c.Request.Context(), req.ID, usecase.UpdateOfficeInput{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildOfficeResponse(*office))
}

func (s *Server) handleDeleteOffice(c *gin.Context) {
	if err := s.offices.Delete(c.Request.Context(), c.Query("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exchange office deleted successfully"})
}

func (s *Server) handleOfficeStatus(c *gin.Context) {
	var req officePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	office, err := s.offices.SetStatus(c.Request.Context(), req.ID, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildOfficeResponse(*office))
}

func (s *Server) handleMyOffice(c *gin.Context) {
	principal, _ := getPrincipal(c)
	office, err := s.offices.MyOffice(c.Request.Context(), principal)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildOfficeResponse(*office))
}
