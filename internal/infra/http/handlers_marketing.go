package http

import (
	"net/http"
	"time"

	"exsys/internal/domain"
	"exsys/internal/usecase"

	"github.com/gin-gonic/gin"
)

type campaignPayload struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Status        string   `json:"status"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	TargetClients []string `json:"targetClients"`
	ClientIDs     []string `json:"clientIds"`
	OfficeID      string   `json:"exchangeOfficeId"`
}

type campaignResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Status        string   `json:"status"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	OfficeID      string   `json:"exchangeOfficeId"`
	CreatedByID   string   `json:"createdById"`
	TargetClients []string `json:"targetClients"`
	CreatedAt     string   `json:"createdAt"`
}

func buildCampaignResponse(campaign domain.MarketingCampaign) campaignResponse {
	targets := campaign.TargetClients
	if targets == nil {
		targets = []string{}
	}
	return campaignResponse{
		ID:            campaign.ID,
		Title:         campaign.Title,
		Description:   campaign.Description,
		Status:        string(campaign.Status),
		StartDate:     campaign.StartDate.UTC().Format("2006-01-02"),
		EndDate:       campaign.EndDate.UTC().Format("2006-01-02"),
		OfficeID:      campaign.OfficeID,
		CreatedByID:   campaign.CreatedByID,
		TargetClients: targets,
		CreatedAt:     campaign.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func parseCampaignDate(value string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func (s *Server) handleCreateCampaign(c *gin.Context) {
	principal, _ := getPrincipal(c)
	var req campaignPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	start, okStart := parseCampaignDate(req.StartDate)
	end, okEnd := parseCampaignDate(req.EndDate)
	if !okStart || !okEnd {
		writeBadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	campaign, err := s.campaigns.Create(c.Request.Context(), principal, usecase.CreateCampaignInput{
		Title:         req.Title,
		Description:   req.Description,
		StartDate:     start,
		EndDate:       end,
		TargetClients: req.TargetClients,
		OfficeID:      req.OfficeID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, buildCampaignResponse(*campaign))
}

func (s *Server) handleCampaignDetails(c *gin.Context) {
	principal, _ := getPrincipal(c)
	campaign, err := s.campaigns.Details(c.Request.Context(), principal, c.Query("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildCampaignResponse(*campaign))
}

func (s *Server) handleListCampaigns(c *gin.Context) {
	principal, _ := getPrincipal(c)
	campaigns, err := s.campaigns.List(c.Request.Context(), principal)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]campaignResponse, 0, len(campaigns))
	for _, campaign := range campaigns {
		out = append(out, buildCampaignResponse(campaign))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCampaignStatus(c *gin.Context) {
	principal, _ := getPrincipal(c)
	var req campaignPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	campaign, err := s.campaigns.SetStatus(c.Request.Context(), principal, req.ID, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildCampaignResponse(*campaign))
}

func (s *Server) handleCampaignAddTargets(c *gin.Context) {
	principal, _ := getPrincipal(c)
	var req campaignPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	campaign, err := s.campaigns.AddTargets(c.Request.Context(), principal, req.ID, req.ClientIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildCampaignResponse(*campaign))
}

func (s *Server) handleCampaignRemoveTargets(c *gin.Context) {
	principal, _ := getPrincipal(c)
	var req campaignPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	campaign, err := s.campaigns.RemoveTargets(c.Request.Context(), principal, req.ID, req.ClientIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildCampaignResponse(*campaign))
}

type actionPayload struct {
	Title       string `json:"title"`
	ChannelType string `json:"channelType"`
	Content     string `json:"content"`
	CampaignID  string `json:"campaignId"`
}

type actionResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ChannelType string `json:"channelType"`
	Content     string `json:"content"`
	SentAt      string `json:"sentAt,omitempty"`
	CampaignID  string `json:"campaignId"`
	OfficeID    string `json:"exchangeOfficeId"`
	CreatedByID string `json:"createdById"`
	CreatedAt   string `json:"createdAt"`
}

func buildActionResponse(action domain.MarketingAction) actionResponse {
	out := actionResponse{
		ID:          action.ID,
		Title:       action.Title,
		ChannelType: string(action.ChannelType),
		Content:     action.Content,
		CampaignID:  action.CampaignID,
		OfficeID:    action.OfficeID,
		CreatedByID: action.CreatedByID,
		CreatedAt:   action.CreatedAt.UTC().Format(time.RFC3339),
	}
	if action.SentAt != nil {
		out.SentAt = action.SentAt.UTC().Format(time.RFC3339)
	}
	return out
}

// handleCreateAction creates the action and dispatches it to the
// campaign's target clients in one step.
func (s *Server) handleCreateAction(c *gin.Context) {
	principal, _ := getPrincipal(c)
	var req actionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	action, err := s.actions.Create(c.Request.Context(), principal, usecase.CreateActionInput{
		Title:       req.Title,
		ChannelType: req.ChannelType,
		Content:     req.Content,
		CampaignID:  req.CampaignID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	sent, err := s.actions.Send(c.Request.Context(), principal, action.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, buildActionResponse(*sent))
}

func (s *Server) handleActionDetails(c *gin.Context) {
	principal, _ := getPrincipal(c)
	action, err := s.actions.Details(c.Request.Context(), principal, c.Query("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildActionResponse(*action))
}

func (s *Server) handleActionsByCampaign(c *gin.Context) {
	principal, _ := getPrincipal(c)
	campaignID := c.Query("campaignId")
	if campaignID == "" {
		writeBadRequest(c, "Missing required parameter: campaignId")
		return
	}
	actions, err := s.actions.ListByCampaign(c.Request.Context(), principal, campaignID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]actionResponse, 0, len(actions))
	for _, action := range actions {
		out = append(out, buildActionResponse(action))
	}
	c.JSON(http.StatusOK, out)
}

type quickMessagePayload struct {
	Title         string   `json:"title"`
	ChannelType   string   `json:"channelType"`
	Content       string   `json:"content"`
	TargetClients []string `json:"targetClients"`
	OfficeID      string   `json:"exchangeOfficeId"`
}

type quickMessageResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	ChannelType   string   `json:"channelType"`
	Content       string   `json:"content"`
	SentAt        string   `json:"sentAt,omitempty"`
	OfficeID      string   `json:"exchangeOfficeId"`
	CreatedByID   string   `json:"createdById"`
	TargetClients []string `json:"targetClients"`
	CreatedAt     string   `json:"createdAt"`
}

func buildQuickMessageResponse(msg domain.QuickMessage) quickMessageResponse {
	targets := msg.TargetClients
	if targets == nil {
		targets = []string{}
	}
	out := quickMessageResponse{
		ID:            msg.ID,
		Title:         msg.Title,
		ChannelType:   string(msg.ChannelType),
		Content:       msg.Content,
		OfficeID:      msg.OfficeID,
		CreatedByID:   msg.CreatedByID,
		TargetClients: targets,
		CreatedAt:     msg.CreatedAt.UTC().Format(time.RFC3339),
	}
	if msg.SentAt != nil {
		out.SentAt = msg.SentAt.UTC().Format(time.RFC3339)
	}
	return out
}

// handleCreateQuickMessage creates and immediately sends the message;
// "quick" means there is no draft stage.
func (s *Server) handleCreateQuickMessage(c *gin.Context) {
	principal, _ := getPrincipal(c)
	var req quickMessagePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	msg, err := s.quick.Create(c.Request.Context(), principal, usecase.CreateQuickMessageInput{
		Title:         req.Title,
		ChannelType:   req.ChannelType,
		Content:       req.Content,
		TargetClients: req.TargetClients,
		OfficeID:      req.OfficeID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	sent, err := s.quick.Send(c.Request.Context(), principal, msg.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, buildQuickMessageResponse(*sent))
}

func (s *Server) handleQuickMessageDetails(c *gin.Context) {
	principal, _ := getPrincipal(c)
	msg, err := s.quick.Details(c.Request.Context(), principal, c.Query("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildQuickMessageResponse(*msg))
}

func (s *Server) handleListQuickMessages(c *gin.Context) {
	principal, _ := getPrincipal(c)
	msgs, err := s.quick.List(c.Request.Context(), principal)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]quickMessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, buildQuickMessageResponse(msg))
	}
	c.JSON(http.StatusOK, out)
}
