package http

import (
	"net/http"
	"strconv"
	"time"

	"exsys/internal/domain"
	"exsys/internal/usecase"

	"github.com/gin-gonic/gin"
)

type clientPayload struct {
	ID                string `json:"id"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	BirthDate         string `json:"birthDate"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	WhatsApp          string `json:"whatsapp"`
	NationalID        string `json:"nationalId"`
	Passport          string `json:"passportNumber"`
	CountryCode       string `json:"countryCode"`
	Residence         string `json:"residenceCountry"`
	Gender            string `json:"gender"`
	AcquisitionSource string `json:"acquisitionSource"`
	CurrentSegment    string `json:"currentSegment"`
	Status            string `json:"status"`
	OfficeID          string `json:"exchangeOfficeId"`
}

type clientResponse struct {
	ID                string `json:"id"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	BirthDate         string `json:"birthDate,omitempty"`
	Email             string `json:"email,omitempty"`
	Phone             string `json:"phone,omitempty"`
	WhatsApp          string `json:"whatsapp,omitempty"`
	NationalID        string `json:"nationalId,omitempty"`
	Passport          string `json:"passportNumber,omitempty"`
	CountryCode       string `json:"countryCode,omitempty"`
	Residence         string `json:"residenceCountry,omitempty"`
	Gender            string `json:"gender,omitempty"`
	AcquisitionSource string `json:"acquisitionSource,omitempty"`
	Status            string `json:"status"`
	CurrentSegment    string `json:"currentSegment,omitempty"`
	OfficeID          string `json:"exchangeOfficeId"`
	CreatedAt         string `json:"createdAt"`
}

func buildClientResponse(client domain.Client) clientResponse {
	out := clientResponse{
		ID:                client.ID,
		FirstName:         client.FirstName,
		LastName:          client.LastName,
		Email:             client.Email,
		Phone:             client.Phone,
		WhatsApp:          client.WhatsApp,
		NationalID:        client.NationalID,
		Passport:          client.Passport,
		CountryCode:       client.CountryCode,
		Residence:         client.Residence,
		Gender:            string(client.Gender),
		AcquisitionSource: string(client.AcquisitionSource),
		Status:            string(client.Status),
		CurrentSegment:    client.CurrentSegment,
		OfficeID:          client.OfficeID,
		CreatedAt:         client.CreatedAt.UTC().Format(time.RFC3339),
	}
	if client.BirthDate != nil {
		out.BirthDate = client.BirthDate.Format("2006-01-02")
	}
	return out
}

func parseBirthDate(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

func (s *Server) handleCreateClient(c *gin.Context) {
	principal, _ := getPrincipal(c)
	var req clientPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	birthDate, ok := parseBirthDate(req.BirthDate)
	if !ok {
		writeBadRequest(c, "Invalid birth date format, expected YYYY-MM-DD")
		return
	}
	client, err := s.clients.Create(c.Request.Context(), principal, usecase.CreateClientInput{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		BirthDate:         birthDate,
		Email:             req.Email,
		Phone:             req.Phone,
		WhatsApp:          req.WhatsApp,
		NationalID:        req.NationalID,
		Passport:          req.Passport,
		CountryCode:       req.CountryCode,
		Residence:         req.Residence,
		Gender:            req.Gender,
		AcquisitionSource: req.AcquisitionSource,
		CurrentSegment:    req.CurrentSegment,
		OfficeID:          req.OfficeID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, buildClientResponse(*client))
}

func (s *Server) handleUpdateClient(c *gin.Context) {
	principal, _ := getPrincipal(c)
	var req clientPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	birthDate, ok := parseBirthDate(req.BirthDate)
	if !ok {
		writeBadRequest(c, "Invalid birth date format, expected YYYY-MM-DD")
		return
	}
	client, err := s.clients.Update(c.Request.Context(), principal, req.ID, usecase.UpdateClientInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		BirthDate:      birthDate,
		Email:          req.Email,
		Phone:          req.Phone,
		WhatsApp:       req.WhatsApp,
		NationalID:     req.NationalID,
		Passport:       req.Passport,
		CountryCode:    req.CountryCode,
		Residence:      req.Residence,
		Gender:         req.Gender,
		CurrentSegment: req.CurrentSegment,
		Status:         req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildClientResponse(*client))
}

func (s *Server) handleDeleteClient(c *gin.Context) {
	principal, _ := getPrincipal(c)
	if err := s.clients.Delete(c.Request.Context(), principal, c.Query("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

func (s *Server) handleClientDetails(c *gin.Context) {
	principal, _ := getPrincipal(c)
	client, err := s.clients.Details(c.Request.Context(), principal, c.Query("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildClientResponse(*client))
}

func clientListInputFromQuery(c *gin.Context) usecase.ClientListInput {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return usecase.ClientListInput{
		Segment:  c.Query("segment"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Limit:    limit,
		Offset:   offset,
		OfficeID: c.Query("exchangeOfficeId"),
	}
}

func buildClientListResponse(list *usecase.ClientList) gin.H {
	out := make([]clientResponse, 0, len(list.Clients))
	for _, client := range list.Clients {
		out = append(out, buildClientResponse(client))
	}
	return gin.H{"clients": out, "total": list.Total}
}

func (s *Server) handleMyClients(c *gin.Context) {
	principal, _ := getPrincipal(c)
	list, err := s.clients.List(c.Request.Context(), principal, clientListInputFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildClientListResponse(list))
}

func (s *Server) handleClientsByOffice(c *gin.Context) {
	principal, _ := getPrincipal(c)
	input := clientListInputFromQuery(c)
	if input.OfficeID == "" {
		writeBadRequest(c, "Missing required parameter: exchangeOfficeId")
		return
	}
	list, err := s.clients.List(c.Request.Context(), principal, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildClientListResponse(list))
}

func (s *Server) handleClientsGrouped(c *gin.Context) {
	grouped, err := s.clients.GroupedByOffice(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(grouped))
	for _, group := range grouped {
		clients := make([]clientResponse, 0, len(group.Clients))
		for _, client := range group.Clients {
			clients = append(clients, buildClientResponse(client))
		}
		out = append(out, gin.H{
			"exchangeOffice": gin.H{"id": group.Office.ID, "name": group.Office.Name},
			"clients":        clients,
			"total":          group.Total,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleClientSegmentHistory(c *gin.Context) {
	principal, _ := getPrincipal(c)
	entries, err := s.clients.SegmentHistory(c.Request.Context(), principal, c.Query("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		out = append(out, gin.H{
			"segment":   entry.Segment,
			"changedAt": entry.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}
