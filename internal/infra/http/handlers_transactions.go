package http

import (
	"net/http"
	"time"

	"exsys/internal/domain"
	"exsys/internal/usecase"

	"github.com/gin-gonic/gin"
)

type transactionPayload struct {
	ID              string   `json:"id"`
	Amount          *float64 `json:"amount"`
	SourceCurrency  string   `json:"sourceCurrency"`
	TargetCurrency  string   `json:"targetCurrency"`
	ExchangeRate    *float64 `json:"exchangeRate"`
	TransactionDate string   `json:"transactionDate"`
	ClientID        string   `json:"clientId"`
}

type transactionResponse struct {
	ID              string  `json:"id"`
	Amount          float64 `json:"amount"`
	SourceCurrency  string  `json:"sourceCurrency"`
	TargetCurrency  string  `json:"targetCurrency"`
	ExchangeRate    float64 `json:"exchangeRate"`
	TransactionDate string  `json:"transactionDate"`
	ClientID        string  `json:"clientId"`
	OfficeID        string  `json:"exchangeOfficeId"`
}

func buildTransactionResponse(tx domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:              tx.ID,
		Amount:          tx.Amount,
		SourceCurrency:  string(tx.SourceCurrency),
		TargetCurrency:  string(tx.TargetCurrency),
		ExchangeRate:    tx.ExchangeRate,
		TransactionDate: tx.TransactionDate.UTC().Format(time.RFC3339),
		ClientID:        tx.ClientID,
		OfficeID:        tx.OfficeID,
	}
}

func parseTransactionDate(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed, true
		}
	}
	return nil, false
}

func (s *Server) handleCreateTransaction(c *gin.Context) {
	principal, _ := getPrincipal(c)
	var req transactionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	date, ok := parseTransactionDate(req.TransactionDate)
	if !ok {
		writeBadRequest(c, "Invalid transaction date format")
		return
	}
	input := usecase.CreateTransactionInput{
		SourceCurrency:  req.SourceCurrency,
		TargetCurrency:  req.TargetCurrency,
		TransactionDate: date,
		ClientID:        req.ClientID,
	}
	if req.Amount != nil {
		input.Amount = *req.Amount
	}
	if req.ExchangeRate != nil {
		input.ExchangeRate = *req.ExchangeRate
	}
	tx, err := s.transactions.Create(c.Request.Context(), principal, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, buildTransactionResponse(*tx))
}

func (s *Server) handleMyOfficeTransactions(c *gin.Context) {
	principal, _ := getPrincipal(c)
	txs, err := s.transactions.List(c.Request.Context(), principal)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildTransactionList(txs))
}

func (s *Server) handleTransactionsByOffice(c *gin.Context) {
	principal, _ := getPrincipal(c)
	txs, err := s.transactions.List(c.Request.Context(), principal)
	if err != nil {
		writeError(c, err)
		return
	}
	if officeID := c.Query("exchangeOfficeId"); officeID != "" {
		filtered := txs[:0]
		for _, tx := range txs {
			if tx.OfficeID == officeID {
				filtered = append(filtered, tx)
			}
		}
		txs = filtered
	}
	c.JSON(http.StatusOK, buildTransactionList(txs))
}

func (s *Server) handleTransactionsByClient(c *gin.Context) {
	principal, _ := getPrincipal(c)
	clientID := c.Query("clientId")
	if clientID == "" {
		writeBadRequest(c, "Missing required parameter: clientId")
		return
	}
	txs, err := s.transactions.ListByClient(c.Request.Context(), principal, clientID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildTransactionList(txs))
}

func (s *Server) handleUpdateTransaction(c *gin.Context) {
	principal, _ := getPrincipal(c)
	var req transactionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "Invalid JSON data")
		return
	}
	date, ok := parseTransactionDate(req.TransactionDate)
	if !ok {
		writeBadRequest(c, "Invalid transaction date format")
		return
	}
	tx, err := s.transactions.Update(c.Request.Context(), principal, req.ID, usecase.UpdateTransactionInput{
		Amount:          req.Amount,
		SourceCurrency:  req.SourceCurrency,
		TargetCurrency:  req.TargetCurrency,
		ExchangeRate:    req.ExchangeRate,
		TransactionDate: date,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildTransactionResponse(*tx))
}

func (s *Server) handleDeleteTransaction(c *gin.Context) {
	principal, _ := getPrincipal(c)
	if err := s.transactions.Delete(c.Request.Context(), principal, c.Query("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

func (s *Server) handleTransactionDetails(c *gin.Context) {
	principal, _ := getPrincipal(c)
	tx, err := s.transactions.Details(c.Request.Context(), principal, c.Query("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildTransactionResponse(*tx))
}

func (s *Server) handleSharedTransactionDetails(c *gin.Context) {
	tx, err := s.transactions.SharedDetails(c.Request.Context(), c.Query("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildTransactionResponse(*tx))
}

func buildTransactionList(txs []domain.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, buildTransactionResponse(tx))
	}
	return out
}
