package http

import (
	"net/http"

	"exsys/internal/domain"
	"exsys/internal/errcode"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeDenial maps a denial reason to its HTTP status through the
// resolver and emits the flat error body every endpoint shares.
func writeDenial(c *gin.Context, reason string) {
	c.JSON(errcode.Resolve(reason), errorResponse{Error: reason})
}

// writeError renders service errors. Denials carry their own reason and
// status; anything else is an infrastructure failure and is never
// reinterpreted as an authorization outcome.
func writeError(c *gin.Context, err error) {
	if denial, ok := domain.AsDenial(err); ok {
		writeDenial(c, denial.Reason)
		return
	}
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}

func writeBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: message})
}
