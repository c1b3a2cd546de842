package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/neurobridge-disguise/internal/platform/ctxutil"
)

// APIError is the body of every non-2xx response.
type APIError struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func envelope(c *gin.Context, code string, err error) ErrorEnvelope {
	body := APIError{Message: "unknown error", Code: code}
	if err != nil {
		body.Message = err.Error()
	}
	if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
		body.RequestID = td.RequestID
	}
	return ErrorEnvelope{Error: body}
}

func RespondError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, envelope(c, code, err))
}

// AbortError writes the envelope and stops the handler chain.
func AbortError(c *gin.Context, status int, code string, err error) {
	c.AbortWithStatusJSON(status, envelope(c, code, err))
}

func RespondOK(c *gin.Context, payload any) { c.JSON(http.StatusOK, payload) }
