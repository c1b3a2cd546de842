package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/http/middleware"
	"github.com/yungbote/neurobridge-disguise/internal/http/response"
	"github.com/yungbote/neurobridge-disguise/internal/services"
)

type NavigationHandler struct {
	guard services.NavigationGuard
}

func NewNavigationHandler(guard services.NavigationGuard) *NavigationHandler {
	return &NavigationHandler{guard: guard}
}

type identityView struct {
	UserID     uuid.UUID `json:"user_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Disguised  bool      `json:"disguised"`
	RealUserID uuid.UUID `json:"real_user_id"`
	ContextID  uuid.UUID `json:"context_id,omitempty"`
}

func identityOf(sess *types.Session) identityView {
	v := identityView{
		UserID:     sess.User.ID,
		FirstName:  sess.User.FirstName,
		LastName:   sess.User.LastName,
		Disguised:  sess.IsDisguised(),
		RealUserID: sess.RealUserID(),
	}
	if sess.IsDisguised() {
		v.ContextID = sess.Disguise.ContextID
	}
	return v
}

type decisionView struct {
	Prompt      bool         `json:"prompt"`
	RedirectURL string       `json:"redirect_url,omitempty"`
	ContextID   uuid.UUID    `json:"context_id,omitempty"`
	Optional    bool         `json:"optional"`
	SwappedOut  bool         `json:"swapped_out"`
	Identity    identityView `json:"identity"`
}

// GET /navigation/check?pagetype=&course_id=&module_id=&url=&returnurl=
func (h *NavigationHandler) Check(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("no session"))
		return
	}
	courseID, err := parseOptionalUUID(c.Query("course_id"), "course_id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	moduleID, err := parseOptionalUUID(c.Query("module_id"), "module_id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	d, err := h.guard.Check(c.Request.Context(), sess, services.Page{
		Type:      c.Query("pagetype"),
		CourseID:  courseID,
		ModuleID:  moduleID,
		URL:       c.Query("url"),
		ReturnURL: c.Query("returnurl"),
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	middleware.SetSession(c, d.Session)
	response.RespondOK(c, decisionView{
		Prompt:      d.Prompt,
		RedirectURL: d.RedirectURL,
		ContextID:   d.ContextID,
		Optional:    d.Optional,
		SwappedOut:  d.SwappedOut,
		Identity:    identityOf(d.Session),
	})
}

// GET /me
func (h *NavigationHandler) Me(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("no session"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"me": identityOf(sess)})
}
