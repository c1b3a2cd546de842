package middleware

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/ctxutil"
)

const sessionKey = "disguise_session"

// SessionFrom returns the session attached by RequireSession.
func SessionFrom(c *gin.Context) *types.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*types.Session)
	return sess
}

// SetSession makes sess the session for the rest of the request.
func SetSession(c *gin.Context, sess *types.Session) {
	if sess == nil {
		return
	}
	c.Set(sessionKey, sess)
	ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
		UserID:    sess.RealUserID(),
		SessionID: sess.ID,
	})
	c.Request = c.Request.WithContext(ctx)
}
