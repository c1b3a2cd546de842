package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	sessionstore "github.com/yungbote/neurobridge-disguise/internal/data/session"
	sessiondomain "github.com/yungbote/neurobridge-disguise/internal/domain/session"
	"github.com/yungbote/neurobridge-disguise/internal/http/response"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
	"github.com/yungbote/neurobridge-disguise/internal/services"
)

// SessionClaims binds a bearer token to one server-side session.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SignSessionToken issues an HS256 token for userID and session sid.
func SignSessionToken(secret, sid string, userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

type AuthMiddleware struct {
	log      *logger.Logger
	secret   []byte
	sessions sessionstore.Store
	users    services.UserStore
	roles    services.RoleService
}

func NewAuthMiddleware(log *logger.Logger, secret string, sessions sessionstore.Store, users services.UserStore, roles services.RoleService) *AuthMiddleware {
	return &AuthMiddleware{
		log:      log.With("Middleware", "AuthMiddleware"),
		secret:   []byte(secret),
		sessions: sessions,
		users:    users,
		roles:    roles,
	}
}

func (am *AuthMiddleware) parse(tokenString string) (*SessionClaims, uuid.UUID, error) {
	claims := &SessionClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	tok, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return am.secret, nil
	})
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("parse token: %w", err)
	}
	if !tok.Valid || strings.TrimSpace(claims.SessionID) == "" {
		return nil, uuid.Nil, errors.New("invalid token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("invalid user id in token: %w", err)
	}
	return claims, userID, nil
}

// RequireSession authenticates the bearer token and attaches its session,
// creating the session on first use.
func (am *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractTokenFromAll(c)
		if tokenString == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid token"))
			return
		}
		claims, userID, err := am.parse(tokenString)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", err)
			return
		}

		ctx := c.Request.Context()
		u, err := am.users.GetUser(dbctx.Context{Ctx: ctx}, userID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				response.AbortError(c, http.StatusUnauthorized, "unauthorized", errors.New("unknown user"))
				return
			}
			response.AbortError(c, http.StatusInternalServerError, "internal", err)
			return
		}
		if m := services.AuthMethodFor(u.Auth); m != nil && !m.Login(u.Username, "") {
			am.log.Warn("token presented for non-login account", "user_id", userID, "auth", u.Auth)
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", errors.New("account cannot sign in"))
			return
		}

		sess, err := am.sessions.Load(ctx, claims.SessionID)
		switch {
		case errors.Is(err, sessionstore.ErrSessionNotFound):
			sess = sessiondomain.New(claims.SessionID, services.SessionUserFrom(u))
			if err := am.sessions.Replace(ctx, sess); err != nil {
				response.AbortError(c, http.StatusInternalServerError, "internal", err)
				return
			}
		case errors.Is(err, sessionstore.ErrCorruptSession):
			am.log.Warn("corrupt session dropped", "sid", claims.SessionID)
			_ = am.sessions.Delete(ctx, claims.SessionID)
			response.AbortError(c, http.StatusUnauthorized, "session_corrupt", err)
			return
		case err != nil:
			response.AbortError(c, http.StatusInternalServerError, "internal", err)
			return
		}
		if sess.RealUserID() != userID {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", errors.New("session belongs to another user"))
			return
		}

		SetSession(c, sess)
		c.Next()
	}
}

// RequireSiteAdmin admits sessions whose real user is a site admin.
func (am *AuthMiddleware) RequireSiteAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFrom(c)
		if sess == nil {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", errors.New("no session"))
			return
		}
		ok, err := am.roles.IsSiteAdmin(c.Request.Context(), sess.RealUserID())
		if err != nil {
			response.AbortError(c, http.StatusInternalServerError, "internal", err)
			return
		}
		if !ok {
			response.AbortError(c, http.StatusForbidden, "forbidden", errors.New("site admin required"))
			return
		}
		c.Next()
	}
}

func extractTokenFromAll(c *gin.Context) string {
	if qToken := c.Query("token"); qToken != "" {
		return qToken
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
