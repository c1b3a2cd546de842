package services

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

var guardedPagePrefixes = []string{"site-", "course-", "mod-"}

// Page describes the page a session is about to view.
type Page struct {
	Type      string
	CourseID  uuid.UUID
	ModuleID  uuid.UUID
	URL       string
	ReturnURL string
}

// Decision is the guard's verdict for one page view. Session is the
// session to continue the request with.
type Decision struct {
	Session     *types.Session
	SwappedOut  bool
	Prompt      bool
	RedirectURL string
	ContextID   uuid.UUID
	Optional    bool
}

type NavigationGuard interface {
	Check(ctx context.Context, sess *types.Session, page Page) (*Decision, error)
}

type navigationGuard struct {
	log        *logger.Logger
	contexts   ContextStore
	policy     PolicyService
	engine     SubstitutionEngine
	promptPath string
}

func NewNavigationGuard(log *logger.Logger, contexts ContextStore, policy PolicyService, engine SubstitutionEngine, promptPath string) NavigationGuard {
	return &navigationGuard{
		log:        log.With("service", "NavigationGuard"),
		contexts:   contexts,
		policy:     policy,
		engine:     engine,
		promptPath: promptPath,
	}
}

func guardedPage(pageType string) bool {
	for _, p := range guardedPagePrefixes {
		if strings.HasPrefix(pageType, p) {
			return true
		}
	}
	return false
}

func (g *navigationGuard) Check(ctx context.Context, sess *types.Session, page Page) (*Decision, error) {
	d := &Decision{Session: sess}
	if !guardedPage(page.Type) || page.CourseID == uuid.Nil || sess == nil || sess.User == nil {
		return d, nil
	}

	var (
		contextID uuid.UUID
		err       error
	)
	if page.ModuleID != uuid.Nil {
		contextID, err = g.contexts.ContextFor(ctx, types.LevelModule, page.ModuleID)
	} else {
		contextID, err = g.contexts.ContextFor(ctx, types.LevelCourse, page.CourseID)
	}
	if err != nil {
		g.log.Warn("guard context unresolved", "course_id", page.CourseID, "module_id", page.ModuleID, "error", err)
		return d, nil
	}
	d.ContextID = contextID

	next, swapped, err := g.engine.SwapOut(ctx, sess, contextID)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidState) {
		// Broken host data must not lock the user out of the page.
		g.log.Warn("guard swap out skipped", "context_id", contextID, "session_id", sess.ID, "error", err)
		return d, nil
	}
	if err != nil {
		return nil, err
	}
	d.Session = next
	d.SwappedOut = swapped

	ok, err := g.policy.IsEnabledForUser(ctx, next, contextID, next.User.ID)
	if err != nil {
		g.log.Warn("guard policy check failed", "context_id", contextID, "error", err)
		return d, nil
	}
	if !ok {
		return d, nil
	}

	optional, err := g.policy.IsOptionalForContext(ctx, contextID)
	if err != nil {
		g.log.Warn("guard optional check failed", "context_id", contextID, "error", err)
		return d, nil
	}
	d.Prompt = true
	d.Optional = optional
	d.RedirectURL = g.promptURL(page, contextID, optional)
	return d, nil
}

func (g *navigationGuard) promptURL(page Page, contextID uuid.UUID, optional bool) string {
	q := url.Values{}
	q.Set("returnurl", page.ReturnURL)
	q.Set("nexturl", page.URL)
	q.Set("contextid", contextID.String())
	if optional {
		q.Set("optional", "1")
	} else {
		q.Set("optional", "0")
	}
	return g.promptPath + "?" + q.Encode()
}
