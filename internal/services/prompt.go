package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

const (
	ChoiceContinue = "continue"
	ChoiceDisguise = "disguise"
	ChoiceBack     = "back"
	ChoiceReal     = "real"
)

// PromptInfo describes what a prompt page shows.
type PromptInfo struct {
	ContextID uuid.UUID `json:"context_id"`
	Disguised bool      `json:"disguised"`
	Optional  bool      `json:"optional"`
	CanIgnore bool      `json:"can_ignore"`
	Choices   []string  `json:"choices"`
	ReturnURL string    `json:"returnurl"`
	NextURL   string    `json:"nexturl"`
}

type PromptRequest struct {
	ContextID uuid.UUID
	Choice    string
	ReturnURL string
	NextURL   string
}

// PromptResult carries the session after the choice and where to go next.
type PromptResult struct {
	Session  *types.Session
	Redirect string
}

type PromptService interface {
	Describe(ctx context.Context, sess *types.Session, contextID uuid.UUID, returnURL, nextURL string) (*PromptInfo, error)
	ToDisguise(ctx context.Context, sess *types.Session, req PromptRequest) (*PromptResult, error)
	ToReal(ctx context.Context, sess *types.Session, req PromptRequest) (*PromptResult, error)
}

type promptService struct {
	log    *logger.Logger
	policy PolicyService
	engine SubstitutionEngine
}

func NewPromptService(log *logger.Logger, policy PolicyService, engine SubstitutionEngine) PromptService {
	return &promptService{
		log:    log.With("service", "PromptService"),
		policy: policy,
		engine: engine,
	}
}

// localURL keeps redirects on this site.
func localURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/"
	}
	return raw
}

func (s *promptService) Describe(ctx context.Context, sess *types.Session, contextID uuid.UUID, returnURL, nextURL string) (*PromptInfo, error) {
	if contextID == uuid.Nil {
		return nil, fmt.Errorf("contextid required: %w", ErrInvalidArgument)
	}
	info := &PromptInfo{
		ContextID: contextID,
		Disguised: sess.IsDisguised(),
		ReturnURL: localURL(returnURL),
		NextURL:   localURL(nextURL),
	}
	if info.Disguised {
		info.Choices = []string{ChoiceBack, ChoiceReal}
		return info, nil
	}
	optional, err := s.policy.IsOptionalForContext(ctx, contextID)
	if err != nil {
		return nil, err
	}
	canIgnore, err := s.policy.CanIgnore(ctx, contextID)
	if err != nil {
		return nil, err
	}
	info.Optional = optional
	info.CanIgnore = canIgnore
	info.Choices = []string{ChoiceContinue, ChoiceDisguise}
	return info, nil
}

func (s *promptService) ToDisguise(ctx context.Context, sess *types.Session, req PromptRequest) (*PromptResult, error) {
	if sess == nil || sess.User == nil {
		return nil, fmt.Errorf("prompt without a session user: %w", ErrInvalidArgument)
	}
	switch req.Choice {
	case ChoiceContinue:
		canIgnore, err := s.policy.CanIgnore(ctx, req.ContextID)
		if err != nil {
			return nil, err
		}
		if !canIgnore {
			return &PromptResult{Session: sess, Redirect: localURL(req.ReturnURL)}, nil
		}
		next, err := s.engine.IgnoreForContext(ctx, sess, req.ContextID)
		if err != nil {
			return nil, err
		}
		return &PromptResult{Session: next, Redirect: localURL(req.NextURL)}, nil
	case ChoiceDisguise:
		next, err := s.engine.SwapIn(ctx, sess, req.ContextID, sess.User.ID)
		if err != nil {
			return nil, err
		}
		return &PromptResult{Session: next, Redirect: localURL(req.NextURL)}, nil
	default:
		return nil, fmt.Errorf("choice %q: %w", req.Choice, ErrInvalidArgument)
	}
}

func (s *promptService) ToReal(ctx context.Context, sess *types.Session, req PromptRequest) (*PromptResult, error) {
	switch req.Choice {
	case ChoiceBack:
		return &PromptResult{Session: sess, Redirect: localURL(req.ReturnURL)}, nil
	case ChoiceReal:
		next, err := s.engine.Restore(ctx, sess)
		if err != nil {
			return nil, err
		}
		return &PromptResult{Session: next, Redirect: localURL(req.NextURL)}, nil
	default:
		return nil, fmt.Errorf("choice %q: %w", req.Choice, ErrInvalidArgument)
	}
}
