package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/yungbote/neurobridge-disguise/internal/data/repos"
	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/observability"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

const (
	disguiseEmailDomain = "example.invalid"
	disguiseLastName    = "Disguise"
	maxProvisionBatch   = 1000
)

// errMappingRace rolls back a transaction that lost the insert race; the
// winner's row is read after rollback.
var errMappingRace = errors.New("disguise mapping race")

type IdentityPool interface {
	// GetOrCreateMapping returns the stable disguise of realUserID in
	// contextID, creating it on first use.
	GetOrCreateMapping(ctx context.Context, contextID, realUserID uuid.UUID) (*types.User, error)
	MappedDisguise(ctx context.Context, contextID, realUserID uuid.UUID) (*types.User, error)
	// Provision creates count unmapped disguise accounts for contextID and
	// adds them to its pool. Mapping claims pooled accounts first.
	Provision(ctx context.Context, contextID uuid.UUID, count int) (int, error)
	Unmap(ctx context.Context, contextID, realUserID uuid.UUID) error
}

type identityPool struct {
	db       *gorm.DB
	log      *logger.Logger
	users    UserStore
	names    RandomNameProvider
	naming   NamingService
	registry ModeRegistry
	userMap  repos.UserMapRepo
	pool     repos.UnmappedPoolRepo
	group    singleflight.Group
}

func NewIdentityPool(
	db *gorm.DB,
	log *logger.Logger,
	users UserStore,
	names RandomNameProvider,
	naming NamingService,
	registry ModeRegistry,
	userMap repos.UserMapRepo,
	pool repos.UnmappedPoolRepo,
) IdentityPool {
	return &identityPool{
		db:       db,
		log:      log.With("service", "IdentityPool"),
		users:    users,
		names:    names,
		naming:   naming,
		registry: registry,
		userMap:  userMap,
		pool:     pool,
	}
}

func (p *identityPool) GetOrCreateMapping(ctx context.Context, contextID, realUserID uuid.UUID) (*types.User, error) {
	ctx, span := otel.Tracer(observability.TracerName).Start(ctx, "disguise.identity.get_or_create")
	defer span.End()
	span.SetAttributes(attribute.String("disguise.context_id", contextID.String()))

	u, err := p.MappedDisguise(ctx, contextID, realUserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	key := contextID.String() + ":" + realUserID.String()
	v, err, shared := p.group.Do(key, func() (any, error) {
		return p.createMapping(context.WithoutCancel(ctx), contextID, realUserID)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Bool("disguise.shared", shared))
	// Callers sharing a flight get their own copy.
	out := *(v.(*types.User))
	return &out, nil
}

func (p *identityPool) MappedDisguise(ctx context.Context, contextID, realUserID uuid.UUID) (*types.User, error) {
	dbc := dbctx.Context{Ctx: ctx}
	row, err := p.userMap.GetByContextAndUser(dbc, contextID, realUserID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	u, err := p.users.GetUser(dbc, row.DisguiseID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("mapping %s points at missing user %s: %w", row.ID, row.DisguiseID, ErrInvalidState)
		}
		return nil, err
	}
	return u, nil
}

func (p *identityPool) createMapping(ctx context.Context, contextID, realUserID uuid.UUID) (*types.User, error) {
	firstName, lastName := p.displayName(ctx, contextID)

	var disguiseID uuid.UUID
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}

		existing, err := p.userMap.GetByContextAndUser(inner, contextID, realUserID)
		if err != nil {
			return err
		}
		if existing != nil {
			disguiseID = existing.DisguiseID
			return nil
		}

		claimed, err := p.pool.Claim(inner, contextID)
		if err != nil {
			return err
		}
		if claimed != nil {
			disguiseID = claimed.DisguiseID
		} else {
			created, err := p.users.CreateUser(inner, p.newDisguiseUser(contextID, firstName, lastName))
			if err != nil {
				return fmt.Errorf("%w: %v", ErrCreationFailed, err)
			}
			if created == nil || created.ID == uuid.Nil {
				return ErrCreationFailed
			}
			disguiseID = created.ID
		}

		inserted, err := p.userMap.Insert(inner, &types.UserMap{
			ContextID:  contextID,
			UserID:     realUserID,
			DisguiseID: disguiseID,
		})
		if err != nil {
			return err
		}
		if !inserted {
			return errMappingRace
		}
		return nil
	})
	if errors.Is(err, errMappingRace) {
		p.log.Debug("lost mapping race, reading winner", "context_id", contextID, "user_id", realUserID)
		u, err := p.MappedDisguise(ctx, contextID, realUserID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, fmt.Errorf("mapping for %s in %s vanished: %w", realUserID, contextID, ErrInvalidState)
		}
		return u, nil
	}
	if err != nil {
		p.log.Warn("disguise mapping failed", "context_id", contextID, "user_id", realUserID, "error", err)
		return nil, err
	}

	u, err := p.users.GetUser(dbctx.Context{Ctx: ctx}, disguiseID)
	if err != nil {
		return nil, err
	}
	p.log.Info("disguise mapped", "context_id", contextID, "user_id", realUserID, "disguise_id", disguiseID)
	return u, nil
}

func (p *identityPool) Provision(ctx context.Context, contextID uuid.UUID, count int) (int, error) {
	if count <= 0 || count > maxProvisionBatch {
		return 0, fmt.Errorf("provision count %d outside 1..%d: %w", count, maxProvisionBatch, ErrInvalidArgument)
	}
	ctx, span := otel.Tracer(observability.TracerName).Start(ctx, "disguise.identity.provision")
	defer span.End()
	span.SetAttributes(
		attribute.String("disguise.context_id", contextID.String()),
		attribute.Int("disguise.count", count),
	)

	if _, err := p.registry.EffectiveCourseContext(ctx, contextID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	// Names are drawn before the transaction opens.
	accounts := make([]*types.User, 0, count)
	for i := 0; i < count; i++ {
		first, last := p.displayName(ctx, contextID)
		accounts = append(accounts, p.newDisguiseUser(contextID, first, last))
	}

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		for _, u := range accounts {
			created, err := p.users.CreateUser(inner, u)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrCreationFailed, err)
			}
			if created == nil || created.ID == uuid.Nil {
				return ErrCreationFailed
			}
			if _, err := p.pool.Add(inner, contextID, created.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.log.Warn("disguise provisioning failed", "context_id", contextID, "count", count, "error", err)
		return 0, err
	}
	p.log.Info("disguises provisioned", "context_id", contextID, "count", count)
	return count, nil
}

// displayName draws one item per keyword from the naming set of the context
// or its course. The last item is the last name; the rest form the first
// name. Failures fall back to a timestamp name.
func (p *identityPool) displayName(ctx context.Context, contextID uuid.UUID) (string, string) {
	fallback := strconv.FormatInt(time.Now().Unix(), 10)
	if p.names == nil || p.naming == nil {
		return fallback, disguiseLastName
	}

	ids := []uuid.UUID{contextID}
	if cc, err := p.registry.EffectiveCourseContext(ctx, contextID); err == nil && cc.ContextID != contextID {
		ids = append(ids, cc.ContextID)
	}
	keywords, err := p.naming.KeywordsForContexts(ctx, ids...)
	if err != nil {
		p.log.Warn("naming set lookup failed", "context_id", contextID, "error", err)
		return fallback, disguiseLastName
	}
	parts, err := p.names.NameParts(ctx, keywords)
	if err != nil {
		p.log.Warn("build name failed", "context_id", contextID, "error", err)
		return fallback, disguiseLastName
	}
	switch len(parts) {
	case 0:
		return fallback, disguiseLastName
	case 1:
		return parts[0], disguiseLastName
	default:
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
	}
}

func (p *identityPool) newDisguiseUser(contextID uuid.UUID, firstName, lastName string) *types.User {
	seed := fmt.Sprintf("%d_%s_%s", time.Now().UnixNano(), contextID, uuid.NewString())
	sum := sha1.Sum([]byte(seed))
	username := hex.EncodeToString(sum[:])
	return &types.User{
		Username:  username,
		Email:     username + "@" + disguiseEmailDomain,
		FirstName: firstName,
		LastName:  lastName,
		Auth:      types.AuthDisguise,
		Confirmed: true,
	}
}

// Unmap is not supported: a disguise keeps its identity for the lifetime of
// the context.
func (p *identityPool) Unmap(ctx context.Context, contextID, realUserID uuid.UUID) error {
	return fmt.Errorf("unmap disguise: %w", ErrNotImplemented)
}
