package app

import (
	"gorm.io/gorm"

	sessionstore "github.com/yungbote/neurobridge-disguise/internal/data/session"
	"github.com/yungbote/neurobridge-disguise/internal/platform/config"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
	"github.com/yungbote/neurobridge-disguise/internal/services"
)

type Services struct {
	Contexts   services.ContextStore
	Users      services.UserStore
	Enrollment services.EnrollmentService
	Roles      services.RoleService

	Registry  services.ModeRegistry
	Policy    services.PolicyService
	Naming    services.NamingService
	Identity  services.IdentityPool
	EnrolSync services.EnrolSync
	Engine    services.SubstitutionEngine
	Guard     services.NavigationGuard
	Prompt    services.PromptService
	Modes     services.ModeService
	Privacy   services.PrivacyService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg config.Config, r Repos, sessions sessionstore.Store) Services {
	log.Info("Wiring services...")
	dc := cfg.Disguise

	contexts := services.NewHostContextStore(log, r.Context, r.CourseModule, r.Course)
	users := services.NewHostUserStore(r.User)
	enrollment := services.NewHostEnrollment(r.EnrolMethod, r.UserEnrolment)
	roles := services.NewHostRoles(r.Context, r.RoleAssignment, r.User, dc.CourseContactRoles)

	registry := services.NewModeRegistry(log, contexts, r.ContextMode)
	policy := services.NewPolicyService(log, dc.Enabled, registry, users, enrollment, roles)
	naming := services.NewNamingService(db, log, r.NamingKeyword, r.NamingItem, r.NamingSet, r.NamingContext, dc.DefaultNaming)
	identity := services.NewIdentityPool(db, log, users, naming, naming, registry, r.UserMap, r.UnmappedPool)
	enrolSync := services.NewEnrolSync(log, registry, enrollment, dc.DefaultRole)
	engine := services.NewSubstitutionEngine(log, policy, registry, identity, enrolSync, sessions)

	return Services{
		Contexts:   contexts,
		Users:      users,
		Enrollment: enrollment,
		Roles:      roles,
		Registry:   registry,
		Policy:     policy,
		Naming:     naming,
		Identity:   identity,
		EnrolSync:  enrolSync,
		Engine:     engine,
		Guard:      services.NewNavigationGuard(log, contexts, policy, engine, dc.PromptPath),
		Prompt:     services.NewPromptService(log, policy, engine),
		Modes:      services.NewModeService(log, policy, registry, enrolSync),
		Privacy:    services.NewPrivacyService(r.UserMap),
	}
}
