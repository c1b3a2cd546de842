package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/neurobridge-disguise/internal/data/repos"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

type Repos struct {
	Context        repos.ContextRepo
	Course         repos.CourseRepo
	CourseModule   repos.CourseModuleRepo
	User           repos.UserRepo
	EnrolMethod    repos.EnrolMethodRepo
	UserEnrolment  repos.UserEnrolmentRepo
	RoleAssignment repos.RoleAssignmentRepo

	ContextMode   repos.ContextModeRepo
	UserMap       repos.UserMapRepo
	UnmappedPool  repos.UnmappedPoolRepo
	NamingKeyword repos.NamingKeywordRepo
	NamingItem    repos.NamingItemRepo
	NamingSet     repos.NamingSetRepo
	NamingContext repos.NamingContextRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Context:        repos.NewContextRepo(db, log),
		Course:         repos.NewCourseRepo(db, log),
		CourseModule:   repos.NewCourseModuleRepo(db, log),
		User:           repos.NewUserRepo(db, log),
		EnrolMethod:    repos.NewEnrolMethodRepo(db, log),
		UserEnrolment:  repos.NewUserEnrolmentRepo(db, log),
		RoleAssignment: repos.NewRoleAssignmentRepo(db, log),

		ContextMode:   repos.NewContextModeRepo(db, log),
		UserMap:       repos.NewUserMapRepo(db, log),
		UnmappedPool:  repos.NewUnmappedPoolRepo(db, log),
		NamingKeyword: repos.NewNamingKeywordRepo(db, log),
		NamingItem:    repos.NewNamingItemRepo(db, log),
		NamingSet:     repos.NewNamingSetRepo(db, log),
		NamingContext: repos.NewNamingContextRepo(db, log),
	}
}
