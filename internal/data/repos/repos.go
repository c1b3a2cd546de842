package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/neurobridge-disguise/internal/data/repos/disguise"
	"github.com/yungbote/neurobridge-disguise/internal/data/repos/enrol"
	"github.com/yungbote/neurobridge-disguise/internal/data/repos/host"
	"github.com/yungbote/neurobridge-disguise/internal/data/repos/user"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

type ContextRepo = host.ContextRepo
type CourseRepo = host.CourseRepo
type CourseModuleRepo = host.CourseModuleRepo

type UserRepo = user.UserRepo

type EnrolMethodRepo = enrol.EnrolMethodRepo
type UserEnrolmentRepo = enrol.UserEnrolmentRepo
type RoleAssignmentRepo = enrol.RoleAssignmentRepo

type ContextModeRepo = disguise.ContextModeRepo
type UserMapRepo = disguise.UserMapRepo
type UnmappedPoolRepo = disguise.UnmappedPoolRepo
type NamingKeywordRepo = disguise.NamingKeywordRepo
type NamingItemRepo = disguise.NamingItemRepo
type NamingSetRepo = disguise.NamingSetRepo
type NamingContextRepo = disguise.NamingContextRepo
type KeywordCount = disguise.KeywordCount

func NewContextRepo(db *gorm.DB, baseLog *logger.Logger) ContextRepo {
	return host.NewContextRepo(db, baseLog)
}
func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return host.NewCourseRepo(db, baseLog)
}
func NewCourseModuleRepo(db *gorm.DB, baseLog *logger.Logger) CourseModuleRepo {
	return host.NewCourseModuleRepo(db, baseLog)
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewEnrolMethodRepo(db *gorm.DB, baseLog *logger.Logger) EnrolMethodRepo {
	return enrol.NewEnrolMethodRepo(db, baseLog)
}
func NewUserEnrolmentRepo(db *gorm.DB, baseLog *logger.Logger) UserEnrolmentRepo {
	return enrol.NewUserEnrolmentRepo(db, baseLog)
}
func NewRoleAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) RoleAssignmentRepo {
	return enrol.NewRoleAssignmentRepo(db, baseLog)
}

func NewContextModeRepo(db *gorm.DB, baseLog *logger.Logger) ContextModeRepo {
	return disguise.NewContextModeRepo(db, baseLog)
}
func NewUserMapRepo(db *gorm.DB, baseLog *logger.Logger) UserMapRepo {
	return disguise.NewUserMapRepo(db, baseLog)
}
func NewUnmappedPoolRepo(db *gorm.DB, baseLog *logger.Logger) UnmappedPoolRepo {
	return disguise.NewUnmappedPoolRepo(db, baseLog)
}
func NewNamingKeywordRepo(db *gorm.DB, baseLog *logger.Logger) NamingKeywordRepo {
	return disguise.NewNamingKeywordRepo(db, baseLog)
}
func NewNamingItemRepo(db *gorm.DB, baseLog *logger.Logger) NamingItemRepo {
	return disguise.NewNamingItemRepo(db, baseLog)
}
func NewNamingSetRepo(db *gorm.DB, baseLog *logger.Logger) NamingSetRepo {
	return disguise.NewNamingSetRepo(db, baseLog)
}
func NewNamingContextRepo(db *gorm.DB, baseLog *logger.Logger) NamingContextRepo {
	return disguise.NewNamingContextRepo(db, baseLog)
}
