package domain

import (
	"github.com/yungbote/neurobridge-disguise/internal/domain/course"
	"github.com/yungbote/neurobridge-disguise/internal/domain/disguise"
	"github.com/yungbote/neurobridge-disguise/internal/domain/enrol"
	"github.com/yungbote/neurobridge-disguise/internal/domain/session"
	"github.com/yungbote/neurobridge-disguise/internal/domain/user"
)

type (
	Context      = course.Context
	ContextLevel = course.ContextLevel
	Course       = course.Course
	CourseModule = course.CourseModule

	User = user.User

	EnrolMethod    = enrol.EnrolMethod
	UserEnrolment  = enrol.UserEnrolment
	RoleAssignment = enrol.RoleAssignment

	Mode             = disguise.Mode
	CourseMode       = disguise.CourseMode
	ModuleMode       = disguise.ModuleMode
	ContextMode      = disguise.ContextMode
	NamingKeyword    = disguise.NamingKeyword
	NamingItem       = disguise.NamingItem
	NamingSet        = disguise.NamingSet
	NamingContext    = disguise.NamingContext
	UserMap          = disguise.UserMap
	UnmappedDisguise = disguise.UnmappedDisguise

	Session         = session.Session
	SessionUser     = session.SessionUser
	SessionSnapshot = session.Snapshot
	DisguiseState   = session.DisguiseState
)

const (
	LevelSystem   = course.LevelSystem
	LevelUser     = course.LevelUser
	LevelCategory = course.LevelCategory
	LevelCourse   = course.LevelCourse
	LevelModule   = course.LevelModule
	LevelBlock    = course.LevelBlock

	AuthManual   = user.AuthManual
	AuthDisguise = user.AuthDisguise

	ModeDisabled             = disguise.ModeDisabled
	ModeCourseOptional       = disguise.ModeCourseOptional
	ModeCourseModulesOnly    = disguise.ModeCourseModulesOnly
	ModeCourseEverywhere     = disguise.ModeCourseEverywhere
	ModeModulePeerSafe       = disguise.ModeModulePeerSafe
	ModeModuleInstructorSafe = disguise.ModeModuleInstructorSafe
)

// Models lists every table owned by this service, in migration order.
func Models() []any {
	return []any{
		&Context{},
		&Course{},
		&CourseModule{},
		&User{},
		&EnrolMethod{},
		&UserEnrolment{},
		&RoleAssignment{},
		&ContextMode{},
		&NamingKeyword{},
		&NamingItem{},
		&NamingSet{},
		&NamingContext{},
		&UserMap{},
		&UnmappedDisguise{},
	}
}
