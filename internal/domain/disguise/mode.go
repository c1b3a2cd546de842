package disguise

import (
	"errors"
	"fmt"
)

// Mode is the raw stored policy value. The numeric encoding is part of the
// persisted layout and must not change.
type Mode int

const (
	ModeDisabled             Mode = 0
	ModeCourseOptional       Mode = 100
	ModeCourseModulesOnly    Mode = 101
	ModeCourseEverywhere     Mode = 102
	ModeModulePeerSafe       Mode = 200
	ModeModuleInstructorSafe Mode = 201
)

// ErrUnknownMode is returned when a stored or supplied value is outside the
// enumeration for its level.
var ErrUnknownMode = errors.New("unknown disguise mode")

func (m Mode) String() string {
	switch m {
	case ModeDisabled:
		return "disabled"
	case ModeCourseOptional:
		return "course_optional"
	case ModeCourseModulesOnly:
		return "course_modules_only"
	case ModeCourseEverywhere:
		return "course_everywhere"
	case ModeModulePeerSafe:
		return "module_peer_safe"
	case ModeModuleInstructorSafe:
		return "module_instructor_safe"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode resolves a symbolic mode name such as "course_optional".
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{
		ModeDisabled,
		ModeCourseOptional,
		ModeCourseModulesOnly,
		ModeCourseEverywhere,
		ModeModulePeerSafe,
		ModeModuleInstructorSafe,
	} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// CourseMode is the closed set of modes valid on a course context.
type CourseMode Mode

const (
	CourseDisabled    = CourseMode(ModeDisabled)
	CourseOptional    = CourseMode(ModeCourseOptional)
	CourseModulesOnly = CourseMode(ModeCourseModulesOnly)
	CourseEverywhere  = CourseMode(ModeCourseEverywhere)
)

func AsCourseMode(m Mode) (CourseMode, error) {
	switch m {
	case ModeDisabled, ModeCourseOptional, ModeCourseModulesOnly, ModeCourseEverywhere:
		return CourseMode(m), nil
	default:
		return 0, fmt.Errorf("%w for course: %d", ErrUnknownMode, int(m))
	}
}

func (m CourseMode) String() string { return Mode(m).String() }

// ModuleMode is the closed set of modes valid on a module context.
type ModuleMode Mode

const (
	ModuleDisabled       = ModuleMode(ModeDisabled)
	ModulePeerSafe       = ModuleMode(ModeModulePeerSafe)
	ModuleInstructorSafe = ModuleMode(ModeModuleInstructorSafe)
)

func AsModuleMode(m Mode) (ModuleMode, error) {
	switch m {
	case ModeDisabled, ModeModulePeerSafe, ModeModuleInstructorSafe:
		return ModuleMode(m), nil
	default:
		return 0, fmt.Errorf("%w for module: %d", ErrUnknownMode, int(m))
	}
}

func (m ModuleMode) String() string { return Mode(m).String() }
