package services

import (
	"slices"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
)

// AuthMethod is the contract an account's auth marker answers to.
type AuthMethod interface {
	Name() string
	Login(username, password string) bool
	UpdatePassword(userID, password string) bool
	CanChangePassword() bool
	CanResetPassword() bool
	IsInternal() bool
	PreventLocalPasswords() bool
}

// DisguiseAuth backs disguise accounts. Nobody can log in as one.
type DisguiseAuth struct{}

func (DisguiseAuth) Name() string { return types.AuthDisguise }
func (DisguiseAuth) Login(string, string) bool { return false }
func (DisguiseAuth) UpdatePassword(string, string) bool { return false }
func (DisguiseAuth) CanChangePassword() bool { return false }
func (DisguiseAuth) CanResetPassword() bool { return false }
func (DisguiseAuth) IsInternal() bool { return true }
func (DisguiseAuth) PreventLocalPasswords() bool { return true }

// ManualEnrolmentAuthMethods lists auth methods whose accounts may be
// enrolled by a plugin rather than a person.
var ManualEnrolmentAuthMethods = []string{types.AuthManual, types.AuthDisguise}

func AllowsManualEnrolment(auth string) bool {
	return slices.Contains(ManualEnrolmentAuthMethods, auth)
}

// AuthMethodFor returns the contract for auth, or nil for methods handled
// elsewhere.
func AuthMethodFor(auth string) AuthMethod {
	if auth == types.AuthDisguise {
		return DisguiseAuth{}
	}
	return nil
}
