package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a referenced context, user or record that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState marks structurally inconsistent data.
	ErrInvalidState = errors.New("invalid state")
	// ErrCreationFailed marks a rejected disguise account creation.
	ErrCreationFailed = errors.New("disguise creation failed")
	// ErrPolicyViolation marks an attempt the policy says is not allowed.
	ErrPolicyViolation = errors.New("policy violation")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotImplemented  = errors.New("not implemented")

	// ErrOutsideCourse is returned for contexts that are neither a course nor
	// a module inside one.
	ErrOutsideCourse = fmt.Errorf("%w: context is outside any course", ErrInvalidState)
)
