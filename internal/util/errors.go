package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrUnknownTopic        = errors.New("unknown assessment topic")
	ErrAssessmentNotFound  = errors.New("assessment not found")
	ErrInvalidState        = errors.New("assessment is not in a state that allows this operation")
	ErrInsufficientAnswers = errors.New("not enough answers provided")
)
