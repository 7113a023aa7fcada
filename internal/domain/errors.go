package domain

import "errors"

var (
	// ErrUserNotFound is returned by stores when no record exists for an id
	ErrUserNotFound = errors.New("user not found")

	// ErrUnknownUser is returned by the conversation for non-start actions of unregistered users
	ErrUnknownUser = errors.New("unknown user")

	// ErrCorruptStore means the durable medium exists but cannot be decoded
	ErrCorruptStore = errors.New("corrupt user store")

	// ErrInvalidLanguage means a language code is not supported
	ErrInvalidLanguage = errors.New("invalid language")
)
