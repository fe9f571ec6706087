package service

import (
	"errors"
	"fmt"
)

// Error kinds. Specific failures wrap one of these so callers can translate
// with errors.Is without enumerating every error.
var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrValidation     = errors.New("validation failed")
	ErrNotImplemented = errors.New("not implemented")
)

var (
	ErrArticleNotFound = fmt.Errorf("article %w", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrTagNotFound     = fmt.Errorf("tag %w", ErrNotFound)
	ErrUnknownTag      = fmt.Errorf("%w: one or more tags do not exist", ErrValidation)

	ErrSlugTaken        = fmt.Errorf("%w: article title already taken", ErrConflict)
	ErrTagExists        = fmt.Errorf("%w: tag already exists", ErrConflict)
	ErrUsernameTaken    = fmt.Errorf("%w: username already exists", ErrConflict)
	ErrProfileNameTaken = fmt.Errorf("%w: profile name already exists", ErrConflict)
	ErrAlreadyVoted     = fmt.Errorf("%w: target already voted by this user", ErrConflict)

	ErrBadCredentials = errors.New("invalid username or password")
	ErrBadVerifyCode  = fmt.Errorf("%w: invalid verification code", ErrValidation)
)
