package repository

import "errors"

// Domain errors mapped from remote status codes. Anything not translated
// here propagates as a transport failure.
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskAlreadyDone   = errors.New("task already done")
	ErrTaskAnotherAuthor = errors.New("task belongs to another author")
	ErrTaskAlreadyExists = errors.New("task already exists")
	ErrIncorrectDeadline = errors.New("incorrect deadline")
	ErrUserNotFound      = errors.New("user not found")
)
