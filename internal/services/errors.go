package services

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrGroupNotFound   = errors.New("group not found")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrEmailTaken      = errors.New("user with this email already exists")
	ErrNotGroupMember  = errors.New("user is not a member of the group")
)
