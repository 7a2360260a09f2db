package domain

import (
	"errors"
)

var (
	MessageFailedBodyRequest    = "failed to process request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"

	ErrParseUUID       = errors.New("failed to parse UUID")
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrTokenNotFound   = errors.New("failed to token not found")
)
