package entity

import "errors"

var (
	ErrLeadNotFound    = errors.New("lead not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrAgentNotFound   = errors.New("agent not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrApiKeyNotFound  = errors.New("api key not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrAgentExists     = errors.New("agent with this id already exists")
)
