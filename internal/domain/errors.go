package domain

import "errors"

var (
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrHistoryDisabled  = errors.New("analysis history is not configured")
)
