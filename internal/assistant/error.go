package assistant

import "errors"

var (
	ErrNoAPIKey      = errors.New("gemini api key not configured")
	ErrNoCandidates  = errors.New("no candidates in gemini response")
	ErrEmptyResponse = errors.New("no text content in gemini response")
	ErrRateLimited   = errors.New("assistant call rate limited")
)
