package service

import "errors"

// ErrNoContent means the rotation pool is exhausted or cooling down. It is a
// normal stop condition for the fill loop, not a failure.
var ErrNoContent = errors.New("no eligible content available")

// ErrGenerationFailed wraps a caption or graphic collaborator failure. One
// composition attempt is abandoned (or falls back); the trigger never sees it.
var ErrGenerationFailed = errors.New("generation failed")
