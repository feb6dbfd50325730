package vocab

import "errors"

// Reported conditions. None of them leave the store modified.
var (
	ErrEmptyPool          = errors.New("no words to review")
	ErrLockedSet          = errors.New("plan set is locked")
	ErrEmptySet           = errors.New("plan set has no words")
	ErrInvalidRange       = errors.New("word range out of bounds")
	ErrEmptyChapter       = errors.New("chapter has no words left to learn")
	ErrChapterNotFound    = errors.New("chapter not found")
	ErrPlanNotFound       = errors.New("learning plan not found")
	ErrSessionNotFound    = errors.New("revision session not found")
	ErrSetIndexOutOfRange = errors.New("plan set index out of range")
	ErrNotScored          = errors.New("session has no results yet")
	ErrNothingToReview    = errors.New("nothing to review")
)
