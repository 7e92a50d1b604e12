package pages

import "errors"

var (
	ErrKeywordReferenceRequired = errors.New("pages: keyword slug or id required")
	ErrDialectInvalid           = errors.New("pages: unknown dialect")
	ErrKeywordServiceRequired   = errors.New("pages: keyword service is required")
)
