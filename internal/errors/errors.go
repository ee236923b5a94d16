// Package errors defines Semfora's structured error kinds: the four of
// spec §7 (input, parse, extraction, and cache-integrity errors) plus git
// errors. Modeled on the
// teacher's typed-error convention rather than ad-hoc fmt.Errorf chains so
// callers can errors.As into the kind they care about.
package errors

import (
	"fmt"
	"time"
)

// Kind tags which of the five error categories an error belongs to.
type Kind string

const (
	KindInput      Kind = "input"
	KindParse      Kind = "parse"
	KindExtraction Kind = "extraction"
	KindCache      Kind = "cache"
	KindGit        Kind = "git"
)

// InputError covers missing files and unsupported languages (spec §7):
// recoverable at the file level.
type InputError struct {
	Path       string
	Reason     string
	Underlying error
	Timestamp  time.Time
}

func NewInputError(path, reason string, err error) *InputError {
	return &InputError{Path: path, Reason: reason, Underlying: err, Timestamp: time.Now()}
}

func (e *InputError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("input: %s (%s): %v", e.Path, e.Reason, e.Underlying)
	}
	return fmt.Sprintf("input: %s (%s)", e.Path, e.Reason)
}

func (e *InputError) Unwrap() error { return e.Underlying }

// ParseError is logged per file with the byte offset of the failing AST
// region; no shard is written, and the prior shard (if any) is retained.
type ParseError struct {
	Path       string
	ByteOffset int
	Underlying error
	Timestamp  time.Time
}

func NewParseError(path string, byteOffset int, err error) *ParseError {
	return &ParseError{Path: path, ByteOffset: byteOffset, Underlying: err, Timestamp: time.Now()}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse: %s at byte %d: %v", e.Path, e.ByteOffset, e.Underlying)
}

func (e *ParseError) Unwrap() error { return e.Underlying }

// ExtractionError covers a detector invariant violation. Fatal for that
// file; callers must still emit a raw_fallback shard (spec §4.2, §7).
type ExtractionError struct {
	Path       string
	Symbol     string
	Underlying error
	Timestamp  time.Time
}

func NewExtractionError(path, symbol string, err error) *ExtractionError {
	return &ExtractionError{Path: path, Symbol: symbol, Underlying: err, Timestamp: time.Now()}
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction: %s symbol=%q: %v", e.Path, e.Symbol, e.Underlying)
}

func (e *ExtractionError) Unwrap() error { return e.Underlying }

// CacheError covers a missing shard referenced by the index, a truncated
// file, or a checksum mismatch. One silent retry is allowed by the caller
// before this is surfaced (spec §7).
type CacheError struct {
	Path       string
	Op         string
	Retried    bool
	Underlying error
	Timestamp  time.Time
}

func NewCacheError(path, op string, err error) *CacheError {
	return &CacheError{Path: path, Op: op, Underlying: err, Timestamp: time.Now()}
}

func (e *CacheError) Error() string {
	retry := ""
	if e.Retried {
		retry = " (after retry)"
	}
	return fmt.Sprintf("cache: %s %s%s: %v", e.Op, e.Path, retry, e.Underlying)
}

func (e *CacheError) Unwrap() error { return e.Underlying }

// GitError wraps a failure invoking or parsing the output of the git CLI.
type GitError struct {
	Op         string
	Underlying error
}

func NewGitError(op string, err error) *GitError {
	return &GitError{Op: op, Underlying: err}
}

func (e *GitError) Error() string {
	return fmt.Sprintf("git: %s: %v", e.Op, e.Underlying)
}

func (e *GitError) Unwrap() error { return e.Underlying }
