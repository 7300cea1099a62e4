package scraper

import (
	"errors"
	"fmt"
)

// BlockMessage is shown to users when the site starts refusing requests.
const BlockMessage = "네이버가 크롤링을 차단했습니다. 5분 후 다시 시도해주세요."

// BlockedError means the site answered with a rate-limit/block status after
// all retries. Callers must stop issuing requests.
type BlockedError struct {
	Status int
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("blocked by upstream (status %d)", e.Status)
}

// Blocked lets packages that cannot import this one recognize a block.
func (e *BlockedError) Blocked() bool { return true }

// UpstreamError covers transport failures and non-block error statuses.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream request failed: %v", e.Err)
	}
	return fmt.Sprintf("upstream error %d: %s", e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NavigationError is returned when a page did not load or redirected to an
// error page.
type NavigationError struct {
	URL    string
	Reason string
	Err    error
}

func (e *NavigationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("navigation to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("navigation to %s failed: %s", e.URL, e.Reason)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// SessionNotReadyError is returned for page operations issued while no page
// is open.
type SessionNotReadyError struct {
	Op    string
	State SessionState
}

func (e *SessionNotReadyError) Error() string {
	return fmt.Sprintf("%s: browser session is %s", e.Op, e.State)
}

var ErrSessionActive = errors.New("a browser session is already running")

func IsBlocked(err error) bool {
	var be *BlockedError
	return errors.As(err, &be)
}
