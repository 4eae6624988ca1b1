// Package apperror separates user-input failures, which are reported back
// through a flash message, from failures of the data layer, which go to the
// generic error page.
package apperror

import "fmt"

// ValidationError 사용자 입력이 제약 조건을 만족하지 않음
type ValidationError struct {
	Message string
	// 비어 있으면 핸들러 기본 페이지로 리다이렉트
	RedirectTo string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation creates a ValidationError with the message shown to the user.
func Validation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// SystemError wraps an unexpected data-layer failure.
type SystemError struct {
	Op  string
	Err error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SystemError) Unwrap() error {
	return e.Err
}

// System wraps err with the failing operation. A nil err stays nil.
func System(op string, err error) error {
	if err == nil {
		return nil
	}
	return &SystemError{Op: op, Err: err}
}
