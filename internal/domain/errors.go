package domain

import (
	"errors"
	"fmt"
)

const (
	CodeNotFound                = "NOT_FOUND"
	CodeUniquenessViolation     = "UNIQUENESS_VIOLATION"
	CodeWriteVerificationFailed = "WRITE_VERIFICATION_FAILED"
	CodeTransactionAborted      = "TRANSACTION_ABORTED"
	CodeValidation              = "VALIDATION_ERROR"
)

type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Это позволяет использовать errors.Is()
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

var (
	// ErrNotFound - сущность не найдена
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "resource not found",
	}

	// ErrUniquenessViolation - нарушено ограничение уникальности (имя, позиция, лидер)
	ErrUniquenessViolation = &DomainError{
		Code:    CodeUniquenessViolation,
		Message: "uniqueness constraint violated",
	}

	// ErrWriteVerificationFailed - запись затронула не ровно одну строку
	ErrWriteVerificationFailed = &DomainError{
		Code:    CodeWriteVerificationFailed,
		Message: "unexpected number of affected rows",
	}

	// ErrTransactionAborted - транзакцию не удалось зафиксировать
	ErrTransactionAborted = &DomainError{
		Code:    CodeTransactionAborted,
		Message: "transaction aborted",
	}

	// ErrValidation - нарушено бизнес-правило
	ErrValidation = &DomainError{
		Code:    CodeValidation,
		Message: "validation failed",
	}

	ErrSoleLeader = &DomainError{
		Code:    CodeValidation,
		Message: "cannot remove sole leader",
	}
)

// NewNotFoundError создает ошибку NOT_FOUND с дополнительным контекстом
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewValidationError(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

func NewUniquenessError(message string, cause error) *DomainError {
	return &DomainError{
		Code:    CodeUniquenessViolation,
		Message: message,
		Cause:   cause,
	}
}

// NewWriteVerificationError фиксирует, сколько строк затронула запись вместо одной
func NewWriteVerificationError(action string, affected int64) *DomainError {
	return &DomainError{
		Code:    CodeWriteVerificationFailed,
		Message: fmt.Sprintf("%s affected %d rows, expected 1", action, affected),
	}
}

func NewTransactionAbortedError(cause error) *DomainError {
	return &DomainError{
		Code:    CodeTransactionAborted,
		Message: "transaction aborted",
		Cause:   cause,
	}
}

// AsDomainError приводит любую ошибку к DomainError.
// Неизвестные ошибки считаются прерванной транзакцией и сохраняют исходную причину.
func AsDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return NewTransactionAbortedError(err)
}

// IsExpected сообщает, является ли ошибка штатной доменной ошибкой
// (не найдено, валидация, уникальность), а не сбоем хранилища.
func IsExpected(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrUniquenessViolation)
}
