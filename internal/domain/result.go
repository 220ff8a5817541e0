package domain

// Result - ответ любой операции слоя данных: либо данные, либо типизированная ошибка.
type Result[T any] struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    T            `json:"data,omitempty"`
	Error   *DomainError `json:"error,omitempty"`
}

func OK[T any](message string, data T) Result[T] {
	return Result[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func Fail[T any](message string, err error) Result[T] {
	return Result[T]{
		Success: false,
		Message: message,
		Error:   AsDomainError(err),
	}
}

// Err возвращает ошибку результата как error (nil для успешного результата).
func (r Result[T]) Err() error {
	if r.Success || r.Error == nil {
		return nil
	}
	return r.Error
}
