// Package apperror описывает закрытый набор категорий ошибок, которые HTTP-слой переводит в ответы.
package apperror

import (
	"errors"
	"fmt"
)

// Kind определяет категорию ошибки.
type Kind int

const (
	// KindValidation означает, что входные данные не прошли проверку полей.
	KindValidation Kind = iota + 1
	// KindBusiness означает нарушение бизнес-правила: сущность не найдена, чужой кредит и т.п.
	KindBusiness
	// KindConflict означает нарушение ограничения целостности в хранилище.
	KindConflict
)

// String возвращает идентификатор категории, попадающий в поле exception ответа.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindBusiness:
		return "BusinessError"
	case KindConflict:
		return "DataAccessError"
	default:
		return "InternalError"
	}
}

// Error описывает ошибку приложения с категорией и деталями для клиента.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation создаёт ошибку валидации с сообщениями по полям.
func Validation(fields map[string]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "validation failed",
		Details: fields,
	}
}

// Business создаёт ошибку бизнес-правила с сообщением для клиента.
func Business(format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{
		Kind:    KindBusiness,
		Message: msg,
		Details: map[string]string{"message": msg},
	}
}

// Conflict оборачивает ошибку хранилища, вызванную нарушением ограничения.
func Conflict(constraint, detail string, err error) *Error {
	if constraint == "" {
		constraint = "constraint"
	}
	return &Error{
		Kind:    KindConflict,
		Message: "constraint violation",
		Details: map[string]string{constraint: detail},
		Err:     err,
	}
}

// As извлекает *Error из цепочки ошибок.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind сообщает, относится ли ошибка к указанной категории.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
