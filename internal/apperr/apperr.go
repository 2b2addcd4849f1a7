package apperr

import (
	"errors"
	"net/http"
)

// Kind 错误分类
type Kind int

const (
	KindValidation Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindPageOutOfRange
	KindUnexpected
)

// Error 业务错误，带HTTP状态码。Kind 为 KindUnexpected 时对外隐藏详情
type Error struct {
	Kind       Kind
	HTTPStatus int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Operational 是否可预期错误，可直接回传用户
func (e *Error) Operational() bool {
	return e.Kind != KindUnexpected
}

func status(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound, KindPageOutOfRange:
		return http.StatusNotFound
	case KindConflict:
		// 原始接口约定重复操作回 400，前端依赖 message 文案分支
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// New 创建业务错误
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, HTTPStatus: status(kind), Message: message}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

func PageOutOfRange(message string) *Error {
	return New(KindPageOutOfRange, message)
}

// Unexpected 包装非预期错误
func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, HTTPStatus: http.StatusInternalServerError, Message: "伺服器錯誤", Err: err}
}

// From 任意 error 转换为 *Error
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Unexpected(err)
}
