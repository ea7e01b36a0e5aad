package service

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind 业务错误分类，决定 HTTP 状态码
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindPersistence
	KindUnauthorized
	KindConflict
)

// Error 带分类的业务错误，Msg 直接返回给调用方
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

// Validation 参数校验错误，发生在任何写操作之前
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: sprintf(format, args...)}
}

// NotFound 引用的记录不存在
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Persistence 数据库等外部依赖失败，对外只给出通用信息
func Persistence(msg string, cause error) error {
	return &Error{Kind: KindPersistence, Msg: msg, Err: cause}
}

// Unauthorized 未登录或凭据错误
func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

// Conflict 唯一性冲突
func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// StatusOf 错误对应的 HTTP 状态码，未分类的错误一律 500
func StatusOf(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// IsKind 判断错误分类
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
