package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind 是错误的分类，决定了它在HTTP边界上被映射成的状态码
type Kind int

const (
	KindStoreFailure Kind = iota
	KindValidation
	KindUnauthorized
	KindPhaseViolation
	KindDuplicateVote
	KindNotFound
)

// Error 是本项目统一的业务错误类型
type Error struct {
	Kind    Kind
	Message string // 返回给调用方的错误信息
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Message == "" {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is 按Kind匹配，使 errors.Is(err, apperr.ErrNotFound) 对所有NotFound错误成立
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Kind == t.Kind
}

// Status 返回该错误对应的HTTP状态码
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindPhaseViolation, KindDuplicateVote:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// 用于 errors.Is 判断的哨兵错误
var (
	ErrValidation     = &Error{Kind: KindValidation, Message: "invalid request"}
	ErrUnauthorized   = &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrPhaseViolation = &Error{Kind: KindPhaseViolation, Message: "Voting not allowed in current phase"}
	ErrDuplicateVote  = &Error{Kind: KindDuplicateVote, Message: "You have already voted on this khatira"}
	ErrNotFound       = &Error{Kind: KindNotFound, Message: "not found"}
	ErrStoreFailure   = &Error{Kind: KindStoreFailure, Message: "store failure"}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Store 把底层持久化错误包装成StoreFailure。
// 已经是 *Error 的错误原样返回，避免把业务错误降级成500。
func Store(cause error) error {
	if cause == nil {
		return nil
	}
	var appErr *Error
	if errors.As(cause, &appErr) {
		return appErr
	}
	return &Error{Kind: KindStoreFailure, Cause: cause}
}

// FromBinding 把gin的请求绑定错误转换成ValidationError
func FromBinding(err error) *Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, describeField(fe))
		}
		return &Error{Kind: KindValidation, Message: strings.Join(fields, "; "), Cause: err}
	}
	return &Error{Kind: KindValidation, Message: "invalid request body", Cause: err}
}

func describeField(fe validator.FieldError) string {
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "min", "gte":
		return field + " must be at least " + fe.Param()
	default:
		return field + " is invalid"
	}
}

// toSnake 把结构体字段名 (KhatiraID) 转成请求体里的json键名 (khatira_id)
func toSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || (nextLower && runes[i-1] >= 'A' && runes[i-1] <= 'Z') {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
