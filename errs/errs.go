// Package errs 定义核心的三类错误: 参数校验、未找到、内部错误
package errs

import (
	"errors"
	"fmt"
)

// Kind 错误类别
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// 可以用 errors.Is 区分的未找到原因
var (
	ErrLocationNotFound  = errors.New("location not found")
	ErrNodesNotFound     = errors.New("Target plan nodes not found")
	ErrEndpointsNotFound = errors.New("Unable to find start point or end point")
	ErrPlanNotFound      = errors.New("Planning not found")
)

// Error 带类别和操作名的错误
type Error struct {
	Kind Kind
	Op   string // 发生错误的操作, 如 "search.coords"
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Validation 参数校验错误
func Validation(op, format string, args ...any) error {
	return &Error{Kind: KindValidation, Op: op, Err: fmt.Errorf(format, args...)}
}

// NotFound 包装未找到错误
func NotFound(op string, err error) error {
	return &Error{Kind: KindNotFound, Op: op, Err: err}
}

// Internal 包装存储/查询失败
func Internal(op string, err error) error {
	return &Error{Kind: KindInternal, Op: op, Err: err}
}

// KindOf 返回错误类别, 非 *Error 一律视为内部错误
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// OpOf 返回最外层 *Error 的操作名
func OpOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}

// Message 返回给调用方的错误信息, 内部错误不暴露细节
func Message(err error) string {
	var e *Error
	if !errors.As(err, &e) || e.Kind == KindInternal {
		return "internal server error"
	}
	return e.Err.Error()
}

type described struct {
	msg   string
	cause error
}

func (d *described) Error() string { return d.msg }
func (d *described) Unwrap() error { return d.cause }

// Describe 用更具体的信息替换 cause 的文本, errors.Is 仍能匹配 cause
func Describe(cause error, format string, args ...any) error {
	return &described{msg: fmt.Sprintf(format, args...), cause: cause}
}
