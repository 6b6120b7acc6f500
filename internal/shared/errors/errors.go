package errors

import (
	stderrors "errors"
)

// ErrorCode 业务错误码
type ErrorCode string

const (
	ErrorCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrorCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrorCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// 目录树构建相关
	ErrorCodeMalformedURL        ErrorCode = "MALFORMED_URL"
	ErrorCodeUpstreamTimeout     ErrorCode = "UPSTREAM_TIMEOUT"
	ErrorCodeUpstreamBadGateway  ErrorCode = "UPSTREAM_BAD_GATEWAY"
	ErrorCodeUpstreamUnreachable ErrorCode = "UPSTREAM_UNREACHABLE"
	ErrorCodeUpstreamOther       ErrorCode = "UPSTREAM_ERROR"
)

// ServiceError 业务错误
type ServiceError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Cause.Error()
	}
	return string(e.Code) + ": " + e.Message
}

// Unwrap 返回底层错误
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// WithDetail 附加一条详情,返回自身便于链式调用
func (e *ServiceError) WithDetail(key string, value interface{}) *ServiceError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewServiceError 创建业务错误
func NewServiceError(code ErrorCode, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithCause 创建带原因的业务错误
func NewServiceErrorWithCause(code ErrorCode, message string, cause error) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewMalformedURLError 创建URL解析失败错误
func NewMalformedURLError(rawURL string, cause error) *ServiceError {
	return NewServiceErrorWithCause(ErrorCodeMalformedURL, "malformed file url", cause).
		WithDetail("url", rawURL)
}

// AsServiceError 从错误链中提取ServiceError
func AsServiceError(err error) (*ServiceError, bool) {
	var serviceErr *ServiceError
	if stderrors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}

// CodeOf 返回错误码,非ServiceError统一视为内部错误
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if serviceErr, ok := AsServiceError(err); ok {
		return serviceErr.Code
	}
	return ErrorCodeInternalError
}

// Is 判断错误链中是否包含指定错误码
func Is(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// IsUpstream 判断是否为上游数据源错误
func IsUpstream(code ErrorCode) bool {
	switch code {
	case ErrorCodeUpstreamTimeout, ErrorCodeUpstreamBadGateway,
		ErrorCodeUpstreamUnreachable, ErrorCodeUpstreamOther:
		return true
	}
	return false
}
