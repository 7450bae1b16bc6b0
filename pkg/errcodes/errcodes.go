package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	InvalidCategory          failure.ErrorCode = "InvalidCategory"
	InvalidLoanQuery         failure.ErrorCode = "InvalidLoanQuery"
	ReferenceRateUnavailable failure.ErrorCode = "ReferenceRateUnavailable"
)
