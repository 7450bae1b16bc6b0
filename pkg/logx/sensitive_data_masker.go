package logx

import (
	"regexp"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

//nolint:gochecknoglobals
var sensitiveDataPatterns = []*regexp.Regexp{
	regexp.MustCompile("(?s)(Authorization: ).+?(\r)"),
	regexp.MustCompile("(?s)(Cookie: ).+?(\r)"),
	// JSON fields.
	regexp.MustCompile(`(?s)("cpf":\s?").+?(")`),
	regexp.MustCompile(`(?s)("contractNumber":\s?").+?(")`),
	regexp.MustCompile(`(?s)("name":\s?").+?(")`),
	regexp.MustCompile(`(?s)("email":\s?").+?(")`),
}

// SensitiveDataMasker hides personal data that a borrower may attach to an
// evaluation request before it reaches the logs.
type SensitiveDataMasker struct{}

func NewSensitiveDataMasker() SensitiveDataMasker {
	return SensitiveDataMasker{}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range sensitiveDataPatterns {
		input = pattern.ReplaceAll(input, []byte("${1}[MASKED]${2}"))
	}

	return input
}
