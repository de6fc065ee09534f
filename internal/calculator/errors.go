package calculator

import "errors"

// ErrInvalidInput reports input from which an indicator cannot be determined.
var ErrInvalidInput = errors.New("invalid input")

// Default indicator parameters.
const (
	DefaultSMAPeriod = 10
	DefaultRSIPeriod = 14
	DefaultMACDFast  = 12
	DefaultMACDSlow  = 26
)
