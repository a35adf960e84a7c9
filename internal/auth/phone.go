// Package auth holds the local checks of the phone login screen. They are
// input validation only; no code is sent or verified remotely.
package auth

import (
	"errors"
	"fmt"

	"kisanmandi/internal/utils"
)

const (
	countryPrefix = "+91"
	phoneDigits   = 10
	otpDigits     = 6

	// DemoOTP is the code shown on the verification screen.
	DemoOTP = "123456"
)

var (
	ErrInvalidPhone = errors.New("please enter a valid 10-digit number")
	ErrInvalidOTP   = errors.New("invalid code, try " + DemoOTP)
)

// NormalizePhone accepts a 10-digit mobile number in any punctuation and
// returns it as "+91 <digits>".
func NormalizePhone(raw string) (string, error) {
	digits := utils.DigitsOnly(raw)
	if len(digits) != phoneDigits {
		return "", ErrInvalidPhone
	}
	return fmt.Sprintf("%s %s", countryPrefix, digits), nil
}

// VerifyOTP accepts any six-digit code.
func VerifyOTP(code string) error {
	if len(code) != otpDigits || utils.DigitsOnly(code) != code {
		return ErrInvalidOTP
	}
	return nil
}
