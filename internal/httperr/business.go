package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// IsBusiness reports whether err carries a business code at all, as
// opposed to an infrastructure failure.
func IsBusiness(err error) bool {
	var be BusinessError
	return errors.As(err, &be)
}

// BusinessCode extracts the code from a BusinessError, or "" when err is
// some other kind of failure.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
