package neighborhood

import "fmt"

// ArgumentError reports an input that has the wrong shape for the argument
// it was passed as. Arg names the argument and Want describes the expected
// shape.
type ArgumentError struct {
	Arg    string
	Want   string
	Detail string
}

func (e *ArgumentError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("neighborhood: can't resolve `%s`, should be %s", e.Arg, e.Want)
	}
	return fmt.Sprintf("neighborhood: can't resolve `%s`, should be %s: %s", e.Arg, e.Want, e.Detail)
}

func argError(arg, want, format string, args ...any) *ArgumentError {
	return &ArgumentError{Arg: arg, Want: want, Detail: fmt.Sprintf(format, args...)}
}
