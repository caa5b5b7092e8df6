/*
Package errors implements coded root errors used across bequest.

Reuse the errors declared in this package whenever possible. An extension
declares its own root errors with Register, using a code that is not taken
yet, for example x/will registers ErrTooEarly and ErrAlreadyClaimed.

Create an error instance at the place where the problem happens, using
ErrXyz.New("...") or Wrap(ErrXyz, "..."). The innermost wrap attaches a
stacktrace. Do not declare wrapped errors as package variables, the recorded
stacktrace would point to the package initialization.

Formatting an error with fmt:
	%s is the error message
	%+v is the message with the full stacktrace

Use `Is` to test an error category, no matter how many times it was wrapped:

	if will.ErrTooEarly.Is(err) {
		// ...
	}
*/
package errors
