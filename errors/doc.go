/*
Package errors implements the error model of the custody application.

Every error returned by a handler should wrap one of the root errors declared
in this package (or registered by an extension with Register). A root error
carries an ABCI code, which is what the client receives, so that a caller can
tell an insufficient balance from a duplicate record without parsing strings.

Create errors at the point of failure with Wrap or Wrapf so that a stack trace
is attached exactly once:

	return errors.Wrapf(errors.ErrNotFound, "deposit %s", key)

Test for a kind of error with the Is method of the root error:

	if errors.ErrDuplicate.Is(err) {
		...
	}

Formatting an error with %+v prints the stack trace of the most inner wrap.
*/
package errors
