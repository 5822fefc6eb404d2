/*
Package errors implements the error handling used across the escrow
application.

Reuse the root errors declared here whenever possible and register package
errors only when a caller must be able to tell them apart. Each registered
error carries an ABCI code that is returned to the client.

Create error instances with errors.Wrap(ErrXyz, "...") at the point of
failure. The innermost wrap attaches a stack trace; further wraps only add
context.

	%s   prints the error message
	%+v  prints the message followed by the stack trace
*/
package errors
