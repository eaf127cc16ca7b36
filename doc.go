/*
Package custody defines all common interfaces used to compose the custody
application: stores, messages, transactions, handlers and decorators, as well
as implementations of some of the simpler components (addresses, conditions,
results) where interfaces would be too much overhead.

Context is passed through context.Context between the app, middleware, and
handlers. This package defines common keys to store block information such as
the height and the chain id. Each extension, such as sigs, may add its own
keys to enrich the context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).
*/
package custody
