/*
Package x contains some standard extensions

Extensions implement common functionality (Handler, Decorator, etc.)
for use in custody based applications.

This top level package contains helpers shared by all extensions:
authentication lookups and checked integer arithmetic.
*/
package x
