/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration entity, stored under the
"_c:<package name>" key. Configuration is loaded from the genesis file and can
later be changed by its owner with a patch message.

Not being able to load a configuration is a critical condition for the
extension relying on it and is returned as an error to the caller.
*/
package gconf
