/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each package keeps a single configuration object under the "_c:<package>"
key. The object must validate itself before it is written. Configurations
that declare an owner can use RequireOwner to authorize changes.
*/
package gconf
