/*
Package x contains the authentication helpers shared by all extensions.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together to construct the application.
Handlers receive an Authenticator in their constructor, so the
signature verification can be replaced without touching them.
*/
package x
