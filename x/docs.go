/*
Package x contains the extensions of the application.

Extensions implement common functionality (Handler, Decorator,
Initializer) and are combined together by the app package. The cash
extension moves value between accounts, the will extension holds value
on behalf of an owner and releases it to beneficiaries, and utils provides
the decorators every call passes through.
*/
package x
