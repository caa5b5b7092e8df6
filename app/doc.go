/*
Package app glues the extensions together. It routes messages to their
handlers, chains the decorators every call passes through, loads the
genesis file and runs calls one at a time against a committed store.
*/
package app
