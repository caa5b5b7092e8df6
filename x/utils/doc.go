/*
Package utils provides the decorators that every call passes through:
panic recovery, logging, metrics, action tagging and the savepoint that
makes a call atomic.
*/
package utils
