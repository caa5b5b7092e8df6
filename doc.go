/*
Package bequest defines the interfaces shared by all extensions: storage,
messages, handlers, decorators and the context values every call carries
(block time, logger, chain id).

Extensions live under the x/ directory. x/will implements the time locked
will, x/cash the wallets that hold the custodied coins.
*/
package bequest
