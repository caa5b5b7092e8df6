/*
Package sigs verifies the ed25519 signatures attached to a transaction and
exposes the signers as the authenticated conditions of the call.

Each public key has a sequence counter stored in the "sigs" bucket. A
signature is valid only for the current sequence, which is then incremented,
so a signed transaction cannot be replayed.
*/
package sigs
