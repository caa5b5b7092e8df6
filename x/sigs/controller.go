package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/crypto"
	"github.com/iov-one/bequest/errors"
)

// SignCodeV1 is the current way to prefix the bytes we use to build
// a signature
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks all the signatures on the tx and increments
// the sequence of every signer.
//
// returns list of signer conditions (possibly empty),
// or error if any signature is invalid
func VerifyTxSignatures(db bequest.KVStore, tx SignedTx, chainID string) ([]bequest.Condition, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	sigs := tx.GetSignatures()
	signers := make([]bequest.Condition, 0, len(sigs))
	for i, sig := range sigs {
		signer, err := VerifySignature(db, sig, bz, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks one signature against the sign bytes and
// increments the sequence of the signer.
func VerifySignature(db bequest.KVStore, sig *Signature, signBytes []byte, chainID string) (bequest.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !sig.Pubkey.Verify(toSign, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	bucket := NewBucket()
	addr := sig.Pubkey.Address()
	user, err := bucket.GetOrCreate(db, addr, sig.Pubkey.Ed25519)
	if err != nil {
		return nil, err
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if _, err := bucket.Put(db, addr, user); err != nil {
		return nil, errors.Wrap(err, "cannot store sequence")
	}
	return sig.Pubkey.Condition(), nil
}

/*
BuildSignBytes combines all info on the actual tx before signing

	version | len(chainID) | chainID      | nonce             | signBytes
	4bytes  | uint8        | ascii string | int64 (bigendian) | serialized transaction

This is then prehashed with sha512 before fed into
the public key signing/verification step
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !bequest.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, uint64(seq))

	output := make([]byte, 0, len(SignCodeV1)+1+len(chainID)+len(nonce)+len(signBytes))
	output = append(output, SignCodeV1...)
	output = append(output, uint8(len(chainID)))
	output = append(output, chainID...)
	output = append(output, nonce...)
	output = append(output, signBytes...)

	hashed := sha512.Sum512(output)
	return hashed[:], nil
}

// SignTx creates a signature for the given tx
func SignTx(signer *crypto.PrivateKey, tx SignedTx, chainID string, seq int64) (*Signature, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	toSign, err := BuildSignBytes(bz, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(toSign)
	if err != nil {
		return nil, err
	}
	return &Signature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}
