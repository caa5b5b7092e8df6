package main

import (
	"encoding/json"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
	"github.com/iov-one/bequest/x/sigs"
)

// Tx carries a single message and the signatures of its signers.
type Tx struct {
	Msg        bequest.Msg
	Signatures []*sigs.Signature
}

var _ sigs.SignedTx = (*Tx)(nil)

func (tx *Tx) GetMsg() (bequest.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return tx.Msg, nil
}

// GetSignBytes binds the signature to the message path and content.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	raw, err := json.Marshal(tx.Msg)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "cannot serialize: %s", err)
	}
	bz := append([]byte(tx.Msg.Path()), 0)
	return append(bz, raw...), nil
}

func (tx *Tx) GetSignatures() []*sigs.Signature {
	return tx.Signatures
}
