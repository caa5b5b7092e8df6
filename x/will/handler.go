package will

import (
	"encoding/hex"
	"fmt"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
	"github.com/iov-one/bequest/orm"
	"github.com/iov-one/bequest/x"
	"github.com/iov-one/bequest/x/utils"
	"github.com/tendermint/tendermint/libs/common"
)

// Tag keys attached to the results.
const (
	TagWill          = "will"
	TagOwner         = "will_owner"
	TagPreviousOwner = "will_previous_owner"
)

// willSeq shares the key space of the bucket sequence.
var willSeq = orm.NewSequence("will", "id")

// RegisterRoutes registers handlers for will message processing.
func RegisterRoutes(r bequest.Registry, auth x.Authenticator, ctrl CoinMover) {
	b := handlerBase{auth: auth, bucket: NewBucket(), ctrl: ctrl}
	r.Handle(pathCreateMsg, &CreateHandler{b})
	r.Handle(pathDepositMsg, &DepositHandler{b})
	r.Handle(pathAddBeneficiaryMsg, &configureHandler{b, b.addBeneficiary})
	r.Handle(pathRemoveBeneficiaryMsg, &configureHandler{b, b.removeBeneficiary})
	r.Handle(pathApproveAddressesMsg, &configureHandler{b, b.approveAddresses})
	r.Handle(pathSetSharesMsg, &configureHandler{b, b.setShares})
	r.Handle(pathChangeExpiryMsg, &configureHandler{b, b.changeExpiry})
	r.Handle(pathTransferOwnerMsg, &configureHandler{b, b.transferOwnership})
	r.Handle(pathRenounceOwnerMsg, &configureHandler{b, b.renounceOwnership})
	r.Handle(pathDistributeMsg, &DistributeHandler{b})
}

type handlerBase struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ctrl   CoinMover
}

// load returns an active will.
func (b handlerBase) load(db bequest.ReadOnlyKVStore, id []byte) (*Will, error) {
	var w Will
	if err := b.bucket.One(db, id, &w); err != nil {
		return nil, errors.Wrapf(err, "will %X", id)
	}
	if w.State == StateClaimed {
		return nil, errors.Wrapf(ErrAlreadyClaimed, "will %X", id)
	}
	return &w, nil
}

// loadOwned returns an active will if the caller is its owner.
func (b handlerBase) loadOwned(ctx bequest.Context, db bequest.ReadOnlyKVStore, id []byte) (*Will, bequest.Address, error) {
	w, err := b.load(db, id)
	if err != nil {
		return nil, nil, err
	}
	caller := b.caller(ctx, w)
	if err := w.Ownership.Authorize(caller); err != nil {
		return nil, nil, err
	}
	return w, caller, nil
}

// caller returns the owner if the owner signed the call. Otherwise the main
// signer is the caller.
func (b handlerBase) caller(ctx bequest.Context, w *Will) bequest.Address {
	return x.Caller(ctx, b.auth, w.Ownership.GetOwner())
}

func now(ctx bequest.Context) (bequest.UnixTime, error) {
	t, err := bequest.BlockTime(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "block time")
	}
	return bequest.AsUnixTime(t), nil
}

func willTag(id []byte) common.KVPair {
	return common.KVPair{Key: []byte(TagWill), Value: []byte(hex.EncodeToString(id))}
}

// CreateHandler creates a will owned by the main signer.
type CreateHandler struct {
	handlerBase
}

var _ bequest.Handler = (*CreateHandler)(nil)

func (h *CreateHandler) Check(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &bequest.CheckResult{}, nil
}

func (h *CreateHandler) Deliver(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.DeliverResult, error) {
	msg, creator, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	created, err := now(ctx)
	if err != nil {
		return nil, err
	}
	timer, err := NewExpiryTimer(created, msg.Duration)
	if err != nil {
		return nil, err
	}

	key, err := willSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire key")
	}
	w := &Will{
		Metadata:  &bequest.Metadata{Schema: 1},
		Ownership: &OwnershipGuard{Owner: creator},
		Timer:     timer,
		Registry:  &Registry{},
		State:     StateActive,
		Address:   Condition(key).Address(),
		CreatedAt: created,
		Memo:      msg.Memo,
	}
	if _, err := h.bucket.Put(db, key, w); err != nil {
		return nil, errors.Wrap(err, "cannot store will")
	}

	for _, c := range msg.Deposit {
		if err := h.ctrl.MoveCoins(db, creator, w.Address, *c); err != nil {
			return nil, errors.Wrap(err, "deposit")
		}
	}

	bequest.GetLogger(ctx).Info("will created",
		"will", hex.EncodeToString(key),
		"owner", creator,
		"deadline", w.Timer.Deadline)
	return &bequest.DeliverResult{
		Data: key,
		Tags: []common.KVPair{willTag(key)},
	}, nil
}

func (h *CreateHandler) validate(ctx bequest.Context, tx bequest.Tx) (*CreateMsg, bequest.Address, error) {
	var msg CreateMsg
	if err := bequest.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return &msg, signer.Address(), nil
}

// DepositHandler moves coins from the main signer to an active will.
type DepositHandler struct {
	handlerBase
}

var _ bequest.Handler = (*DepositHandler)(nil)

func (h *DepositHandler) Check(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bequest.CheckResult{}, nil
}

func (h *DepositHandler) Deliver(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.DeliverResult, error) {
	msg, w, sender, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	for _, c := range msg.Amount {
		if err := h.ctrl.MoveCoins(db, sender, w.Address, *c); err != nil {
			return nil, errors.Wrap(err, "deposit")
		}
	}
	return &bequest.DeliverResult{Tags: []common.KVPair{willTag(msg.WillID)}}, nil
}

func (h *DepositHandler) validate(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*DepositMsg, *Will, bequest.Address, error) {
	var msg DepositMsg
	if err := bequest.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	w, err := h.load(db, msg.WillID)
	if err != nil {
		return nil, nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return &msg, w, signer.Address(), nil
}

// change is the result of an owner operation applied to a will in memory.
type change struct {
	id   []byte
	will *Will
	log  string
	tags []common.KVPair
}

// configureHandler runs an owner only operation. Check computes the change
// without storing it.
type configureHandler struct {
	handlerBase
	apply func(bequest.Context, bequest.KVStore, bequest.Tx) (*change, error)
}

var _ bequest.Handler = (*configureHandler)(nil)

func (h *configureHandler) Check(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.CheckResult, error) {
	c, err := h.apply(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &bequest.CheckResult{Log: c.log}, nil
}

func (h *configureHandler) Deliver(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.DeliverResult, error) {
	c, err := h.apply(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.bucket.Put(db, c.id, c.will); err != nil {
		return nil, errors.Wrap(err, "cannot store will")
	}
	bequest.GetLogger(ctx).Debug(c.log, "will", hex.EncodeToString(c.id), "path", bequest.GetPath(tx))
	return &bequest.DeliverResult{
		Log:  c.log,
		Tags: append([]common.KVPair{willTag(c.id)}, c.tags...),
	}, nil
}

func (b handlerBase) addBeneficiary(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*change, error) {
	var msg AddBeneficiaryMsg
	if err := bequest.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, _, err := b.loadOwned(ctx, db, msg.WillID)
	if err != nil {
		return nil, err
	}
	if err := w.Registry.AddBeneficiaries(msg.Beneficiary); err != nil {
		return nil, err
	}
	return &change{id: msg.WillID, will: w, log: "beneficiary added"}, nil
}

func (b handlerBase) removeBeneficiary(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*change, error) {
	var msg RemoveBeneficiaryMsg
	if err := bequest.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, _, err := b.loadOwned(ctx, db, msg.WillID)
	if err != nil {
		return nil, err
	}
	if err := w.Registry.RemoveBeneficiary(msg.Beneficiary); err != nil {
		return nil, err
	}
	return &change{id: msg.WillID, will: w, log: "beneficiary removed"}, nil
}

func (b handlerBase) approveAddresses(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*change, error) {
	var msg ApproveAddressesMsg
	if err := bequest.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, _, err := b.loadOwned(ctx, db, msg.WillID)
	if err != nil {
		return nil, err
	}
	if msg.Replace {
		err = w.Registry.ReplaceBeneficiaries(msg.Addresses...)
	} else {
		err = w.Registry.AddBeneficiaries(msg.Addresses...)
	}
	if err != nil {
		return nil, err
	}
	return &change{
		id:   msg.WillID,
		will: w,
		log:  fmt.Sprintf("%d beneficiaries approved", w.Registry.Count()),
	}, nil
}

func (b handlerBase) setShares(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*change, error) {
	var msg SetSharesMsg
	if err := bequest.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, _, err := b.loadOwned(ctx, db, msg.WillID)
	if err != nil {
		return nil, err
	}
	if err := w.Registry.SetShares(msg.Shares()); err != nil {
		return nil, err
	}
	return &change{id: msg.WillID, will: w, log: "shares set"}, nil
}

func (b handlerBase) changeExpiry(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*change, error) {
	var msg ChangeExpiryMsg
	if err := bequest.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, _, err := b.loadOwned(ctx, db, msg.WillID)
	if err != nil {
		return nil, err
	}
	t, err := now(ctx)
	if err != nil {
		return nil, err
	}
	if err := w.Timer.Extend(t, msg.Duration); err != nil {
		return nil, err
	}
	return &change{
		id:   msg.WillID,
		will: w,
		log:  fmt.Sprintf("deadline set to %s", w.Timer.Deadline),
	}, nil
}

func (b handlerBase) transferOwnership(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*change, error) {
	var msg TransferOwnershipMsg
	if err := bequest.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := b.load(db, msg.WillID)
	if err != nil {
		return nil, err
	}
	changed, err := w.Ownership.TransferOwnership(b.caller(ctx, w), msg.NewOwner)
	if err != nil {
		return nil, err
	}
	return ownershipChange(ctx, msg.WillID, w, changed), nil
}

func (b handlerBase) renounceOwnership(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*change, error) {
	var msg RenounceOwnershipMsg
	if err := bequest.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := b.load(db, msg.WillID)
	if err != nil {
		return nil, err
	}
	changed, err := w.Ownership.RenounceOwnership(b.caller(ctx, w))
	if err != nil {
		return nil, err
	}
	return ownershipChange(ctx, msg.WillID, w, changed), nil
}

func ownershipChange(ctx bequest.Context, id []byte, w *Will, changed *OwnershipChanged) *change {
	var next string
	if len(changed.Next) != 0 {
		next = changed.Next.String()
	}
	bequest.GetLogger(ctx).Info("will ownership changed",
		"will", hex.EncodeToString(id),
		"previous", changed.Previous,
		"next", changed.Next)
	return &change{
		id:   id,
		will: w,
		log:  fmt.Sprintf("ownership changed from %s to %s", changed.Previous, changed.Next),
		tags: []common.KVPair{
			{Key: []byte(TagPreviousOwner), Value: []byte(changed.Previous.String())},
			{Key: []byte(TagOwner), Value: []byte(next)},
		},
	}
}

// DistributeHandler pays out an expired will to its beneficiaries. Anyone
// can trigger the distribution.
type DistributeHandler struct {
	handlerBase
}

var _ bequest.Handler = (*DistributeHandler)(nil)

func (h *DistributeHandler) Check(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &bequest.CheckResult{}, nil
}

// Deliver marks the will as claimed before any coins are moved. All
// changes, including the claimed state, are discarded if any transfer
// fails.
func (h *DistributeHandler) Deliver(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.DeliverResult, error) {
	return utils.NewSavepoint().OnDeliver().Deliver(ctx, db, tx, deliverFunc(h.distribute))
}

func (h *DistributeHandler) distribute(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.DeliverResult, error) {
	msg, w, claimedAt, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	balance, err := h.ctrl.Balance(db, w.Address)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire will balance")
	}
	payouts, err := Payouts(balance, w.Registry)
	if err != nil {
		return nil, err
	}

	w.State = StateClaimed
	w.ClaimedAt = claimedAt
	if s := x.MainSigner(ctx, h.auth); s != nil {
		w.ClaimedBy = s.Address()
	}
	if _, err := h.bucket.Put(db, msg.WillID, w); err != nil {
		return nil, errors.Wrap(err, "cannot store will")
	}

	if err := Pay(db, h.ctrl, w.Address, payouts); err != nil {
		return nil, err
	}

	logger := bequest.GetLogger(ctx)
	for _, p := range payouts {
		logger.Debug("will payout", "will", hex.EncodeToString(msg.WillID), "recipient", p.Recipient, "amount", p.Amount)
	}
	logger.Info("will distributed",
		"will", hex.EncodeToString(msg.WillID),
		"payouts", len(payouts),
		"beneficiaries", w.Registry.Count())
	return &bequest.DeliverResult{
		Log:  fmt.Sprintf("%d payouts to %d beneficiaries", len(payouts), w.Registry.Count()),
		Tags: []common.KVPair{willTag(msg.WillID)},
	}, nil
}

func (h *DistributeHandler) validate(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*DistributeMsg, *Will, bequest.UnixTime, error) {
	var msg DistributeMsg
	if err := bequest.LoadMsg(tx, &msg); err != nil {
		return nil, nil, 0, errors.Wrap(err, "load msg")
	}
	w, err := h.load(db, msg.WillID)
	if err != nil {
		return nil, nil, 0, err
	}
	t, err := now(ctx)
	if err != nil {
		return nil, nil, 0, err
	}
	if !w.Timer.HasElapsed(t) {
		return nil, nil, 0, errors.Wrapf(ErrTooEarly, "deadline %s", w.Timer.Deadline)
	}
	if w.Registry.IsEmpty() {
		return nil, nil, 0, errors.Wrapf(ErrEmptyRegistry, "will %X", msg.WillID)
	}
	return &msg, w, t, nil
}

// deliverFunc allows to use a function where a Deliverer is expected.
type deliverFunc func(bequest.Context, bequest.KVStore, bequest.Tx) (*bequest.DeliverResult, error)

func (fn deliverFunc) Deliver(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx) (*bequest.DeliverResult, error) {
	return fn(ctx, db, tx)
}
