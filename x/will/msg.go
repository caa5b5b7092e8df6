package will

import (
	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/coin"
	"github.com/iov-one/bequest/errors"
	"github.com/iov-one/bequest/orm"
)

const (
	pathCreateMsg            = "will/create"
	pathDepositMsg           = "will/deposit"
	pathAddBeneficiaryMsg    = "will/add_beneficiary"
	pathRemoveBeneficiaryMsg = "will/remove_beneficiary"
	pathApproveAddressesMsg  = "will/approve_addresses"
	pathSetSharesMsg         = "will/set_shares"
	pathChangeExpiryMsg      = "will/change_expiry"
	pathTransferOwnerMsg     = "will/transfer_ownership"
	pathRenounceOwnerMsg     = "will/renounce_ownership"
	pathDistributeMsg        = "will/distribute"
)

var (
	_ bequest.Msg = (*CreateMsg)(nil)
	_ bequest.Msg = (*DepositMsg)(nil)
	_ bequest.Msg = (*AddBeneficiaryMsg)(nil)
	_ bequest.Msg = (*RemoveBeneficiaryMsg)(nil)
	_ bequest.Msg = (*ApproveAddressesMsg)(nil)
	_ bequest.Msg = (*SetSharesMsg)(nil)
	_ bequest.Msg = (*ChangeExpiryMsg)(nil)
	_ bequest.Msg = (*TransferOwnershipMsg)(nil)
	_ bequest.Msg = (*RenounceOwnershipMsg)(nil)
	_ bequest.Msg = (*DistributeMsg)(nil)
)

// CreateMsg creates a new will owned by the signer. The timer starts with
// the block time of the call.
type CreateMsg struct {
	// Duration in seconds after which the will can be distributed.
	Duration int64
	// Deposit is optional and moved from the signer to the will account.
	Deposit []*coin.Coin
	Memo    string
}

func (CreateMsg) Path() string {
	return pathCreateMsg
}

func (m *CreateMsg) Validate() error {
	var err error
	if m.Duration <= 0 {
		err = errors.AppendField(err, "Duration", errors.ErrInput.Newf("duration must be positive, got %d", m.Duration))
	}
	if len(m.Deposit) != 0 {
		err = errors.AppendField(err, "Deposit", validateAmount(m.Deposit))
	}
	if len(m.Memo) > maxMemoSize {
		err = errors.AppendField(err, "Memo", errors.ErrInput.Newf("memo longer than %d", maxMemoSize))
	}
	return err
}

// DepositMsg moves coins from the signer to an active will.
type DepositMsg struct {
	WillID []byte
	Amount []*coin.Coin
}

func (DepositMsg) Path() string {
	return pathDepositMsg
}

func (m *DepositMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "WillID", orm.ValidateSequence(m.WillID))
	if len(m.Amount) == 0 {
		err = errors.AppendField(err, "Amount", errors.ErrAmount.New("deposit required"))
	} else {
		err = errors.AppendField(err, "Amount", validateAmount(m.Amount))
	}
	return err
}

// AddBeneficiaryMsg adds an address to the equal split beneficiaries.
type AddBeneficiaryMsg struct {
	WillID      []byte
	Beneficiary bequest.Address
}

func (AddBeneficiaryMsg) Path() string {
	return pathAddBeneficiaryMsg
}

func (m *AddBeneficiaryMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "WillID", orm.ValidateSequence(m.WillID))
	err = errors.AppendField(err, "Beneficiary", m.Beneficiary.Validate())
	return err
}

// RemoveBeneficiaryMsg removes an address from the equal split
// beneficiaries.
type RemoveBeneficiaryMsg struct {
	WillID      []byte
	Beneficiary bequest.Address
}

func (RemoveBeneficiaryMsg) Path() string {
	return pathRemoveBeneficiaryMsg
}

func (m *RemoveBeneficiaryMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "WillID", orm.ValidateSequence(m.WillID))
	err = errors.AppendField(err, "Beneficiary", m.Beneficiary.Validate())
	return err
}

// ApproveAddressesMsg adds many addresses to the equal split beneficiaries
// at once. When Replace is set, the current beneficiaries are discarded
// first.
type ApproveAddressesMsg struct {
	WillID    []byte
	Addresses []bequest.Address
	Replace   bool
}

func (ApproveAddressesMsg) Path() string {
	return pathApproveAddressesMsg
}

func (m *ApproveAddressesMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "WillID", orm.ValidateSequence(m.WillID))
	if len(m.Addresses) == 0 {
		err = errors.AppendField(err, "Addresses", errors.ErrEmpty)
	}
	for i, a := range m.Addresses {
		err = errors.AppendField(err, indexField("Addresses", i), a.Validate())
	}
	return err
}

// SetSharesMsg replaces the beneficiaries with a percent share table. Both
// lists are matched by position.
type SetSharesMsg struct {
	WillID        []byte
	Beneficiaries []bequest.Address
	Percents      []int32
}

func (SetSharesMsg) Path() string {
	return pathSetSharesMsg
}

// Validate checks only the shape of the message. Share table rules are
// validated when the table is built.
func (m *SetSharesMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "WillID", orm.ValidateSequence(m.WillID))
	if len(m.Beneficiaries) != len(m.Percents) {
		err = errors.AppendField(err, "Percents", errors.ErrInput.Newf(
			"%d beneficiaries but %d percents", len(m.Beneficiaries), len(m.Percents)))
	}
	return err
}

// Shares zips beneficiaries with their percents.
func (m *SetSharesMsg) Shares() []*Share {
	shares := make([]*Share, len(m.Beneficiaries))
	for i, b := range m.Beneficiaries {
		shares[i] = &Share{Address: b, Percent: m.Percents[i]}
	}
	return shares
}

// ChangeExpiryMsg sets the deadline to Duration seconds after the block time
// of this call.
type ChangeExpiryMsg struct {
	WillID   []byte
	Duration int64
}

func (ChangeExpiryMsg) Path() string {
	return pathChangeExpiryMsg
}

func (m *ChangeExpiryMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "WillID", orm.ValidateSequence(m.WillID))
	if m.Duration <= 0 {
		err = errors.AppendField(err, "Duration", errors.ErrInput.Newf("duration must be positive, got %d", m.Duration))
	}
	return err
}

// TransferOwnershipMsg hands the will over to a new owner.
type TransferOwnershipMsg struct {
	WillID   []byte
	NewOwner bequest.Address
}

func (TransferOwnershipMsg) Path() string {
	return pathTransferOwnerMsg
}

func (m *TransferOwnershipMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "WillID", orm.ValidateSequence(m.WillID))
	err = errors.AppendField(err, "NewOwner", m.NewOwner.Validate())
	return err
}

// RenounceOwnershipMsg leaves the will without an owner.
type RenounceOwnershipMsg struct {
	WillID []byte
}

func (RenounceOwnershipMsg) Path() string {
	return pathRenounceOwnerMsg
}

func (m *RenounceOwnershipMsg) Validate() error {
	return errors.Field("WillID", orm.ValidateSequence(m.WillID), "")
}

// DistributeMsg pays out an expired will. Anyone can send it.
type DistributeMsg struct {
	WillID []byte
}

func (DistributeMsg) Path() string {
	return pathDistributeMsg
}

func (m *DistributeMsg) Validate() error {
	return errors.Field("WillID", orm.ValidateSequence(m.WillID), "")
}

// validateAmount requires a non empty set of positive coins.
func validateAmount(cs coin.Coins) error {
	if err := cs.Validate(); err != nil {
		return err
	}
	if !cs.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	return nil
}
