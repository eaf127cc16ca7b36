package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
)

const (
	pathInitializeVaultMsg     = "vault/initialize_vault"
	pathInitializeDepositMsg   = "vault/initialize_deposit"
	pathDepositMsg             = "vault/deposit"
	pathWithdrawMsg            = "vault/withdraw"
	pathUpdateConfigurationMsg = "vault/update_configuration"
)

var (
	_ custody.Msg = (*InitializeVaultMsg)(nil)
	_ custody.Msg = (*InitializeDepositMsg)(nil)
	_ custody.Msg = (*DepositMsg)(nil)
	_ custody.Msg = (*WithdrawMsg)(nil)
	_ custody.Msg = (*UpdateConfigurationMsg)(nil)
)

// InitializeVaultMsg creates the vault. Authority defaults to the main
// signer.
type InitializeVaultMsg struct {
	Metadata  *custody.Metadata
	Authority custody.Address
}

func (InitializeVaultMsg) Path() string {
	return pathInitializeVaultMsg
}

func (m *InitializeVaultMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.Authority) != 0 {
		errs = errors.AppendField(errs, "Authority", m.Authority.Validate())
	}
	return errs
}

func (m *InitializeVaultMsg) Marshal() ([]byte, error) {
	return marshalLedgerMsg(m.Metadata, m.Authority, 0)
}

func (m *InitializeVaultMsg) Unmarshal(raw []byte) error {
	meta, addr, _, err := unmarshalLedgerMsg(raw)
	*m = InitializeVaultMsg{Metadata: meta, Authority: addr}
	return err
}

// InitializeDepositMsg creates the deposit record of the owner. Owner
// defaults to the main signer.
type InitializeDepositMsg struct {
	Metadata *custody.Metadata
	Owner    custody.Address
}

func (InitializeDepositMsg) Path() string {
	return pathInitializeDepositMsg
}

func (m *InitializeDepositMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	}
	return errs
}

func (m *InitializeDepositMsg) Marshal() ([]byte, error) {
	return marshalLedgerMsg(m.Metadata, m.Owner, 0)
}

func (m *InitializeDepositMsg) Unmarshal(raw []byte) error {
	meta, addr, _, err := unmarshalLedgerMsg(raw)
	*m = InitializeDepositMsg{Metadata: meta, Owner: addr}
	return err
}

// DepositMsg moves funds of the depositor into the vault. Depositor defaults
// to the main signer.
type DepositMsg struct {
	Metadata  *custody.Metadata
	Depositor custody.Address
	Amount    uint64
}

func (DepositMsg) Path() string {
	return pathDepositMsg
}

func (m *DepositMsg) Validate() error {
	return validateTransfer(m.Metadata, m.Depositor)
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return marshalLedgerMsg(m.Metadata, m.Depositor, m.Amount)
}

func (m *DepositMsg) Unmarshal(raw []byte) error {
	meta, addr, amount, err := unmarshalLedgerMsg(raw)
	*m = DepositMsg{Metadata: meta, Depositor: addr, Amount: amount}
	return err
}

// WithdrawMsg moves funds from the vault back to the depositor. Depositor
// defaults to the main signer.
type WithdrawMsg struct {
	Metadata  *custody.Metadata
	Depositor custody.Address
	Amount    uint64
}

func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

func (m *WithdrawMsg) Validate() error {
	return validateTransfer(m.Metadata, m.Depositor)
}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return marshalLedgerMsg(m.Metadata, m.Depositor, m.Amount)
}

func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	meta, addr, amount, err := unmarshalLedgerMsg(raw)
	*m = WithdrawMsg{Metadata: meta, Depositor: addr, Amount: amount}
	return err
}

// validateTransfer places no bound on the amount. A zero transfer moves nothing
// and leaves both balances unchanged.
func validateTransfer(meta *custody.Metadata, depositor custody.Address) error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", meta.Validate())
	if len(depositor) != 0 {
		errs = errors.AppendField(errs, "Depositor", depositor.Validate())
	}
	return errs
}

func marshalLedgerMsg(meta *custody.Metadata, addr custody.Address, amount uint64) ([]byte, error) {
	rawMeta, err := codec.Nested(meta)
	if err != nil {
		return nil, err
	}
	return codec.Marshal(&ledgerMsgWire{Metadata: rawMeta, Address: addr, Amount: amount})
}

func unmarshalLedgerMsg(raw []byte) (*custody.Metadata, custody.Address, uint64, error) {
	var w ledgerMsgWire
	if err := codec.Unmarshal(raw, &w); err != nil {
		return nil, nil, 0, err
	}
	meta, err := unmarshalMetadata(w.Metadata)
	return meta, w.Address, w.Amount, err
}

func unmarshalMetadata(raw []byte) (*custody.Metadata, error) {
	if raw == nil {
		return nil, nil
	}
	var meta custody.Metadata
	if err := meta.Unmarshal(raw); err != nil {
		return nil, err
	}
	return &meta, nil
}

// UpdateConfigurationMsg patches the vault configuration. It must be signed
// by the configuration owner. Non zero fields of Patch replace the stored
// values. Clear names the fields reset to their zero value before the
// patch is applied.
type UpdateConfigurationMsg struct {
	Metadata *custody.Metadata
	Patch    *Configuration
	Clear    []string
}

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

// Validate checks the patch fields on their own. The rules binding several
// fields are checked on the updated configuration.
func (m *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Patch == nil {
		return errors.Append(errs, errors.Field("Patch", errors.ErrEmpty, "required"))
	}
	if len(m.Patch.Owner) != 0 {
		errs = errors.AppendField(errs, "Patch.Owner", m.Patch.Owner.Validate())
	}
	if len(m.Patch.Collector) != 0 {
		errs = errors.AppendField(errs, "Patch.Collector", m.Patch.Collector.Validate())
	}
	return errs
}

// ClearFields implements gconf.Clearer.
func (m *UpdateConfigurationMsg) ClearFields() []string {
	return m.Clear
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	meta, err := codec.Nested(m.Metadata)
	if err != nil {
		return nil, err
	}
	patch, err := codec.Nested(m.Patch)
	if err != nil {
		return nil, err
	}
	return codec.Marshal(&updateConfigurationMsgWire{Metadata: meta, Patch: patch, Clear: m.Clear})
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	var w updateConfigurationMsgWire
	if err := codec.Unmarshal(raw, &w); err != nil {
		return err
	}
	meta, err := unmarshalMetadata(w.Metadata)
	if err != nil {
		return err
	}
	*m = UpdateConfigurationMsg{Metadata: meta, Clear: w.Clear}
	if w.Patch != nil {
		m.Patch = &Configuration{}
		return m.Patch.Unmarshal(w.Patch)
	}
	return nil
}
