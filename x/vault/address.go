package vault

import (
	"github.com/iov-one/custody"
)

const (
	conditionExt  = "vault"
	conditionType = "seed"
)

var (
	vaultSeed   = []byte("vault")
	depositSeed = []byte("deposit")
)

// VaultCondition returns the condition that the vault record and its custody
// wallet are bound to. It is the same for every chain.
func VaultCondition() custody.Condition {
	return custody.NewCondition(conditionExt, conditionType, vaultSeed)
}

// VaultAddress returns the address of the vault record. The same address
// holds the funds in custody.
func VaultAddress() custody.Address {
	return VaultCondition().Address()
}

// DepositCondition returns the condition of the deposit record owned by
// given address.
func DepositCondition(owner custody.Address) custody.Condition {
	seed := make([]byte, 0, len(depositSeed)+len(owner))
	seed = append(seed, depositSeed...)
	seed = append(seed, owner...)
	return custody.NewCondition(conditionExt, conditionType, seed)
}

// DepositAddress returns the address of the deposit record owned by given
// address.
func DepositAddress(owner custody.Address) custody.Address {
	return DepositCondition(owner).Address()
}

// IsVaultAddress returns true if given address is the vault address.
func IsVaultAddress(addr custody.Address) bool {
	return VaultAddress().Equals(addr)
}

// IsDepositAddress returns true if given address was derived for the
// deposit record of the owner.
func IsDepositAddress(owner, addr custody.Address) bool {
	return DepositAddress(owner).Equals(addr)
}
