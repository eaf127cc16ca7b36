/*
Package vault implements a custodial balance ledger.

A single vault record tracks the total amount held in custody. Every
depositor owns a deposit record that tracks the amount the depositor may
withdraw. Funds are kept by the cash extension in a wallet at the vault's
derived address, which no private key controls.

Records are stored at addresses derived from a fixed tag (and for deposits
the owner's address) and cannot be created twice. The vault total is always
equal to the sum of all deposit balances. Every operation is executed as a
single database transaction: on failure, neither records nor wallets change.
*/
package vault
