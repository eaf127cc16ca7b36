/*
Package crypto provides the ed25519 keys used to sign transactions.

A public key is represented as a custody.Condition "sigs/ed25519/<pubkey>",
its Address is used as the account identity everywhere else.
*/
package crypto
