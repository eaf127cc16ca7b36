/*
Package cash defines a simple implementation of sending a single asset
between wallets.

There is no logic in the asset, except that the balance of any wallet may
not go below zero and may not overflow. Thus, this implementation is
referred to as cash. Simple and safe.

Wallets are keyed by address. Any address can receive funds, including
derived addresses that no private key controls. Only the extension that
derived such an address can move funds out of it, by calling the
Controller directly.
*/
package cash
