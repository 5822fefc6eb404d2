/*
Package cash keeps the fungible balances of every address.

Balances are only changed through a Controller. Other extensions move coins
between wallets with the CoinMover interface, so a payment either moves in
full or fails without touching any wallet.
*/
package cash
