/*
Package nftescrow defines the interfaces shared by every part of the escrow
application: storage, transactions, handlers and decorators. It also contains
helpers to work with context, addresses, time and abci results.

Extensions (x/...) build on these interfaces. The core escrow logic lives in
x/escrow, the application wiring in app and cmd/escrowd.
*/
package nftescrow
