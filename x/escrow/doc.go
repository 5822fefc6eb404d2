/*
Package escrow implements an escrow for a single non-fungible asset that is
exchanged for a fixed price paid in the configured denomination.

An escrow is created when an asset collection notifies this module that an
asset was deposited (ReceiveNftMsg). The notification payload carries a
create_escrow directive naming the collection, the price and the only buyer
allowed to complete the exchange. Each escrow gets the next identifier from
the module configuration, counting from zero.

While no funds are recorded the seller may cancel the escrow
(CancelEscrowMsg) and get the asset back. The buyer settles the escrow by
attaching at least the price (SendFundsMsg). The payment is forwarded to the
seller and the asset is released to the buyer.

This package never moves assets itself. Cancellation and settlement return a
TransferNftMsg in the result data that the asset collection must execute.
*/
package escrow
