/*
Package cash keeps the coin balances of all accounts and is the only place
where value moves between them.

There is no logic in the coins, except that the balance of any coin may not
go below zero. A will account is an ordinary wallet whose address is derived
from the will condition, so custody and payout both go through MoveCoins.
*/
package cash
