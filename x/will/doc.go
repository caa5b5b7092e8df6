/*
Package will implements a time locked will.

A will holds coins on behalf of a single owner. The owner configures who
inherits the funds, either as a set of addresses splitting the balance
equally or as a table of percent shares, and keeps the will alive by
resetting its expiry deadline. Once the deadline passes anyone can trigger
the distribution. The distribution pays every beneficiary exactly once and
moves the will into the terminal claimed state. Amounts that cannot be
split evenly remain on the will account.
*/
package will
