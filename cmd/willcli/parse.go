package main

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/coin"
	"github.com/iov-one/bequest/errors"
)

// parseWillID accepts the 16 characters hex form printed by this tool or a
// decimal sequence number.
func parseWillID(s string) ([]byte, error) {
	if len(s) == 16 {
		if id, err := hex.DecodeString(s); err == nil {
			return id, nil
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return nil, errors.Wrapf(errors.ErrInput, "invalid will id %q", s)
	}
	id := make([]byte, 8)
	binary.BigEndian.PutUint64(id, n)
	return id, nil
}

// parseCoin accepts "<amount> <ticker>" or a bare amount of the default
// ticker.
func parseCoin(s, defaultTicker string) (*coin.Coin, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return coin.NewCoinp(n, defaultTicker), nil
	}
	c, err := coin.ParseHumanFormat(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func parseCoins(args []string, defaultTicker string) ([]*coin.Coin, error) {
	var cs coin.Coins
	for _, a := range args {
		c, err := parseCoin(a, defaultTicker)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	normalized, err := coin.NormalizeCoins(cs)
	if err != nil {
		return nil, err
	}
	return normalized, nil
}

// parseShare reads an "<address or key>=<percent>" pair.
func parseShare(home, s string) (bequest.Address, int32, error) {
	i := strings.LastIndex(s, "=")
	if i < 1 {
		return nil, 0, errors.Wrapf(errors.ErrInput, "share %q must be <address>=<percent>", s)
	}
	addr, err := resolveAddress(home, s[:i])
	if err != nil {
		return nil, 0, err
	}
	p, err := strconv.ParseInt(s[i+1:], 10, 32)
	if err != nil {
		return nil, 0, errors.Wrapf(errors.ErrInput, "percent %q", s[i+1:])
	}
	return addr, int32(p), nil
}
