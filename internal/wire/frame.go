// Package wire implements the fixed-layout encoding used between the
// matching server and its clients: the 8-byte trader-id handshake and
// the order frame exchanged in both directions after it.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
)

// Side is the BUY/SELL flag carried on the wire. 0=BUY, 1=SELL.
type Side int32

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Sell {
		return "SELL"
	}
	return "BUY"
}

const (
	stockLen  = 8
	traderLen = 64

	// FrameSize is the on-the-wire size of an order frame: stock[8] +
	// trader[64] + trader_id/quantity/balance/side as int32 each.
	// See SPEC_FULL.md §9 decision 5 for why this is 88, not 84.
	FrameSize = stockLen + traderLen + 4 + 4 + 4 + 4

	// HandshakeSize is the size of the post-connect trader-id handshake.
	HandshakeSize = 8
)

// order is the byte order of every int32 field in a frame. Client and
// server both use this package, so they agree on little-endian.
var order = binary.LittleEndian

// Frame is the decoded form of an order frame.
type Frame struct {
	Stock    string
	Trader   string
	TraderID int32
	Quantity int32
	Balance  int32
	Side     Side
}

// ErrProtocol is returned by Decode when the bytes cannot represent a
// valid frame: an unknown side, a negative quantity/balance, or a
// string field that never reaches a NUL terminator within its bound.
var ErrProtocol = errors.New("wire: protocol error")

// Encode writes f into an FrameSize-length buffer.
func Encode(f Frame) ([]byte, error) {
	buf := make([]byte, FrameSize)
	if err := putString(buf[0:stockLen], f.Stock); err != nil {
		return nil, fmt.Errorf("wire: encode stock: %w", err)
	}
	if err := putString(buf[stockLen:stockLen+traderLen], f.Trader); err != nil {
		return nil, fmt.Errorf("wire: encode trader: %w", err)
	}
	off := stockLen + traderLen
	order.PutUint32(buf[off:], uint32(f.TraderID))
	order.PutUint32(buf[off+4:], uint32(f.Quantity))
	order.PutUint32(buf[off+8:], uint32(f.Balance))
	order.PutUint32(buf[off+12:], uint32(f.Side))
	return buf, nil
}

// Decode parses an FrameSize-length buffer into a Frame. Unknown side
// values, negative quantity/balance, or a string field without a NUL
// terminator are protocol errors.
func Decode(buf []byte) (Frame, error) {
	if len(buf) != FrameSize {
		return Frame{}, fmt.Errorf("%w: want %d bytes, got %d", ErrProtocol, FrameSize, len(buf))
	}
	stock, err := getString(buf[0:stockLen])
	if err != nil {
		return Frame{}, fmt.Errorf("wire: decode stock: %w", err)
	}
	trader, err := getString(buf[stockLen : stockLen+traderLen])
	if err != nil {
		return Frame{}, fmt.Errorf("wire: decode trader: %w", err)
	}
	off := stockLen + traderLen
	f := Frame{
		Stock:    stock,
		Trader:   trader,
		TraderID: int32(order.Uint32(buf[off:])),
		Quantity: int32(order.Uint32(buf[off+4:])),
		Balance:  int32(order.Uint32(buf[off+8:])),
		Side:     Side(order.Uint32(buf[off+12:])),
	}
	if f.Quantity < 0 || f.Balance < 0 {
		return Frame{}, fmt.Errorf("%w: negative quantity/balance", ErrProtocol)
	}
	if f.Side != Buy && f.Side != Sell {
		return Frame{}, fmt.Errorf("%w: unknown side %d", ErrProtocol, int32(f.Side))
	}
	return f, nil
}

func putString(dst []byte, s string) error {
	if len(s) > len(dst)-1 {
		return fmt.Errorf("%w: %q exceeds %d bytes", ErrProtocol, s, len(dst)-1)
	}
	clear(dst)
	copy(dst, s)
	return nil
}

func getString(src []byte) (string, error) {
	i := bytes.IndexByte(src, 0)
	if i < 0 {
		return "", fmt.Errorf("%w: field is not NUL-terminated", ErrProtocol)
	}
	return string(src[:i]), nil
}

// EncodeHandshake renders traderID as a NUL-padded decimal ASCII
// handshake of HandshakeSize bytes.
func EncodeHandshake(traderID int32) []byte {
	buf := make([]byte, HandshakeSize)
	s := strconv.Itoa(int(traderID))
	copy(buf, s)
	return buf
}

// DecodeHandshake parses a HandshakeSize-length NUL-padded decimal
// buffer into a trader id. Unlike Decode, a missing NUL terminator is
// tolerated: the whole buffer is then taken as the ASCII field. Every
// byte before the first NUL (or the end of the buffer) must be part of
// a base-10 integer; any other character is a protocol error.
func DecodeHandshake(buf []byte) (int32, error) {
	if len(buf) != HandshakeSize {
		return 0, fmt.Errorf("%w: want %d handshake bytes, got %d", ErrProtocol, HandshakeSize, len(buf))
	}
	i := bytes.IndexByte(buf, 0)
	if i < 0 {
		i = len(buf)
	}
	n, err := strconv.ParseInt(string(buf[:i]), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad trader id handshake: %v", ErrProtocol, err)
	}
	return int32(n), nil
}
