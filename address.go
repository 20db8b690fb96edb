package primitives

// Address represents the Address primitive: a fixed 20-byte value,
// structurally the FixedBytes family's one named member.
type Address [20]byte

// ZeroAddress is the zero address.
var ZeroAddress = Address{}

// AddressFromHex parses a "0x"-prefixed, exactly-40-digit hex string into
// an Address.
func AddressFromHex(hexStr string) (Address, error) {
	raw, err := DecodeExactHex(hexStr, 20)
	if err != nil {
		return Address{}, err
	}
	var addr Address
	copy(addr[:], raw)
	return addr, nil
}

// AddressFromBytes builds an Address from a byte slice of exactly 20 bytes.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != 20 {
		return Address{}, &IncorrectLenError{Len: len(b), Expected: 20}
	}
	var addr Address
	copy(addr[:], b)
	return addr, nil
}

// Bytes returns the address as a byte slice.
func (a Address) Bytes() []byte {
	out := make([]byte, 20)
	copy(out, a[:])
	return out
}

// Hex renders the address as exact (non-compact) lowercase hex, its
// conventional display form.
func (a Address) Hex() string {
	return EncodeExactHex(a[:])
}

// IsZero reports whether the address is the zero address.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Equal reports whether two addresses hold the same bytes.
func (a Address) Equal(other Address) bool {
	return a == other
}

// ToToken wraps the address in an Address token; the encoder writes it as
// a 32-byte ABI slot of 12 zero bytes followed by the 20 address bytes.
func (a Address) ToToken() Token {
	return TokenAddress(a)
}

// AddressFromToken narrows an Address token back to an Address.
func AddressFromToken(tok Token) (Address, error) {
	addr, ok := tok.Address()
	if !ok {
		return Address{}, ErrInvalidAddress
	}
	return addr, nil
}
