package primitives

import "fmt"

// ParamType is a recursive ABI type descriptor mirroring Token's shape.
// Values are immutable after construction; every constructor validates
// its bounds so a hand-built ParamType can never carry an out-of-range
// width.
type ParamType struct {
	kind  Kind
	bits  int // Int/Uint bit width
	size  int // FixedBytes byte count, or FixedArray length
	elem  *ParamType
	elems []ParamType
}

// Bool, AddressType, String, and Bytes are the scalar variants with no
// parameters — exposed as functions (not package vars) so every
// ParamType, including these, is produced through a constructor.
func Bool() ParamType    { return ParamType{kind: KindBool} }
func AddressType() ParamType { return ParamType{kind: KindAddress} }
func String() ParamType  { return ParamType{kind: KindString} }
func Bytes() ParamType   { return ParamType{kind: KindBytes} }

// NewIntType builds an Int(bits) descriptor, validating 8 ≤ bits ≤ 256
// and bits % 8 == 0.
func NewIntType(bits int) (ParamType, error) {
	if err := validateIntBits(bits); err != nil {
		return ParamType{}, err
	}
	return ParamType{kind: KindInt, bits: bits}, nil
}

// NewUintType builds a Uint(bits) descriptor with the same bounds as NewIntType.
func NewUintType(bits int) (ParamType, error) {
	if err := validateIntBits(bits); err != nil {
		return ParamType{}, err
	}
	return ParamType{kind: KindUint, bits: bits}, nil
}

// NewFixedBytesType builds a FixedBytes(n) descriptor, validating 1 ≤ n ≤ 32.
func NewFixedBytesType(n int) (ParamType, error) {
	if n < 1 || n > 32 {
		return ParamType{}, fmt.Errorf("invalid fixed bytes size %d: must be in [1, 32]", n)
	}
	return ParamType{kind: KindFixedBytes, size: n}, nil
}

// NewArrayType builds a dynamic-length Array(inner) descriptor.
func NewArrayType(inner ParamType) ParamType {
	elem := inner
	return ParamType{kind: KindArray, elem: &elem}
}

// NewFixedArrayType builds a FixedArray(inner, n) descriptor, n ≥ 0.
func NewFixedArrayType(inner ParamType, n int) (ParamType, error) {
	if n < 0 {
		return ParamType{}, fmt.Errorf("invalid fixed array length %d: must be ≥ 0", n)
	}
	elem := inner
	return ParamType{kind: KindFixedArray, elem: &elem, size: n}, nil
}

// NewTupleType builds a Tuple(elements) descriptor, in order.
func NewTupleType(elems []ParamType) ParamType {
	return ParamType{kind: KindTuple, elems: append([]ParamType(nil), elems...)}
}

// Kind reports the descriptor's variant.
func (p ParamType) Kind() Kind { return p.kind }

// Bits returns the bit width of an Int/Uint descriptor (0 otherwise).
func (p ParamType) Bits() int { return p.bits }

// Size returns the byte count of a FixedBytes descriptor, or the element
// count of a FixedArray descriptor (0 otherwise).
func (p ParamType) Size() int { return p.size }

// Elem returns the element descriptor of an Array/FixedArray descriptor.
func (p ParamType) Elem() (ParamType, bool) {
	if p.elem == nil {
		return ParamType{}, false
	}
	return *p.elem, true
}

// Elems returns the member descriptors of a Tuple descriptor.
func (p ParamType) Elems() ([]ParamType, bool) {
	if p.kind != KindTuple {
		return nil, false
	}
	return append([]ParamType(nil), p.elems...), true
}

// IsDynamic reports whether a value of this type needs an offset slot in
// the ABI head rather than being encoded inline: String, Bytes, and Array
// are always dynamic; FixedArray and Tuple are dynamic iff any element
// is; everything else, including an empty FixedArray, is static.
func (p ParamType) IsDynamic() bool {
	switch p.kind {
	case KindString, KindBytes, KindArray:
		return true
	case KindFixedArray:
		return p.size > 0 && p.elem.IsDynamic()
	case KindTuple:
		for _, e := range p.elems {
			if e.IsDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// headWords returns the number of 32-byte slots a static descriptor
// occupies in the head. It is undefined (and never called) for dynamic
// descriptors, which always occupy exactly one offset slot.
func (p ParamType) headWords() int {
	switch p.kind {
	case KindFixedArray:
		return p.size * p.elem.headWords()
	case KindTuple:
		total := 0
		for _, e := range p.elems {
			total += e.headWords()
		}
		return total
	default:
		return 1
	}
}

// String renders the descriptor's canonical textual signature, the
// inverse of ParseType for every variant ParseType can produce (tuples
// have no textual form).
func (p ParamType) String() string {
	switch p.kind {
	case KindInt:
		return fmt.Sprintf("int%d", p.bits)
	case KindUint:
		return fmt.Sprintf("uint%d", p.bits)
	case KindBool:
		return "bool"
	case KindAddress:
		return "address"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindFixedBytes:
		return fmt.Sprintf("bytes%d", p.size)
	case KindArray:
		return p.elem.String() + "[]"
	case KindFixedArray:
		return fmt.Sprintf("%s[%d]", p.elem.String(), p.size)
	case KindTuple:
		s := "("
		for i, e := range p.elems {
			if i > 0 {
				s += ","
			}
			s += e.String()
		}
		return s + ")"
	default:
		return "?"
	}
}
