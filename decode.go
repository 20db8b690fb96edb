package primitives

import (
	"math/big"
	"unicode/utf8"
)

// DecodeTokens is the inverse of EncodeTokens, guided by the ParamType each
// token must conform to. It walks the ABI's head/tail layout one region at
// a time. Each region's decoder passes through four states:
//
//	ReadingHead    — advance a cursor across the region's fixed run of
//	                 32-byte slots, decoding static values immediately and
//	                 remembering the head position of every dynamic slot.
//	SeekingDynamic — for each remembered slot, read its offset word and
//	                 resolve it against the region's origin to find where
//	                 that token's payload actually lives.
//	ReadingPayload — decode the payload at the resolved position: a
//	                 length-prefixed run of bytes for String/Bytes, or a
//	                 nested region (with a new origin) for Array/FixedArray/
//	                 Tuple.
//	Done           — every token in the sequence has a value.
//
// All positions are character offsets into the hex body (the input string
// with its "0x" prefix already stripped); hex-layer errors raised while
// reading a region-relative sub-slice carry a position relative to that
// sub-slice and are shifted back to body-relative by the amount the slice
// was taken at. DecodeTokens performs one further shift by 2 at the end to
// re-express the final error relative to the original, prefixed string.
func DecodeTokens(hexStr string, types []ParamType) ([]Token, error) {
	body, err := stripPrefix(hexStr)
	if err != nil {
		return nil, err
	}
	tokens, _, err := decodeSequence(body, 0, 0, types)
	if err != nil {
		return nil, shiftHexError(err, 2)
	}
	return tokens, nil
}

// decodeSequence decodes one head/tail region: types starting at cursor,
// with dynamic offsets resolved against regionOrigin. It returns the
// decoded tokens and the cursor position immediately past the region's
// head (the ReadingHead -> SeekingDynamic boundary).
func decodeSequence(body string, regionOrigin, cursor int, types []ParamType) ([]Token, int, error) {
	tokens := make([]Token, len(types))

	type pending struct {
		idx     int
		headPos int
	}
	var pendings []pending

	pos := cursor
	for i, ty := range types {
		if ty.IsDynamic() {
			pendings = append(pendings, pending{idx: i, headPos: pos})
			pos += 64
			continue
		}
		tok, newPos, err := decodeStatic(body, pos, ty)
		if err != nil {
			return nil, 0, err
		}
		tokens[i] = tok
		pos = newPos
	}
	headEnd := pos

	for _, p := range pendings {
		offset, err := readOffset(body, p.headPos)
		if err != nil {
			return nil, 0, err
		}
		payloadPos := regionOrigin + offset*2
		tok, err := decodePayload(body, payloadPos, types[p.idx])
		if err != nil {
			return nil, 0, err
		}
		tokens[p.idx] = tok
	}

	return tokens, headEnd, nil
}

// decodeStatic reads one static token at pos and returns the cursor
// position just past it.
func decodeStatic(body string, pos int, ty ParamType) (Token, int, error) {
	switch ty.Kind() {
	case KindInt:
		slot, err := readSlot(body, pos)
		if err != nil {
			return Token{}, 0, err
		}
		var w [32]byte
		copy(w[:], slot)
		return TokenIntWord(w), pos + 64, nil
	case KindUint:
		slot, err := readSlot(body, pos)
		if err != nil {
			return Token{}, 0, err
		}
		var w [32]byte
		copy(w[:], slot)
		return TokenUintWord(w), pos + 64, nil
	case KindBool:
		b, err := decodeBoolSlot(body, pos)
		if err != nil {
			return Token{}, 0, err
		}
		return TokenBool(b), pos + 64, nil
	case KindAddress:
		slot, err := readSlot(body, pos)
		if err != nil {
			return Token{}, 0, err
		}
		var a [20]byte
		copy(a[:], slot[12:])
		return TokenAddress(a), pos + 64, nil
	case KindFixedBytes:
		slot, err := readSlot(body, pos)
		if err != nil {
			return Token{}, 0, err
		}
		return TokenFixedBytes(slot[:ty.Size()]), pos + 64, nil
	case KindFixedArray:
		inner, _ := ty.Elem()
		items := repeatType(inner, ty.Size())
		subtokens, newPos, err := decodeSequence(body, pos, pos, items)
		if err != nil {
			return Token{}, 0, err
		}
		return TokenFixedArray(subtokens), newPos, nil
	case KindTuple:
		elems, _ := ty.Elems()
		subtokens, newPos, err := decodeSequence(body, pos, pos, elems)
		if err != nil {
			return Token{}, 0, err
		}
		return TokenTuple(subtokens), newPos, nil
	default:
		return Token{}, 0, &ErrDecodeKind{Kind: ty.Kind()}
	}
}

// decodePayload decodes a dynamic token's payload, found at pos within the
// current region.
func decodePayload(body string, pos int, ty ParamType) (Token, error) {
	switch ty.Kind() {
	case KindString:
		raw, err := readLenPrefixed(body, pos)
		if err != nil {
			return Token{}, err
		}
		if !utf8.Valid(raw) {
			validUpTo, invalidSize := utf8ValidationError(raw)
			return Token{}, &InvalidUtf8Error{ValidUpTo: pos + 64 + validUpTo*2, InvalidSize: invalidSize}
		}
		return TokenString(string(raw)), nil
	case KindBytes:
		raw, err := readLenPrefixed(body, pos)
		if err != nil {
			return Token{}, err
		}
		return TokenBytes(raw), nil
	case KindArray:
		count, err := readOffset(body, pos)
		if err != nil {
			return Token{}, err
		}
		inner, _ := ty.Elem()
		items := repeatType(inner, count)
		elemsOrigin := pos + 64
		subtokens, _, err := decodeSequence(body, elemsOrigin, elemsOrigin, items)
		if err != nil {
			return Token{}, err
		}
		return TokenArray(subtokens), nil
	case KindFixedArray:
		inner, _ := ty.Elem()
		items := repeatType(inner, ty.Size())
		subtokens, _, err := decodeSequence(body, pos, pos, items)
		if err != nil {
			return Token{}, err
		}
		return TokenFixedArray(subtokens), nil
	case KindTuple:
		elems, _ := ty.Elems()
		subtokens, _, err := decodeSequence(body, pos, pos, elems)
		if err != nil {
			return Token{}, err
		}
		return TokenTuple(subtokens), nil
	default:
		return Token{}, &ErrDecodeKind{Kind: ty.Kind()}
	}
}

func repeatType(ty ParamType, n int) []ParamType {
	out := make([]ParamType, n)
	for i := range out {
		out[i] = ty
	}
	return out
}

// readSlot reads a 32-byte ABI slot at a body-relative character position,
// re-indexing any hex-layer error (raised relative to the extracted
// sub-slice) back to body-relative. A seek that would read past the end of
// body — the signature of an out-of-range dynamic offset — is rejected
// before the slice is even taken.
func readSlot(body string, pos int) ([]byte, error) {
	if pos+64 > len(body) {
		return nil, &LenTooLongError{Len: pos + 64, Max: len(body)}
	}
	b, err := decodeExact(body[pos:pos+64], 32)
	if err != nil {
		return nil, shiftHexError(err, pos)
	}
	return b, nil
}

// readLenPrefixed reads a length word followed by that many raw bytes,
// both at body-relative position pos.
func readLenPrefixed(body string, pos int) ([]byte, error) {
	length, err := readOffset(body, pos)
	if err != nil {
		return nil, err
	}
	start := pos + 64
	need := length * 2
	if start+need > len(body) {
		return nil, &LenTooLongError{Len: start + need, Max: len(body)}
	}
	b, err := decodeExact(body[start:start+need], length)
	if err != nil {
		return nil, shiftHexError(err, start)
	}
	return b, nil
}

// readOffset reads a 32-byte slot at pos and interprets it as a big-endian
// unsigned integer small enough to use as a byte count or offset.
func readOffset(body string, pos int) (int, error) {
	slot, err := readSlot(body, pos)
	if err != nil {
		return 0, err
	}
	bi := new(big.Int).SetBytes(slot)
	if !bi.IsInt64() {
		return 0, ErrOffsetOutOfRange
	}
	v := bi.Int64()
	if v < 0 {
		return 0, ErrOffsetOutOfRange
	}
	return int(v), nil
}

// decodeBoolSlot reads a 32-byte ABI slot at pos enforcing the strict
// boolean encoding: the first 31 bytes must be zero and the last must be
// 0x00 or 0x01.
func decodeBoolSlot(body string, pos int) (bool, error) {
	sub := sliceFrom(body, pos, 64)
	if len(sub) != 64 {
		return false, shiftHexError(&IncorrectLenError{Len: len(sub), Expected: 64}, pos)
	}
	if err := checkHexDigits(sub); err != nil {
		return false, shiftHexError(err, pos)
	}
	for i := 0; i < 62; i++ {
		if sub[i] != '0' {
			return false, &UnexpectedCharError{Char: sub[i], Index: pos + i, Expected: []byte{'0'}}
		}
	}
	if sub[62] != '0' {
		return false, &UnexpectedCharError{Char: sub[62], Index: pos + 62, Expected: []byte{'0'}}
	}
	switch sub[63] {
	case '0':
		return false, nil
	case '1':
		return true, nil
	default:
		return false, &UnexpectedCharError{Char: sub[63], Index: pos + 63, Expected: []byte{'0', '1'}}
	}
}

// sliceFrom returns the substring of body starting at the character
// position pos and running up to n characters, truncated (never panicking)
// when pos or pos+n run past the end of body.
func sliceFrom(body string, pos, n int) string {
	if pos >= len(body) || n <= 0 {
		return ""
	}
	end := pos + n
	if end > len(body) {
		end = len(body)
	}
	return body[pos:end]
}

// utf8ValidationError locates the first invalid byte in raw, distinguishing
// a truncated trailing sequence (InvalidSize nil) from a genuinely invalid
// one (InvalidSize pointing at a 1-byte offender — Go's decoder never
// reports a wider invalid run).
func utf8ValidationError(raw []byte) (validUpTo int, invalidSize *int) {
	i := 0
	for i < len(raw) {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size <= 1 {
			if isIncompleteAtEnd(raw[i:]) {
				return i, nil
			}
			one := 1
			return i, &one
		}
		i += size
	}
	return i, nil
}

// isIncompleteAtEnd reports whether rem is a valid-but-short prefix of a
// multi-byte rune that simply ran out of input.
func isIncompleteAtEnd(rem []byte) bool {
	b := rem[0]
	var want int
	switch {
	case b&0xE0 == 0xC0:
		want = 2
	case b&0xF0 == 0xE0:
		want = 3
	case b&0xF8 == 0xF0:
		want = 4
	default:
		return false
	}
	if len(rem) >= want {
		return false
	}
	for _, c := range rem[1:] {
		if c&0xC0 != 0x80 {
			return false
		}
	}
	return true
}
