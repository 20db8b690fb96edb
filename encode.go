package primitives

import "fmt"

// EncodeTokens serializes a sequence of Tokens into a "0x"-prefixed ABI
// parameter blob following the Ethereum Contract ABI's head/tail layout:
// every static token is encoded inline in the head (one 32-byte slot for a
// scalar, its members' slots for a static FixedArray/Tuple, none for an
// empty one), every dynamic token contributes one 32-byte offset slot, and
// dynamic tokens additionally append their payload
// to a shared tail that follows the head in encounter order. Dynamic-ness
// is derived from the token tree itself (tokenIsDynamic), not from a
// separately supplied ParamType list — the byte layout a Token produces
// never depends on anything beyond its own shape.
func EncodeTokens(tokens []Token) (string, error) {
	body, err := encodeSequence(tokens)
	if err != nil {
		return "", err
	}
	return EncodeExactHex(body), nil
}

// tokenIsDynamic mirrors ParamType.IsDynamic at the value level: String,
// Bytes, and Array tokens are always dynamic; FixedArray and Tuple tokens
// are dynamic iff any child is.
func tokenIsDynamic(t Token) bool {
	switch t.kind {
	case KindString, KindBytes, KindArray:
		return true
	case KindFixedArray, KindTuple:
		for _, it := range t.items {
			if tokenIsDynamic(it) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// encodeSequence runs the two-pass head/tail algorithm over one region:
// reserve a head slot per token, fill static slots immediately, then walk
// the dynamic tokens in order, writing each one's resolved offset into its
// reserved slot and appending its encoded payload to the tail.
func encodeSequence(tokens []Token) ([]byte, error) {
	heads := make([][]byte, len(tokens))
	var dynIdx []int
	for i, t := range tokens {
		if tokenIsDynamic(t) {
			heads[i] = make([]byte, 32)
			dynIdx = append(dynIdx, i)
			continue
		}
		enc, err := encodeStatic(t)
		if err != nil {
			return nil, err
		}
		heads[i] = enc
	}

	headLen := 0
	for _, h := range heads {
		headLen += len(h)
	}

	tails := make([][]byte, len(tokens))
	offset := headLen
	for _, i := range dynIdx {
		payload, err := encodeDynamicPayload(tokens[i])
		if err != nil {
			return nil, err
		}
		writeOffset(heads[i], offset)
		tails[i] = payload
		offset += len(payload)
	}

	out := make([]byte, 0, offset)
	for _, h := range heads {
		out = append(out, h...)
	}
	for _, i := range dynIdx {
		out = append(out, tails[i]...)
	}
	return out, nil
}

// encodeStatic serializes a token known to be static into its one 32-byte
// head slot (or, for a static FixedArray/Tuple, its inline run of slots).
func encodeStatic(t Token) ([]byte, error) {
	switch t.kind {
	case KindInt, KindUint:
		word := t.word
		return word[:], nil
	case KindBool:
		slot := make([]byte, 32)
		if t.b {
			slot[31] = 1
		}
		return slot, nil
	case KindAddress:
		slot := make([]byte, 32)
		copy(slot[12:], t.addr[:])
		return slot, nil
	case KindFixedBytes:
		if len(t.data) > 32 {
			return nil, fmt.Errorf("fixed bytes token of %d bytes exceeds the 32-byte slot", len(t.data))
		}
		return PadRight(t.data, 32), nil
	case KindFixedArray, KindTuple:
		out := make([]byte, 0, 32*len(t.items))
		for _, it := range t.items {
			enc, err := encodeStatic(it)
			if err != nil {
				return nil, err
			}
			out = append(out, enc...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("encode: token kind %s has no static encoding", t.kind)
	}
}

// encodeDynamicPayload serializes a dynamic token's tail contribution: the
// bytes that live at the offset its head slot points to.
func encodeDynamicPayload(t Token) ([]byte, error) {
	switch t.kind {
	case KindString:
		return encodeLenPrefixed([]byte(t.str)), nil
	case KindBytes:
		return encodeLenPrefixed(t.data), nil
	case KindArray:
		count := make([]byte, 32)
		writeOffset(count, len(t.items))
		body, err := encodeSequence(t.items)
		if err != nil {
			return nil, err
		}
		return append(count, body...), nil
	case KindFixedArray, KindTuple:
		// A dynamic FixedArray/Tuple has no length prefix of its own — its
		// payload is simply its members' own head/tail region.
		return encodeSequence(t.items)
	default:
		return nil, fmt.Errorf("encode: token kind %s has no dynamic encoding", t.kind)
	}
}

// encodeLenPrefixed renders a String/Bytes payload as its 32-byte length
// slot followed by the content, right-padded to a word boundary.
func encodeLenPrefixed(b []byte) []byte {
	lenSlot := make([]byte, 32)
	writeOffset(lenSlot, len(b))
	padded := PadRight(b, ceilToWord(len(b)))
	return append(lenSlot, padded...)
}

// writeOffset writes v into the low 8 bytes of a 32-byte slot, big-endian.
// ABI offsets and lengths never approach the range where this would
// truncate in practice.
func writeOffset(slot []byte, v int) {
	uv := uint64(v)
	for i := 0; i < 8; i++ {
		slot[31-i] = byte(uv >> (8 * i))
	}
}
