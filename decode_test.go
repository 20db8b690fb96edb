package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStaticPair(t *testing.T) {
	input := "0x" +
		"0000000000000000000000000000000000000000000000000000000000000012" +
		"0000000000000000000000000000000000000000000000000000000000000001"
	types := []ParamType{mustUintType(t, 8), Bool()}
	tokens, err := DecodeTokens(input, types)
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	w, ok := tokens[0].Word()
	require.True(t, ok)
	assert.Equal(t, byte(0x12), w[31])

	b, ok := tokens[1].Bool()
	require.True(t, ok)
	assert.True(t, b)
}

func TestDecodeDaveExample(t *testing.T) {
	input := "0x" +
		"0000000000000000000000000000000000000000000000000000000000000060" +
		"0000000000000000000000000000000000000000000000000000000000000001" +
		"00000000000000000000000000000000000000000000000000000000000000a0" +
		"0000000000000000000000000000000000000000000000000000000000000004" +
		"6461766500000000000000000000000000000000000000000000000000000000" +
		"0000000000000000000000000000000000000000000000000000000000000003" +
		"0000000000000000000000000000000000000000000000000000000000000001" +
		"0000000000000000000000000000000000000000000000000000000000000002" +
		"0000000000000000000000000000000000000000000000000000000000000003"

	types := []ParamType{Bytes(), Bool(), NewArrayType(mustUintType(t, 256))}
	tokens, err := DecodeTokens(input, types)
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	raw, ok := tokens[0].Bytes()
	require.True(t, ok)
	assert.Equal(t, "dave", string(raw))

	b, ok := tokens[1].Bool()
	require.True(t, ok)
	assert.True(t, b)

	items, ok := tokens[2].Items()
	require.True(t, ok)
	require.Len(t, items, 3)
	for i, item := range items {
		w, ok := item.Word()
		require.True(t, ok)
		assert.Equal(t, byte(i+1), w[31])
	}
}

func TestDecodeNestedFixedArrayOfFixedBytes(t *testing.T) {
	hexStr, err := EncodeTokens([]Token{
		TokenFixedArray([]Token{
			TokenFixedBytes([]byte{1, 2, 3}),
			TokenFixedBytes([]byte{4, 5, 6}),
		}),
	})
	require.NoError(t, err)

	inner, err := NewFixedBytesType(3)
	require.NoError(t, err)
	fixedArr, err := NewFixedArrayType(inner, 2)
	require.NoError(t, err)

	tokens, err := DecodeTokens(hexStr, []ParamType{fixedArr})
	require.NoError(t, err)
	items, ok := tokens[0].Items()
	require.True(t, ok)
	require.Len(t, items, 2)
	b0, _ := items[0].Bytes()
	assert.Equal(t, []byte{1, 2, 3}, b0)
}

func TestDecodeTruncatedInputIncorrectLen(t *testing.T) {
	// A single 32-byte slot is not enough data for two static parameters.
	input := "0x0000000000000000000000000000000000000000000000000000000000000012"
	_, err := DecodeTokens(input, []ParamType{mustUintType(t, 8), Bool()})
	require.Error(t, err)
	var lenErr *IncorrectLenError
	require.ErrorAs(t, err, &lenErr)
	assert.Equal(t, 64, lenErr.Expected)
}

func TestDecodeMalformedBoolSlot(t *testing.T) {
	input := "0x" + "0000000000000000000000000000000000000000000000000000000000000002"
	_, err := DecodeTokens(input, []ParamType{Bool()})
	require.Error(t, err)
	var unexpected *UnexpectedCharError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, byte('2'), unexpected.Char)
	assert.Equal(t, []byte{'0', '1'}, unexpected.Expected)
	assert.Equal(t, 65, unexpected.Index) // slot char 63, body pos 63, +2 for "0x"
}

func TestDecodeInvalidUtf8String(t *testing.T) {
	// length=1, payload byte 0xff is not valid UTF-8 on its own.
	input := "0x" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"0000000000000000000000000000000000000000000000000000000000000001" +
		"ff00000000000000000000000000000000000000000000000000000000000000"
	_, err := DecodeTokens(input, []ParamType{String()})
	require.Error(t, err)
	var utfErr *InvalidUtf8Error
	require.ErrorAs(t, err, &utfErr)
	// "0x" (2) + offset slot (64) + length slot (64) + 0 valid bytes in.
	assert.Equal(t, 130, utfErr.ValidUpTo)
	require.NotNil(t, utfErr.InvalidSize)
	assert.Equal(t, 1, *utfErr.InvalidSize)
}

func TestDecodeOffsetOutOfRangeIsLenTooLong(t *testing.T) {
	// The offset slot names a payload position far past the end of the
	// input — this must be caught before any truncated read is attempted.
	input := "0x" + "00000000000000000000000000000000000000000000000000000000000f4240"
	_, err := DecodeTokens(input, []ParamType{String()})
	require.Error(t, err)
	var lenErr *LenTooLongError
	require.ErrorAs(t, err, &lenErr)
	assert.Equal(t, 64, lenErr.Max)
}

func TestDecodeAddressToken(t *testing.T) {
	hexStr := "0x000000000000000000000000" + "0102030405060708090a0b0c0d0e0f1011121314"
	tokens, err := DecodeTokens(hexStr, []ParamType{AddressType()})
	require.NoError(t, err)
	addr, ok := tokens[0].Address()
	require.True(t, ok)
	assert.Equal(t, byte(0x01), addr[0])
	assert.Equal(t, byte(0x14), addr[19])
}
