package primitives

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseType parses a textual ABI type signature into a ParamType,
// following the same grammar Solidity's own signatures use:
//
//	type  := scalar | type '[' ']' | type '[' digits ']'
//	scalar:= 'int' | 'uint' | 'int' digits | 'uint' digits
//	       | 'bytes' | 'bytes' digits | 'bool' | 'address' | 'string'
//
// Array brackets associate to the right of the element type, so
// "uint[100][]" parses as Array(FixedArray(Uint(256), 100)). Tuples have
// no textual form — callers needing tuple parsing must layer that on top.
func ParseType(ty string) (ParamType, error) {
	if idx := strings.LastIndexByte(ty, ']'); idx >= 0 {
		open := strings.LastIndexByte(ty[:idx], '[')
		if open < 0 {
			return ParamType{}, fmt.Errorf("no matching character [ in %s", ty)
		}
		inner, err := ParseType(ty[:open])
		if err != nil {
			return ParamType{}, err
		}
		sizeStr := ty[open+1 : idx]
		if sizeStr == "" {
			return NewArrayType(inner), nil
		}
		n, err := strconv.Atoi(sizeStr)
		if err != nil || n < 0 {
			return ParamType{}, fmt.Errorf("invalid unsigned number %s", sizeStr)
		}
		return NewFixedArrayType(inner, n)
	}

	switch {
	case ty == "int":
		return NewIntType(256)
	case ty == "uint":
		return NewUintType(256)
	case ty == "bool":
		return Bool(), nil
	case ty == "address":
		return AddressType(), nil
	case ty == "string":
		return String(), nil
	case ty == "bytes":
		return Bytes(), nil
	case strings.HasPrefix(ty, "int"):
		return parseSizedScalar(ty, "int", NewIntType)
	case strings.HasPrefix(ty, "uint"):
		return parseSizedScalar(ty, "uint", NewUintType)
	case strings.HasPrefix(ty, "bytes"):
		n, err := strconv.Atoi(ty[len("bytes"):])
		if err != nil {
			return ParamType{}, fmt.Errorf("invalid parameter type %s", ty)
		}
		return NewFixedBytesType(n)
	default:
		return ParamType{}, fmt.Errorf("invalid parameter type %s", ty)
	}
}

// parseSizedScalar parses the digits following an "int"/"uint" prefix and
// builds the descriptor via the given constructor.
func parseSizedScalar(ty, prefix string, build func(int) (ParamType, error)) (ParamType, error) {
	suffix := ty[len(prefix):]
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return ParamType{}, fmt.Errorf("invalid unsigned number %s", suffix)
	}
	pt, buildErr := build(n)
	if buildErr != nil {
		return ParamType{}, fmt.Errorf("invalid parameter type %s", ty)
	}
	return pt, nil
}
