package math

import (
	collcodec "cosmossdk.io/collections/codec"
)

var FixedValue collcodec.ValueCodec[U64F64] = fixedValueCodec{}

type fixedValueCodec struct{}

func (i fixedValueCodec) Encode(value U64F64) ([]byte, error) {
	return value.Bytes(), nil
}

func (i fixedValueCodec) Decode(b []byte) (U64F64, error) {
	return NewFixedFromBytes(b)
}

func (i fixedValueCodec) EncodeJSON(value U64F64) ([]byte, error) {
	return value.MarshalJSON()
}

func (i fixedValueCodec) DecodeJSON(b []byte) (U64F64, error) {
	v := new(U64F64)
	err := v.UnmarshalJSON(b)
	if err != nil {
		return U64F64{}, err
	}
	return *v, nil
}

func (i fixedValueCodec) Stringify(value U64F64) string {
	return value.String()
}

func (i fixedValueCodec) ValueType() string {
	return "U64F64"
}
