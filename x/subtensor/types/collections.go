package types

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"

	collcodec "cosmossdk.io/collections/codec"
	"cosmossdk.io/errors"
)

const (
	weightEntryLen = 8
	bondEntryLen   = 12
)

var WeightRowValue collcodec.ValueCodec[WeightRow] = weightRowValueCodec{}

type weightRowValueCodec struct{}

func (c weightRowValueCodec) Encode(value WeightRow) ([]byte, error) {
	buf := make([]byte, len(value)*weightEntryLen)
	for i, e := range value {
		binary.BigEndian.PutUint32(buf[i*weightEntryLen:], e.Uid)
		binary.BigEndian.PutUint32(buf[i*weightEntryLen+4:], e.Weight)
	}
	return buf, nil
}

func (c weightRowValueCodec) Decode(b []byte) (WeightRow, error) {
	if len(b)%weightEntryLen != 0 {
		return nil, errors.Wrapf(ErrRowDecodeInvalidLength, "weight row of %d bytes", len(b))
	}
	value := make(WeightRow, len(b)/weightEntryLen)
	for i := range value {
		off := i * weightEntryLen
		value[i] = WeightEntry{
			Uid:    binary.BigEndian.Uint32(b[off : off+4]),
			Weight: binary.BigEndian.Uint32(b[off+4 : off+8]),
		}
	}
	return value, nil
}

func (c weightRowValueCodec) EncodeJSON(value WeightRow) ([]byte, error) {
	return json.Marshal(value)
}

func (c weightRowValueCodec) DecodeJSON(b []byte) (WeightRow, error) {
	var value WeightRow
	err := json.Unmarshal(b, &value)
	return value, err
}

func (c weightRowValueCodec) Stringify(value WeightRow) string {
	parts := make([]string, len(value))
	for i, e := range value {
		parts[i] = fmt.Sprintf("%d:%d", e.Uid, e.Weight)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (c weightRowValueCodec) ValueType() string {
	return "WeightRow"
}

var BondRowValue collcodec.ValueCodec[BondRow] = bondRowValueCodec{}

type bondRowValueCodec struct{}

func (c bondRowValueCodec) Encode(value BondRow) ([]byte, error) {
	buf := make([]byte, len(value)*bondEntryLen)
	for i, e := range value {
		binary.BigEndian.PutUint32(buf[i*bondEntryLen:], e.Uid)
		binary.BigEndian.PutUint64(buf[i*bondEntryLen+4:], e.Bond)
	}
	return buf, nil
}

func (c bondRowValueCodec) Decode(b []byte) (BondRow, error) {
	if len(b)%bondEntryLen != 0 {
		return nil, errors.Wrapf(ErrRowDecodeInvalidLength, "bond row of %d bytes", len(b))
	}
	value := make(BondRow, len(b)/bondEntryLen)
	for i := range value {
		off := i * bondEntryLen
		value[i] = BondEntry{
			Uid:  binary.BigEndian.Uint32(b[off : off+4]),
			Bond: binary.BigEndian.Uint64(b[off+4 : off+12]),
		}
	}
	return value, nil
}

func (c bondRowValueCodec) EncodeJSON(value BondRow) ([]byte, error) {
	return json.Marshal(value)
}

func (c bondRowValueCodec) DecodeJSON(b []byte) (BondRow, error) {
	var value BondRow
	err := json.Unmarshal(b, &value)
	return value, err
}

func (c bondRowValueCodec) Stringify(value BondRow) string {
	parts := make([]string, len(value))
	for i, e := range value {
		parts[i] = fmt.Sprintf("%d:%d", e.Uid, e.Bond)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (c bondRowValueCodec) ValueType() string {
	return "BondRow"
}

// NewJSONValue is a value codec for plain structs such as Params and Neuron.
func NewJSONValue[T any](valueType string) collcodec.ValueCodec[T] {
	return jsonValueCodec[T]{valueType: valueType}
}

var (
	ParamsValue = NewJSONValue[Params]("Params")
	NeuronValue = NewJSONValue[Neuron]("Neuron")
)

type jsonValueCodec[T any] struct {
	valueType string
}

func (c jsonValueCodec[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (c jsonValueCodec[T]) Decode(b []byte) (T, error) {
	var value T
	err := json.Unmarshal(b, &value)
	return value, err
}

func (c jsonValueCodec[T]) EncodeJSON(value T) ([]byte, error) {
	return c.Encode(value)
}

func (c jsonValueCodec[T]) DecodeJSON(b []byte) (T, error) {
	return c.Decode(b)
}

func (c jsonValueCodec[T]) Stringify(value T) string {
	bz, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(bz)
}

func (c jsonValueCodec[T]) ValueType() string {
	return c.valueType
}
