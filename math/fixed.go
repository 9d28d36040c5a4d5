package math

import (
	"encoding/binary"
	"encoding/json"
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"github.com/cockroachdb/apd/v3"
	"github.com/holiman/uint256"
)

// U64F64 is an unsigned fixed-point number with 64 integer bits and 64 fractional bits.
// A value v is stored as the integer v·2^64. Arithmetic never fails: results that do not
// fit are clamped to zero or to MaxFixed.
//
// U64F64 is a value type and every operation returns a fresh value, so it is safe to
// copy and share between callers.
type U64F64 struct {
	raw uint256.Int
}

// FractionalBits is the scale of U64F64, 2^FractionalBits is the value 1.
const FractionalBits = 64

// FixedEncodedLen is the length of the binary encoding produced by Bytes.
const FixedEncodedLen = 16

const fixedCodespace = "fixed"

var (
	ErrInvalidFixedString = errorsmod.Register(fixedCodespace, 2, "invalid fixed-point string")
	ErrFixedOverflow      = errorsmod.Register(fixedCodespace, 3, "value does not fit in 64.64 fixed point")
	ErrNegativeFixed      = errorsmod.Register(fixedCodespace, 4, "fixed-point values cannot be negative")
	ErrFixedInvalidLength = errorsmod.Register(fixedCodespace, 5, "invalid fixed-point encoding length")
)

// largest decimal exponent that can still fit below 2^64
const maxDecimalExponent = 20

var (
	maxRaw = func() uint256.Int {
		var z uint256.Int
		z.Lsh(uint256.NewInt(1), 2*FractionalBits)
		z.SubUint64(&z, 1)
		return z
	}()
	oneRaw = *new(uint256.Int).Lsh(uint256.NewInt(1), FractionalBits)

	// 2^-64 = 5^64 / 10^64, so raw·5^64 is the exact decimal coefficient at exponent -64
	pow5Frac = new(big.Int).Exp(big.NewInt(5), big.NewInt(FractionalBits), nil)
)

// The number 0 encoded as U64F64
func ZeroFixed() U64F64 {
	return U64F64{}
}

// The number 1 encoded as U64F64
func OneFixed() U64F64 {
	return U64F64{raw: oneRaw}
}

// MaxFixed is the largest representable value, 2^64 - 2^-64.
func MaxFixed() U64F64 {
	return U64F64{raw: maxRaw}
}

func NewFixedFromUint64(v uint64) U64F64 {
	return NewFixedFromBits(v, 0)
}

// NewFixedFromBits builds a value from its integer and fractional halves.
func NewFixedFromBits(integer, fraction uint64) U64F64 {
	var f U64F64
	f.raw[0] = fraction
	f.raw[1] = integer
	return f
}

// NewFixedFromFraction returns num/den. A zero denominator saturates, 0/0 is 0.
func NewFixedFromFraction(num, den uint64) U64F64 {
	return NewFixedFromUint64(num).Quo(NewFixedFromUint64(den))
}

// NewFixedFromUnitFraction decodes the storage convention where a uint64 v stands
// for v / MaxUint64, so MaxUint64 decodes to exactly 1.
func NewFixedFromUnitFraction(v uint64) U64F64 {
	return NewFixedFromFraction(v, ^uint64(0))
}

// ToUnitFraction is the inverse of NewFixedFromUnitFraction, rounding down.
// Values at or above 1 map to MaxUint64.
func (f U64F64) ToUnitFraction() uint64 {
	if f.GTE(OneFixed()) {
		return ^uint64(0)
	}
	var z uint256.Int
	z.Mul(&f.raw, uint256.NewInt(^uint64(0)))
	z.Rsh(&z, FractionalBits)
	return z.Uint64()
}

func saturate(z *uint256.Int) U64F64 {
	if z.Gt(&maxRaw) {
		return MaxFixed()
	}
	return U64F64{raw: *z}
}

func (f U64F64) Add(g U64F64) U64F64 {
	var z uint256.Int
	z.Add(&f.raw, &g.raw)
	return saturate(&z)
}

// Sub returns f - g, floored at zero.
func (f U64F64) Sub(g U64F64) U64F64 {
	if f.raw.Lt(&g.raw) {
		return ZeroFixed()
	}
	var z uint256.Int
	z.Sub(&f.raw, &g.raw)
	return U64F64{raw: z}
}

func (f U64F64) Mul(g U64F64) U64F64 {
	var z uint256.Int
	z.Mul(&f.raw, &g.raw)
	z.Rsh(&z, FractionalBits)
	return saturate(&z)
}

// Quo returns f / g rounded down. Dividing a nonzero value by zero saturates to
// MaxFixed and 0/0 is 0.
func (f U64F64) Quo(g U64F64) U64F64 {
	if g.IsZero() {
		if f.IsZero() {
			return ZeroFixed()
		}
		return MaxFixed()
	}
	var z uint256.Int
	z.Lsh(&f.raw, FractionalBits)
	z.Div(&z, &g.raw)
	return saturate(&z)
}

func (f U64F64) MulUint64(v uint64) U64F64 {
	return f.Mul(NewFixedFromUint64(v))
}

func (f U64F64) QuoUint64(v uint64) U64F64 {
	return f.Quo(NewFixedFromUint64(v))
}

// MulUint64Floor returns floor(f·v) as an integer, saturating at MaxUint64.
func (f U64F64) MulUint64Floor(v uint64) uint64 {
	var z uint256.Int
	z.Mul(&f.raw, uint256.NewInt(v))
	z.Rsh(&z, FractionalBits)
	if !z.IsUint64() {
		return ^uint64(0)
	}
	return z.Uint64()
}

// Floor returns the integer part.
func (f U64F64) Floor() uint64 {
	return f.raw[1]
}

// FractionBits returns the 64 fractional bits.
func (f U64F64) FractionBits() uint64 {
	return f.raw[0]
}

func (f U64F64) Cmp(g U64F64) int {
	return f.raw.Cmp(&g.raw)
}

func (f U64F64) Equal(g U64F64) bool {
	return f.raw.Eq(&g.raw)
}

func (f U64F64) LT(g U64F64) bool {
	return f.raw.Lt(&g.raw)
}

func (f U64F64) LTE(g U64F64) bool {
	return !f.raw.Gt(&g.raw)
}

func (f U64F64) GT(g U64F64) bool {
	return f.raw.Gt(&g.raw)
}

func (f U64F64) GTE(g U64F64) bool {
	return !f.raw.Lt(&g.raw)
}

func (f U64F64) IsZero() bool {
	return f.raw.IsZero()
}

// Bytes returns the 16 byte big-endian encoding of the raw value.
func (f U64F64) Bytes() []byte {
	buf := make([]byte, FixedEncodedLen)
	binary.BigEndian.PutUint64(buf[0:8], f.raw[1])
	binary.BigEndian.PutUint64(buf[8:16], f.raw[0])
	return buf
}

func NewFixedFromBytes(b []byte) (U64F64, error) {
	if len(b) != FixedEncodedLen {
		return ZeroFixed(), errorsmod.Wrapf(ErrFixedInvalidLength, "expected %d bytes, got %d", FixedEncodedLen, len(b))
	}
	return NewFixedFromBits(binary.BigEndian.Uint64(b[0:8]), binary.BigEndian.Uint64(b[8:16])), nil
}

// String renders the exact decimal expansion of f. Every U64F64 has a finite
// decimal representation since its denominator is a power of two.
func (f U64F64) String() string {
	if f.IsZero() {
		return "0"
	}
	coeff := f.raw.ToBig()
	coeff.Mul(coeff, pow5Frac)
	d := apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(coeff), -FractionalBits)
	d.Reduce(d)
	return d.Text('f')
}

// NewFixedFromString parses a non-negative decimal string, rounding down to the
// nearest representable value.
func NewFixedFromString(s string) (U64F64, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return ZeroFixed(), errorsmod.Wrap(ErrInvalidFixedString, err.Error())
	}
	if d.Form != apd.Finite {
		return ZeroFixed(), errorsmod.Wrapf(ErrInvalidFixedString, "%q is not finite", s)
	}
	if d.IsZero() {
		return ZeroFixed(), nil
	}
	if d.Negative {
		return ZeroFixed(), errorsmod.Wrapf(ErrNegativeFixed, "%q", s)
	}
	if d.Exponent > maxDecimalExponent {
		return ZeroFixed(), errorsmod.Wrapf(ErrFixedOverflow, "%q", s)
	}

	num := d.Coeff.MathBigInt()
	num.Lsh(num, FractionalBits)
	if d.Exponent >= 0 {
		num.Mul(num, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.Exponent)), nil))
	} else {
		num.Quo(num, new(big.Int).Exp(big.NewInt(10), big.NewInt(-int64(d.Exponent)), nil))
	}
	raw, overflow := uint256.FromBig(num)
	if overflow || raw.Gt(&maxRaw) {
		return ZeroFixed(), errorsmod.Wrapf(ErrFixedOverflow, "%q", s)
	}
	return U64F64{raw: *raw}, nil
}

func MustNewFixedFromString(s string) U64F64 {
	f, err := NewFixedFromString(s)
	if err != nil {
		panic(err)
	}
	return f
}

func (f U64F64) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *U64F64) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := NewFixedFromString(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// MinFixed returns the smaller of a and b.
func MinFixed(a, b U64F64) U64F64 {
	if a.LT(b) {
		return a
	}
	return b
}
