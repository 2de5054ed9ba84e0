package extrinsic

import (
	"fmt"
	"math"
	"math/bits"
	"strings"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/errors"
	"github.com/wippyai/scale-codec/internal/coerce"
	"github.com/wippyai/scale-codec/types"
)

const (
	minPeriod = 4
	maxPeriod = 1 << 16
)

// Era is the validity window of a transaction. The zero value is immortal.
type Era struct {
	Period uint64
	Phase  uint64
}

func NewImmortal() Era {
	return Era{}
}

// NewMortal creates an era starting at current that lasts about period
// blocks. The period is rounded up to a power of two within [4, 65536] and
// the phase is quantised to what two bytes can carry.
func NewMortal(period, current uint64) Era {
	p := uint64(maxPeriod)
	if period <= maxPeriod {
		p = nextPowerOfTwo(period)
	}
	p = min(max(p, minPeriod), maxPeriod)

	q := quantizeFactor(p)
	phase := current % p / q * q
	return Era{Period: p, Phase: phase}
}

// MortalFromParts builds a mortal era from an exact period and phase.
func MortalFromParts(period, phase uint64) (Era, error) {
	e := Era{Period: period, Phase: phase}
	if err := e.validate(); err != nil {
		return Era{}, err
	}
	return e, nil
}

func (e Era) IsImmortal() bool {
	return e.Period == 0
}

func (e Era) validate() error {
	if e.IsImmortal() {
		return nil
	}
	if e.Period < minPeriod || e.Period > maxPeriod || bits.OnesCount64(e.Period) != 1 {
		return errors.New(errors.PhaseEncode, errors.KindEncodeConstraint).
			ScaleType("Era").
			Value(e.Period).
			Detail("period %d is not a power of two in [%d, %d]", e.Period, minPeriod, maxPeriod).
			Build()
	}
	if e.Phase >= e.Period || e.Phase%quantizeFactor(e.Period) != 0 {
		return errors.New(errors.PhaseEncode, errors.KindEncodeConstraint).
			ScaleType("Era").
			Value(e.Phase).
			Detail("phase %d does not fit period %d", e.Phase, e.Period).
			Build()
	}
	return nil
}

// Encode returns the wire form: 0x00 for immortal, two bytes otherwise.
func (e Era) Encode() []byte {
	if e.IsImmortal() {
		return []byte{0}
	}
	low := uint64(min(max(bits.TrailingZeros64(e.Period)-1, 1), 15))
	encoded := uint16(low | (e.Phase/quantizeFactor(e.Period))<<4)
	return []byte{byte(encoded), byte(encoded >> 8)}
}

// DecodeEra reads an era from b.
func DecodeEra(b *buffer.Buffer) (Era, error) {
	first, err := b.ReadByte()
	if err != nil {
		return Era{}, err
	}
	if first == 0 {
		return NewImmortal(), nil
	}
	second, err := b.ReadByte()
	if err != nil {
		return Era{}, err
	}

	encoded := uint64(first) | uint64(second)<<8
	period := uint64(2) << (encoded % 16)
	phase := (encoded >> 4) * quantizeFactor(period)
	if period < minPeriod || phase >= period {
		return Era{}, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			ScaleType("Era").
			Value(encoded).
			Detail("invalid mortal era 0x%02x%02x", first, second).
			Build()
	}
	return Era{Period: period, Phase: phase}, nil
}

// Birth returns the first block of the window that contains current.
func (e Era) Birth(current uint64) uint64 {
	if e.IsImmortal() {
		return 0
	}
	return (max(current, e.Phase)-e.Phase)/e.Period*e.Period + e.Phase
}

// Death returns the first block after the window that contains current.
func (e Era) Death(current uint64) uint64 {
	if e.IsImmortal() {
		return math.MaxUint64
	}
	return e.Birth(current) + e.Period
}

func (e Era) String() string {
	if e.IsImmortal() {
		return "Immortal"
	}
	return fmt.Sprintf("Mortal(period=%d, phase=%d)", e.Period, e.Phase)
}

func quantizeFactor(period uint64) uint64 {
	return max(period>>12, 1)
}

func nextPowerOfTwo(v uint64) uint64 {
	if v <= 1 {
		return 1
	}
	return 1 << bits.Len64(v-1)
}

// EraTypeDef returns the Era as a custom type for the generic engine.
// Encode accepts an Era, raw or hex bytes, "Immortal", or a map with
// period and either current or phase. Decode yields an Era.
func EraTypeDef() *types.TypeDef {
	return types.NewCustom("Era", eraCodec{})
}

type eraCodec struct{}

func (eraCodec) Encode(w *buffer.Writer, value any) error {
	e, err := eraInput(value)
	if err != nil {
		return err
	}
	w.Write(e.Encode())
	return nil
}

func (eraCodec) Decode(b *buffer.Buffer) (any, error) {
	return DecodeEra(b)
}

func eraInput(value any) (Era, error) {
	switch v := value.(type) {
	case nil:
		return NewImmortal(), nil
	case Era:
		return v, v.validate()
	case *Era:
		if v == nil {
			return NewImmortal(), nil
		}
		return *v, v.validate()
	case []byte:
		return eraBytes(v)
	case string:
		if strings.EqualFold(v, "immortal") {
			return NewImmortal(), nil
		}
		if !strings.HasPrefix(v, "0x") {
			v = "0x" + v
		}
		raw, err := buffer.DecodeHex(v)
		if err != nil {
			return Era{}, err
		}
		return eraBytes(raw)
	case map[string]any:
		return eraMap(v)
	}
	return Era{}, errors.TypeMismatch(errors.PhaseEncode, nil, coerce.TypeName(value), "Era")
}

func eraBytes(raw []byte) (Era, error) {
	b := buffer.New(raw)
	e, err := DecodeEra(b)
	if err != nil {
		return Era{}, err
	}
	if b.Remaining() > 0 {
		return Era{}, errors.RemainingBytes(b.Remaining(), b.PeekAll())
	}
	return e, nil
}

func eraMap(m map[string]any) (Era, error) {
	if len(m) == 0 {
		return NewImmortal(), nil
	}
	period, ok := coerce.ToUint64(m["period"])
	if !ok {
		return Era{}, errors.FieldMissing(errors.PhaseEncode, nil, "period")
	}
	if current, ok := coerce.ToUint64(m["current"]); ok {
		return NewMortal(period, current), nil
	}
	phase, ok := coerce.ToUint64(m["phase"])
	if !ok {
		return Era{}, errors.FieldMissing(errors.PhaseEncode, nil, "current")
	}
	return MortalFromParts(period, phase)
}
