package codec

import (
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
	"github.com/mitchellh/mapstructure"

	"github.com/wippyai/scale-codec/errors"
)

// TagName is the struct tag that names SCALE fields on Go structs.
const TagName = "scale"

var (
	bigIntType  = reflect.TypeOf(big.Int{})
	bigPtrType  = reflect.TypeOf(&big.Int{})
	uint256Type = reflect.TypeOf(uint256.Int{})
	variantType = reflect.TypeOf(Variant{})
)

// As copies a decoded value into out, which must be a non-nil pointer.
// Struct fields are matched by their `scale` tag.
func As(value any, out any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:     out,
		TagName:    TagName,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(wideIntHook, variantHook),
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return errors.Wrap(errors.PhaseDecode, errors.KindTypeMismatch, err, "build converter")
	}
	if err := dec.Decode(value); err != nil {
		return errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			GoType(reflect.TypeOf(out).String()).
			Detail("convert decoded value").
			Cause(err).
			Build()
	}
	return nil
}

// From converts a Go struct into the map form the encoder consumes.
// Other values are returned unchanged.
func From(value any) (any, error) {
	rv := reflect.Indirect(reflect.ValueOf(value))
	if rv.Kind() != reflect.Struct || rv.Type() == variantType {
		return value, nil
	}
	var out map[string]any
	cfg := &mapstructure.DecoderConfig{
		Result:  &out,
		TagName: TagName,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindTypeMismatch, err, "build converter")
	}
	if err := dec.Decode(value); err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindTypeMismatch, err, "convert "+rv.Type().String())
	}
	return out, nil
}

// wideIntHook lets *uint256.Int results land in native integers and big.Int.
func wideIntHook(from, to reflect.Type, data any) (any, error) {
	u, ok := data.(*uint256.Int)
	if !ok || u == nil {
		return data, nil
	}
	switch to {
	case bigPtrType:
		return u.ToBig(), nil
	case bigIntType:
		return *u.ToBig(), nil
	case uint256Type:
		return *u, nil
	}
	switch to.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if u.IsUint64() {
			return u.Uint64(), nil
		}
	case reflect.String:
		return u.Dec(), nil
	}
	return data, nil
}

// variantHook maps a decoded union onto a string (its name) or, for
// single-key struct targets, a map keyed by the variant name.
func variantHook(from, to reflect.Type, data any) (any, error) {
	v, ok := data.(Variant)
	if !ok || to == variantType {
		return data, nil
	}
	switch to.Kind() {
	case reflect.String:
		return v.Name, nil
	case reflect.Struct, reflect.Map:
		return map[string]any{v.Name: v.Value}, nil
	}
	return data, nil
}
