package ss58

import "github.com/wippyai/scale-codec/errors"

// Formatter renders account ids as addresses of one network format. It
// implements codec.AddressFormatter.
type Formatter struct {
	Format uint16
	// AnyFormat accepts addresses of other networks when parsing.
	AnyFormat bool
}

func NewFormatter(format uint16) *Formatter {
	return &Formatter{Format: format}
}

func (f *Formatter) FormatAddress(pub []byte) (string, error) {
	return Encode(pub, f.Format)
}

func (f *Formatter) ParseAddress(s string) ([]byte, error) {
	pub, format, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if format != f.Format && !f.AnyFormat {
		return nil, errors.New(errors.PhaseAddress, errors.KindInvalidData).
			Value(s).
			Detail("address has format %d, want %d", format, f.Format).
			Build()
	}
	return pub, nil
}
