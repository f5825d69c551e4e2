package options

import (
	"math"

	"github.com/shopspring/decimal"
	"go.yaml.in/yaml/v3"

	"github.com/koustreak/sqlconnect/internal/errs"
)

var (
	thousand  = decimal.NewFromInt(1000)
	maxMillis = decimal.NewFromInt(math.MaxInt64)
)

// Seconds is a fractional number of seconds as written by the user.
type Seconds struct {
	d decimal.Decimal
}

// SecondsOf converts a float to Seconds.
func SecondsOf(f float64) Seconds {
	return Seconds{d: decimal.NewFromFloat(f)}
}

// ParseSeconds parses a decimal string such as "2.5".
func ParseSeconds(s string) (Seconds, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Seconds{}, errs.Wrap(errs.ErrKindInvalidInput, "invalid seconds value "+s, err)
	}
	return Seconds{d: d}, nil
}

// Decimal returns the underlying decimal value.
func (s Seconds) Decimal() decimal.Decimal {
	return s.d
}

func (s Seconds) String() string {
	return s.d.String()
}

// UnmarshalYAML accepts integer and decimal scalars.
func (s *Seconds) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return errs.Newf(errs.ErrKindInvalidInput, "line %d: seconds must be a number", n.Line)
	}
	parsed, err := ParseSeconds(n.Value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML emits the decimal as a plain number.
func (s Seconds) MarshalYAML() (any, error) {
	return s.d.InexactFloat64(), nil
}

// Millis converts an optional seconds value to whole milliseconds.
// The result is present only when the input is present and strictly
// positive; fractions of a millisecond are truncated toward zero, so a
// positive input below one millisecond yields Some(0). Values past the
// int64 range saturate at math.MaxInt64.
func Millis(s Optional[Seconds]) Optional[int64] {
	v, ok := s.Get()
	if !ok || !v.d.IsPositive() {
		return None[int64]()
	}
	ms := v.d.Mul(thousand)
	if ms.GreaterThan(maxMillis) {
		return Some(int64(math.MaxInt64))
	}
	return Some(ms.IntPart())
}
