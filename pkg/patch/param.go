package patch

import "fmt"

// ParamKind is the declared type of one action pointer parameter.
// The set is closed; every registry signature is built from these.
type ParamKind int

const (
	ParamBool ParamKind = iota
	ParamByte
	ParamShort
	ParamUShort
	ParamInt
	ParamUInt
	ParamFixed      // real number scaled by 65536
	ParamAngleInt   // angle as raw signed degrees
	ParamAngleUint  // angle as raw unsigned degrees
	ParamAngleFixed // angle in degrees scaled by 65536
	ParamThing      // thing table reference
	ParamState      // state table reference
	ParamSound      // sound table reference
	ParamFlags      // flag-set reference
)

var paramKindNames = map[ParamKind]string{
	ParamBool:       "bool",
	ParamByte:       "byte",
	ParamShort:      "short",
	ParamUShort:     "ushort",
	ParamInt:        "int",
	ParamUInt:       "uint",
	ParamFixed:      "fixed",
	ParamAngleInt:   "angle",
	ParamAngleUint:  "uangle",
	ParamAngleFixed: "fixedangle",
	ParamThing:      "thing",
	ParamState:      "state",
	ParamSound:      "sound",
	ParamFlags:      "flags",
}

// String returns the parameter kind name used in diagnostics.
func (k ParamKind) String() string {
	if name, ok := paramKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsReference reports whether the kind resolves through a context table
// (thing alias, state label, sound name, flag mnemonics) before coercion.
func (k ParamKind) IsReference() bool {
	switch k {
	case ParamThing, ParamState, ParamSound, ParamFlags:
		return true
	}
	return false
}

// CoerceInt converts a numeric literal to the stored representation of the
// declared kind. fixed reports whether the literal carried a fixed-point
// marker (its value is then already scaled by 65536). Reference kinds arrive
// here already resolved to table indexes or summed flag bits.
func CoerceInt(value int64, fixed bool, kind ParamKind) (int32, error) {
	switch kind {
	case ParamBool:
		if fixed || (value != 0 && value != 1) {
			return 0, fmt.Errorf("expected 0 or 1 for %s value", kind)
		}
		return int32(value), nil

	case ParamByte:
		return rangeCheck(value, fixed, kind, 0, 255)
	case ParamShort:
		return rangeCheck(value, fixed, kind, -32768, 32767)
	case ParamUShort:
		return rangeCheck(value, fixed, kind, 0, 65535)
	case ParamInt:
		return rangeCheck(value, fixed, kind, -2147483648, 2147483647)
	case ParamUInt:
		return rangeCheck(value, fixed, kind, 0, 2147483647)

	case ParamFixed, ParamAngleFixed:
		// Integer literals scale up; fixed literals are stored raw.
		if !fixed {
			value <<= 16
		}
		if value < -2147483648 || value > 2147483647 {
			return 0, fmt.Errorf("%s value out of range", kind)
		}
		return int32(value), nil

	case ParamAngleInt:
		return rangeCheck(value, fixed, kind, -2147483648, 2147483647)
	case ParamAngleUint:
		return rangeCheck(value, fixed, kind, 0, 2147483647)

	case ParamThing, ParamState, ParamSound, ParamFlags:
		return rangeCheck(value, fixed, kind, 0, 2147483647)
	}
	return 0, fmt.Errorf("unknown parameter kind")
}

func rangeCheck(value int64, fixed bool, kind ParamKind, min, max int64) (int32, error) {
	if fixed {
		return 0, fmt.Errorf("fixed-point literal not allowed for %s value", kind)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("%s value out of range [%d, %d]", kind, min, max)
	}
	return int32(value), nil
}
