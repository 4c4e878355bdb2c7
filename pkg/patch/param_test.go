package patch

import "testing"

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		value    int64
		fixed    bool
		kind     ParamKind
		expected int32
		wantErr  bool
	}{
		// bool accepts only 0 and 1
		{0, false, ParamBool, 0, false},
		{1, false, ParamBool, 1, false},
		{2, false, ParamBool, 0, true},

		// integer ranges
		{255, false, ParamByte, 255, false},
		{256, false, ParamByte, 0, true},
		{-1, false, ParamByte, 0, true},
		{-32768, false, ParamShort, -32768, false},
		{-32769, false, ParamShort, 0, true},
		{65535, false, ParamUShort, 65535, false},
		{-5, false, ParamInt, -5, false},
		{-1, false, ParamUInt, 0, true},

		// fixed-point: integer literals scale, fixed literals pass through
		{8, false, ParamFixed, 8 << 16, false},
		{8 << 16, true, ParamFixed, 8 << 16, false},
		{-2, false, ParamFixed, -2 << 16, false},
		{90, false, ParamAngleFixed, 90 << 16, false},
		{40000, false, ParamFixed, 0, true},

		// fixed-point literals are rejected for plain integer kinds
		{8 << 16, true, ParamInt, 0, true},
		{8 << 16, true, ParamBool, 0, true},

		// resolved references are non-negative indexes
		{442, false, ParamState, 442, false},
		{-1, false, ParamState, 0, true},
	}

	for i, tt := range tests {
		got, err := CoerceInt(tt.value, tt.fixed, tt.kind)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("tests[%d] - expected error for value=%d kind=%s", i, tt.value, tt.kind)
			}
			continue
		}
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if got != tt.expected {
			t.Fatalf("tests[%d] - value wrong. expected=%d, got=%d", i, tt.expected, got)
		}
	}
}

func TestParamKindString(t *testing.T) {
	tests := []struct {
		kind     ParamKind
		expected string
	}{
		{ParamBool, "bool"},
		{ParamFixed, "fixed"},
		{ParamAngleFixed, "fixedangle"},
		{ParamFlags, "flags"},
		{ParamKind(99), "unknown"},
	}

	for i, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Fatalf("tests[%d] - String() wrong. expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

func TestParamKindIsReference(t *testing.T) {
	tests := []struct {
		kind     ParamKind
		expected bool
	}{
		{ParamThing, true},
		{ParamState, true},
		{ParamSound, true},
		{ParamFlags, true},
		{ParamInt, false},
		{ParamFixed, false},
	}

	for i, tt := range tests {
		if got := tt.kind.IsReference(); got != tt.expected {
			t.Fatalf("tests[%d] - IsReference() wrong. expected=%v, got=%v", i, tt.expected, got)
		}
	}
}
