package translator

import (
	"errors"
	"testing"
)

func TestToSOVDValueString(t *testing.T) {
	got := ToSOVDValue([]byte("1HGCM82633A004352"), DataTypeString)
	if got != "1HGCM82633A004352" {
		t.Errorf("ToSOVDValue() = %v, want VIN string", got)
	}
}

func TestToSOVDValueStringFallsBackToHexOnInvalidUTF8(t *testing.T) {
	raw := []byte{0xFF, 0xFE, 0x00}
	got := ToSOVDValue(raw, DataTypeString)
	if got != "FFFE00" {
		t.Errorf("ToSOVDValue() = %v, want hex fallback FFFE00", got)
	}
}

func TestToSOVDValueNumber(t *testing.T) {
	cases := []struct {
		raw  []byte
		want uint64
	}{
		{[]byte{0x2A}, 42},
		{[]byte{0x01, 0x00}, 256},
		{[]byte{0x00, 0x00, 0x01, 0x00}, 256},
	}
	for _, c := range cases {
		got := ToSOVDValue(c.raw, DataTypeNumber)
		if got != c.want {
			t.Errorf("ToSOVDValue(% X) = %v, want %d", c.raw, got, c.want)
		}
	}
}

func TestToSOVDValueNumberFallsBackToHexOnOddLength(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03}
	got := ToSOVDValue(raw, DataTypeNumber)
	if got != "010203" {
		t.Errorf("ToSOVDValue() = %v, want hex fallback 010203", got)
	}
}

func TestToSOVDValueBoolean(t *testing.T) {
	if ToSOVDValue([]byte{0x01}, DataTypeBoolean) != true {
		t.Error("expected true for non-zero byte")
	}
	if ToSOVDValue([]byte{0x00}, DataTypeBoolean) != false {
		t.Error("expected false for zero byte")
	}
}

func TestToSOVDValueHex(t *testing.T) {
	got := ToSOVDValue([]byte{0xDE, 0xAD, 0xBE, 0xEF}, DataTypeHex)
	if got != "DEADBEEF" {
		t.Errorf("ToSOVDValue() = %v, want DEADBEEF", got)
	}
}

func TestToSOVDValueEmptyReturnsNil(t *testing.T) {
	if got := ToSOVDValue(nil, DataTypeString); got != nil {
		t.Errorf("ToSOVDValue(nil) = %v, want nil", got)
	}
}

func TestToSOVDValueEmptyBooleanReturnsFalse(t *testing.T) {
	if got := ToSOVDValue(nil, DataTypeBoolean); got != false {
		t.Errorf("ToSOVDValue(nil, DataTypeBoolean) = %v, want false", got)
	}
}

func TestFromSOVDValueString(t *testing.T) {
	got, err := FromSOVDValue("hello")
	if err != nil {
		t.Fatalf("FromSOVDValue() error = %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("FromSOVDValue() = %q, want hello", got)
	}
}

func TestFromSOVDValueHexPrefixedString(t *testing.T) {
	got, err := FromSOVDValue("0xDEAD")
	if err != nil {
		t.Fatalf("FromSOVDValue() error = %v", err)
	}
	want := []byte{0xDE, 0xAD}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("FromSOVDValue() = % X, want % X", got, want)
	}
}

func TestFromSOVDValueBoolean(t *testing.T) {
	got, err := FromSOVDValue(true)
	if err != nil {
		t.Fatalf("FromSOVDValue() error = %v", err)
	}
	if len(got) != 1 || got[0] != 0x01 {
		t.Errorf("FromSOVDValue(true) = % X, want 01", got)
	}
}

func TestFromSOVDValueNumber(t *testing.T) {
	got, err := FromSOVDValue(float64(256))
	if err != nil {
		t.Fatalf("FromSOVDValue() error = %v", err)
	}
	want := []byte{0x01, 0x00}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("FromSOVDValue(256) = % X, want % X", got, want)
	}
}

func TestFromSOVDValueNumberAboveUint16EncodesAsFourBytes(t *testing.T) {
	got, err := FromSOVDValue(float64(0x123456))
	if err != nil {
		t.Fatalf("FromSOVDValue() error = %v", err)
	}
	want := []byte{0x00, 0x12, 0x34, 0x56}
	if len(got) != len(want) {
		t.Fatalf("FromSOVDValue(0x123456) = % X, want minimal 4-byte form % X (no 3-byte encoding)", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FromSOVDValue(0x123456) = % X, want % X", got, want)
			break
		}
	}
}

func TestFromSOVDValueUnsupportedType(t *testing.T) {
	_, err := FromSOVDValue([]int{1, 2})
	if err == nil {
		t.Fatal("expected error for unsupported value type")
	}
	if !errors.Is(err, ErrInvalidRequest) {
		t.Error("expected error to wrap ErrInvalidRequest")
	}
}

func TestFormatDTC(t *testing.T) {
	cases := []struct {
		raw  [3]byte
		want string
	}{
		{[3]byte{0x01, 0x23, 0x45}, "P0123"},
		{[3]byte{0x41, 0x23, 0x00}, "C0123"},
		{[3]byte{0x81, 0x23, 0x00}, "B0123"},
		{[3]byte{0xC1, 0x23, 0x00}, "U0123"},
	}
	for _, c := range cases {
		if got := FormatDTC(c.raw); got != c.want {
			t.Errorf("FormatDTC(% X) = %s, want %s", c.raw, got, c.want)
		}
	}
}

func TestParseDTCCodeRoundTripsWithFormatDTC(t *testing.T) {
	raw := [3]byte{0x01, 0x23, 0x00}
	code := FormatDTC(raw)
	parsed, err := ParseDTCCode(code)
	if err != nil {
		t.Fatalf("ParseDTCCode() error = %v", err)
	}
	if parsed != raw {
		t.Errorf("ParseDTCCode(%s) = % X, want % X", code, parsed, raw)
	}
}

func TestParseDTCCodeRejectsMalformedInput(t *testing.T) {
	cases := []string{"", "P123", "X0123", "PAB23"}
	for _, c := range cases {
		if _, err := ParseDTCCode(c); err == nil {
			t.Errorf("ParseDTCCode(%q) expected error, got nil", c)
		}
	}
}

func TestParseDTCRecords(t *testing.T) {
	data := []byte{
		0xFF,                   // status availability mask, discarded
		0x01, 0x23, 0x00, 0x08, // P0123, status 0x08
		0x41, 0x56, 0x00, 0x04, // C0156, status 0x04
	}
	records := ParseDTCRecords(data)
	if len(records) != 2 {
		t.Fatalf("ParseDTCRecords() returned %d records, want 2", len(records))
	}
	if records[0].Code != "P0123" || records[0].Status != 0x08 {
		t.Errorf("records[0] = %+v", records[0])
	}
	if records[1].Code != "C0156" || records[1].Status != 0x04 {
		t.Errorf("records[1] = %+v", records[1])
	}
}

func TestParseDTCRecordsDiscardsIncompleteTrailingBytes(t *testing.T) {
	data := []byte{0xFF, 0x01, 0x23, 0x00, 0x08, 0x01, 0x02}
	records := ParseDTCRecords(data)
	if len(records) != 1 {
		t.Fatalf("ParseDTCRecords() returned %d records, want 1", len(records))
	}
}

func TestParseDTCRecordsEmpty(t *testing.T) {
	if got := ParseDTCRecords(nil); got != nil {
		t.Errorf("ParseDTCRecords(nil) = %v, want nil", got)
	}
}
