package uds

import (
	"bytes"
	"testing"
)

func TestRequestEncode(t *testing.T) {
	req := ReadDataByIdentifierRequest(DIDVIN)
	got := req.Encode()
	want := []byte{byte(SIDReadDataByIdentifier), 0xF1, 0x90}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = % X, want % X", got, want)
	}
}

func TestRequestEncodeWithSubFunction(t *testing.T) {
	req := SessionControlRequest(SessionExtended)
	got := req.Encode()
	want := []byte{byte(SIDDiagnosticSessionControl), byte(SessionExtended)}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = % X, want % X", got, want)
	}
}

func TestSecuritySeedKeySubFunctions(t *testing.T) {
	seed := SecuritySeedRequest(1)
	if seed.SubFunction != 0x01 {
		t.Errorf("seed sub-function for level 1 = 0x%02X, want 0x01", seed.SubFunction)
	}

	key := SecurityKeyRequest(1, []byte{0xAA, 0xBB})
	if key.SubFunction != 0x02 {
		t.Errorf("key sub-function for level 1 = 0x%02X, want 0x02", key.SubFunction)
	}
	if !bytes.Equal(key.Data, []byte{0xAA, 0xBB}) {
		t.Errorf("key data = % X, want AA BB", key.Data)
	}
}

func TestDecodePositiveResponse(t *testing.T) {
	frame := []byte{SIDReadDataByIdentifier.PositiveResponse(), 0xF1, 0x90, 'A', 'B'}
	resp, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if resp.Negative {
		t.Fatal("expected positive response")
	}
	if resp.Service != SIDReadDataByIdentifier {
		t.Errorf("Service = 0x%02X, want 0x%02X", resp.Service, SIDReadDataByIdentifier)
	}
	if !bytes.Equal(resp.Data, []byte{0xF1, 0x90, 'A', 'B'}) {
		t.Errorf("Data = % X", resp.Data)
	}
}

func TestDecodeNegativeResponse(t *testing.T) {
	frame := []byte{NegativeResponseSID, byte(SIDReadDataByIdentifier), byte(NRCBusyRepeatRequest)}
	resp, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !resp.Negative {
		t.Fatal("expected negative response")
	}
	if resp.Service != SIDReadDataByIdentifier {
		t.Errorf("Service = 0x%02X, want 0x%02X", resp.Service, SIDReadDataByIdentifier)
	}
	if resp.NRC != NRCBusyRepeatRequest {
		t.Errorf("NRC = 0x%02X, want 0x%02X", resp.NRC, NRCBusyRepeatRequest)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(nil); err == nil {
		t.Error("expected error decoding empty frame")
	}
	if _, err := Decode([]byte{NegativeResponseSID, byte(SIDReadDataByIdentifier)}); err == nil {
		t.Error("expected error decoding short negative response frame")
	}
}

func TestClearDiagnosticInfoRequestEncodesGroupAsThreeBytes(t *testing.T) {
	req := ClearDiagnosticInfoRequest(ClearAllDTCs)
	want := []byte{byte(SIDClearDiagnosticInfo), 0xFF, 0xFF, 0xFF}
	if !bytes.Equal(req.Encode(), want) {
		t.Fatalf("Encode() = % X, want % X", req.Encode(), want)
	}
}
