package uds

import (
	"encoding/binary"
	"fmt"
)

// DataIdentifier is a 16-bit UDS data identifier (ISO 14229-1 Annex C).
type DataIdentifier uint16

// Well-known data identifiers used by ReadDataByIdentifier /
// WriteDataByIdentifier.
const (
	DIDVIN                DataIdentifier = 0xF190
	DIDECUSerialNumber    DataIdentifier = 0xF18C
	DIDECUHardwareVersion DataIdentifier = 0xF191
	DIDECUSoftwareVersion DataIdentifier = 0xF194
	DIDManufacturingDate  DataIdentifier = 0xF18B
	DIDSystemSupplierID   DataIdentifier = 0xF18A
)

// Request is a single outbound UDS request.
type Request struct {
	Service     ServiceID
	SubFunction byte
	HasSubFn    bool
	Data        []byte
}

// Encode serialises the request to the wire format: SID, optional
// sub-function, then the raw parameter bytes.
func (r *Request) Encode() []byte {
	out := make([]byte, 0, 2+len(r.Data))
	out = append(out, byte(r.Service))
	if r.HasSubFn {
		out = append(out, r.SubFunction)
	}
	out = append(out, r.Data...)
	return out
}

// ReadDataByIdentifierRequest builds a ReadDataByIdentifier request for
// a single DID.
func ReadDataByIdentifierRequest(did DataIdentifier) *Request {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, uint16(did))
	return &Request{Service: SIDReadDataByIdentifier, Data: buf}
}

// WriteDataByIdentifierRequest builds a WriteDataByIdentifier request
// carrying the DID followed by its new raw value.
func WriteDataByIdentifierRequest(did DataIdentifier, value []byte) *Request {
	buf := make([]byte, 2+len(value))
	binary.BigEndian.PutUint16(buf, uint16(did))
	copy(buf[2:], value)
	return &Request{Service: SIDWriteDataByIdentifier, Data: buf}
}

// SessionControlRequest builds a DiagnosticSessionControl request.
func SessionControlRequest(session DiagnosticSessionType) *Request {
	return &Request{Service: SIDDiagnosticSessionControl, HasSubFn: true, SubFunction: byte(session)}
}

// ECUResetRequest builds an ECUReset request.
func ECUResetRequest(reset ECUResetType) *Request {
	return &Request{Service: SIDECUReset, HasSubFn: true, SubFunction: byte(reset)}
}

// SecuritySeedRequest builds the seed half of the security access
// handshake for the given level. Per ISO 14229-1, the request-seed
// sub-function is 2*level-1.
func SecuritySeedRequest(level byte) *Request {
	return &Request{Service: SIDSecurityAccess, HasSubFn: true, SubFunction: 2*level - 1}
}

// SecurityKeyRequest builds the key half of the handshake. The
// send-key sub-function is 2*level.
func SecurityKeyRequest(level byte, key []byte) *Request {
	return &Request{Service: SIDSecurityAccess, HasSubFn: true, SubFunction: 2 * level, Data: key}
}

// RoutineControlRequest builds a RoutineControl request.
func RoutineControlRequest(kind RoutineControlType, routineID uint16, data []byte) *Request {
	buf := make([]byte, 2+len(data))
	binary.BigEndian.PutUint16(buf, routineID)
	copy(buf[2:], data)
	return &Request{Service: SIDRoutineControl, HasSubFn: true, SubFunction: byte(kind), Data: buf}
}

// ReadDTCByStatusMaskRequest builds a ReadDTCInformation request
// filtering by the given status mask.
func ReadDTCByStatusMaskRequest(statusMask byte) *Request {
	return &Request{Service: SIDReadDTCInformation, HasSubFn: true, SubFunction: DTCSubFunctionReportByStatusMask, Data: []byte{statusMask}}
}

// ReadDTCSnapshotRequest builds a ReadDTCInformation request for freeze
// frame data of a specific DTC.
func ReadDTCSnapshotRequest(dtc [3]byte, recordNumber byte) *Request {
	return &Request{Service: SIDReadDTCInformation, HasSubFn: true, SubFunction: DTCSubFunctionReportSnapshot,
		Data: []byte{dtc[0], dtc[1], dtc[2], recordNumber}}
}

// ClearDiagnosticInfoRequest builds a ClearDiagnosticInformation
// request for the given DTC group (ClearAllDTCs clears everything).
func ClearDiagnosticInfoRequest(group uint32) *Request {
	buf := []byte{byte(group >> 16), byte(group >> 8), byte(group)}
	return &Request{Service: SIDClearDiagnosticInfo, Data: buf}
}

// Response is a decoded UDS response frame, positive or negative.
type Response struct {
	Service  ServiceID
	Negative bool
	NRC      NegativeResponseCode
	Data     []byte
}

// Decode parses a raw response frame. A leading 0x7F marks a negative
// response: byte 1 echoes the request SID, byte 2 is the NRC. Any
// other leading byte is treated as the positive response SID
// (request SID + 0x40).
func Decode(frame []byte) (*Response, error) {
	if len(frame) == 0 {
		return nil, fmt.Errorf("uds: empty response frame")
	}

	if frame[0] == NegativeResponseSID {
		if len(frame) < 3 {
			return nil, fmt.Errorf("uds: negative response frame too short: %d bytes", len(frame))
		}
		return &Response{
			Service:  ServiceID(frame[1]),
			Negative: true,
			NRC:      ParseNRC(frame[2]),
		}, nil
	}

	return &Response{
		Service: ServiceID(frame[0] - 0x40),
		Data:    frame[1:],
	}, nil
}
