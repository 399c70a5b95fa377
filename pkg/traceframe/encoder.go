package traceframe

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
)

// Encode serializes payload (raw bytes written by fmtlib.Format)
// into a DataFrame. offsets, if non-empty, is written ahead of payload,
// prefixed with its own entry count, and FlagHasOffsetTable is set.
//
// Wire shape: [preamble(3)] [flags(1)] [length(4)] [offset count(2) + offset table]? [payload] [crc32(4)]
// length counts everything between the length field and the crc trailer.
func (f *DataFrame) Encode(payload []byte, offsets []uint32) []byte {
	var buf bytes.Buffer
	writePreamble(&buf, TypeData)

	var flags byte
	if len(offsets) > 0 {
		flags = FlagHasOffsetTable
	}
	buf.WriteByte(flags)

	body := make([]byte, 0, 2+len(offsets)*4+len(payload))
	if len(offsets) > 0 {
		var countField [2]byte
		binary.BigEndian.PutUint16(countField[:], uint16(len(offsets)))
		body = append(body, countField[:]...)
		for _, off := range offsets {
			var tmp [4]byte
			binary.BigEndian.PutUint32(tmp[:], off)
			body = append(body, tmp[:]...)
		}
	}
	body = append(body, payload...)

	var lenField [4]byte
	binary.BigEndian.PutUint32(lenField[:], uint32(len(body)))
	buf.Write(lenField[:])
	buf.Write(body)

	out := buf.Bytes()
	crc := crc32.ChecksumIEEE(out[3:])
	var crcField [4]byte
	binary.BigEndian.PutUint32(crcField[:], crc)
	return append(out, crcField[:]...)
}

// Encode serializes an ErrorFrame carrying a one-byte error code
// and free-form diagnostic text.
func (f *ErrorFrame) Encode(code byte, message string) []byte {
	var buf bytes.Buffer
	writePreamble(&buf, TypeError)
	buf.WriteByte(0) // flags reserved, always zero for ErrorFrame

	body := append([]byte{code}, []byte(message)...)

	var lenField [4]byte
	binary.BigEndian.PutUint32(lenField[:], uint32(len(body)))
	buf.Write(lenField[:])
	buf.Write(body)

	out := buf.Bytes()
	crc := crc32.ChecksumIEEE(out[3:])
	var crcField [4]byte
	binary.BigEndian.PutUint32(crcField[:], crc)
	return append(out, crcField[:]...)
}

// Encode serializes a HandshakeFrame.
func (f *HandshakeFrame) Encode() []byte {
	var buf bytes.Buffer
	writePreamble(&buf, TypeHandshake)
	buf.WriteByte(0)

	body := make([]byte, 0, 8+len(f.AlgCodes))
	var versionField [4]byte
	binary.BigEndian.PutUint32(versionField[:], f.VersionMask)
	body = append(body, versionField[:]...)
	var mtuField, timeoutField [2]byte
	binary.BigEndian.PutUint16(mtuField[:], f.MTU)
	binary.BigEndian.PutUint16(timeoutField[:], f.TimeoutMS)
	body = append(body, mtuField[:]...)
	body = append(body, timeoutField[:]...)
	body = append(body, f.AlgCodes...)

	var lenField [4]byte
	binary.BigEndian.PutUint32(lenField[:], uint32(len(body)))
	buf.Write(lenField[:])
	buf.Write(body)

	out := buf.Bytes()
	crc := crc32.ChecksumIEEE(out[3:])
	var crcField [4]byte
	binary.BigEndian.PutUint32(crcField[:], crc)
	return append(out, crcField[:]...)
}
