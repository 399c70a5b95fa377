// Package regsnapshot serializes a Type Registry's (tag, kind,
// formatterID) entries into a flat, restartable record, so a host process
// can persist or transmit the set of custom types an embedded target has
// registered without re-running registration logic on the other side.
// Formatter function values are never serialized; a formatterID is an
// index the receiving side resolves against its own formatter table, the
// same indirection dbflat uses for its vtable-addressed fields.
//
// Adapted from the teacher's pkg/dbflat: a fixed magic+version header
// followed by a vtable of fixed-width slots and a variable-length data
// blob, with an optional compression pass over the blob. dbflat's hot-
// bitmap partitioning, tag-walk traversal mode, and generic struct-
// reflection schema system are dropped here: a registry snapshot is one
// fixed record shape (an array of entries), not a general-purpose binary
// schema, so that machinery has no entries to partition or walk.
package regsnapshot

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/klauspost/compress/zstd"
)

const (
	// MagicV1 identifies a regsnapshot record, distinct from dbflat's own
	// magic so the two formats are never confused if both land on the same
	// wire.
	MagicV1 uint16 = 0x5253 // "RS"
	VersionV1 byte = 1

	// HeaderSize is the fixed byte length of Header once encoded: magic(2)
	// + version(1) + flags(1) + entryCount(2) + blobLen(4) + rawBlobLen(4).
	HeaderSize = 14

	// FlagCompressed marks the data blob as zstd-compressed; rawBlobLen then
	// holds the decompressed length and blobLen the on-wire length.
	FlagCompressed byte = 1 << 0
)

var (
	ErrBadMagic      = errors.New("regsnapshot: bad magic")
	ErrUnsupportedVersion = errors.New("regsnapshot: unsupported version")
	ErrTruncated     = errors.New("regsnapshot: truncated record")
)

// Header is the fixed-width prefix of an encoded snapshot.
type Header struct {
	Version    byte
	Flags      byte
	EntryCount uint16
	BlobLen    uint32 // length of the (possibly compressed) data blob
	RawBlobLen uint32 // decompressed length; equals BlobLen when not compressed
}

func (h Header) encode() []byte {
	out := make([]byte, HeaderSize)
	binary.BigEndian.PutUint16(out[0:2], MagicV1)
	out[2] = h.Version
	out[3] = h.Flags
	binary.BigEndian.PutUint16(out[4:6], h.EntryCount)
	binary.BigEndian.PutUint32(out[6:10], h.BlobLen)
	binary.BigEndian.PutUint32(out[10:14], h.RawBlobLen)
	return out
}

func parseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, ErrTruncated
	}
	if binary.BigEndian.Uint16(data[0:2]) != MagicV1 {
		return Header{}, ErrBadMagic
	}
	h := Header{
		Version:    data[2],
		Flags:      data[3],
		EntryCount: binary.BigEndian.Uint16(data[4:6]),
		BlobLen:    binary.BigEndian.Uint32(data[6:10]),
		RawBlobLen: binary.BigEndian.Uint32(data[10:14]),
	}
	if h.Version != VersionV1 {
		return Header{}, ErrUnsupportedVersion
	}
	return h, nil
}

// Entry is one registered type tag, ready for serialization. FormatterID
// is an opaque index the caller assigns; regsnapshot does not interpret it.
type Entry struct {
	Tag         string
	Kind        int32
	Flags       uint32
	FormatterID uint16
}

// vtable slot: tagOffset(2) + tagLen(1) + kind(4) + flags(4) + formatterID(2) = 13 bytes
const slotSize = 13

// Encode serializes entries into a flat record. When compress is true the
// data blob (vtable + tag bytes) is zstd-compressed before being written.
func Encode(entries []Entry, compress bool) ([]byte, error) {
	if len(entries) > 0xFFFF {
		return nil, errors.New("regsnapshot: too many entries")
	}

	var tagBlob bytes.Buffer
	vtable := make([]byte, len(entries)*slotSize)
	for i, e := range entries {
		if len(e.Tag) > 0xFF {
			return nil, errors.New("regsnapshot: tag too long")
		}
		off := tagBlob.Len()
		tagBlob.WriteString(e.Tag)

		slot := vtable[i*slotSize : (i+1)*slotSize]
		binary.BigEndian.PutUint16(slot[0:2], uint16(off))
		slot[2] = byte(len(e.Tag))
		binary.BigEndian.PutUint32(slot[3:7], uint32(e.Kind))
		binary.BigEndian.PutUint32(slot[7:11], e.Flags)
		binary.BigEndian.PutUint16(slot[11:13], e.FormatterID)
	}

	raw := append(vtable, tagBlob.Bytes()...)

	blob := raw
	flags := byte(0)
	if compress {
		compressed, err := compressBlob(raw)
		if err != nil {
			return nil, err
		}
		blob = compressed
		flags = FlagCompressed
	}

	h := Header{
		Version:    VersionV1,
		Flags:      flags,
		EntryCount: uint16(len(entries)),
		BlobLen:    uint32(len(blob)),
		RawBlobLen: uint32(len(raw)),
	}

	out := h.encode()
	out = append(out, blob...)
	return out, nil
}

// Decode parses a record produced by Encode.
func Decode(data []byte) ([]Entry, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	body := data[HeaderSize:]
	if uint32(len(body)) < h.BlobLen {
		return nil, ErrTruncated
	}
	blob := body[:h.BlobLen]

	raw := blob
	if h.Flags&FlagCompressed != 0 {
		decompressed, err := decompressBlob(blob, h.RawBlobLen)
		if err != nil {
			return nil, err
		}
		raw = decompressed
	}

	vtableLen := int(h.EntryCount) * slotSize
	if len(raw) < vtableLen {
		return nil, ErrTruncated
	}
	vtable := raw[:vtableLen]
	tagBlob := raw[vtableLen:]

	entries := make([]Entry, h.EntryCount)
	for i := range entries {
		slot := vtable[i*slotSize : (i+1)*slotSize]
		off := binary.BigEndian.Uint16(slot[0:2])
		tagLen := slot[2]
		if int(off)+int(tagLen) > len(tagBlob) {
			return nil, ErrTruncated
		}
		entries[i] = Entry{
			Tag:         string(tagBlob[off : off+uint16(tagLen)]),
			Kind:        int32(binary.BigEndian.Uint32(slot[3:7])),
			Flags:       binary.BigEndian.Uint32(slot[7:11]),
			FormatterID: binary.BigEndian.Uint16(slot[11:13]),
		}
	}
	return entries, nil
}

func compressBlob(raw []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

func decompressBlob(compressed []byte, rawLen uint32) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(compressed, make([]byte, 0, rawLen))
	if err != nil {
		return nil, err
	}
	return out, nil
}
