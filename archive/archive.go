// Package archive is the generic binary-stream collaborator spec.md §6
// calls out: the FM-index core's serialize/load operations write through
// a Writer/Reader pair here rather than knowing about file formats
// themselves. Grounded on kanzi-go's internal/Magic.go convention of a
// four-byte magic header identifying a stream's format, and on its
// io.CompressedStream's trailing per-stream checksum.
package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/SGSSGene/fmindex-collection-sub003/fmerr"
)

// Magic identifies a stream produced by this package, the same role
// kanzi-go's KNZ_MAGIC plays for its own container format.
const Magic = 0x464D4958 // "FMIX"

// Version is bumped whenever the on-disk layout changes in a
// non-backward-compatible way; NewReader fails with fmerr.Corrupt on a
// mismatch. Bumped to 2 when the checksum trailer moved from a
// hand-ported XXHash64 to github.com/cespare/xxhash/v2.
const Version = 2

// packBits packs bits MSB-first, 8 per byte, the minimal encoding
// WriteBits/ReadBits need -- there is no streaming writer/reader
// abstraction here because every payload is already buffered in memory
// by WriteBytes/ReadBytes on either side.
func packBits(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

// unpackBits is packBits's inverse. count must not exceed len(packed)*8.
func unpackBits(packed []byte, count int) ([]bool, error) {
	if count < 0 || (count+7)/8 > len(packed) {
		return nil, fmerr.Wrapf(fmerr.Corrupt, "archive: bit count %d inconsistent with %d packed bytes", count, len(packed))
	}
	bits := make([]bool, count)
	for i := range bits {
		bits[i] = packed[i/8]&(1<<uint(7-i%8)) != 0
	}
	return bits, nil
}

// Writer serialises primitive values and bit sequences to an underlying
// io.Writer in the tagged format spec.md §6 describes.
type Writer struct {
	out  io.Writer
	this io.Writer // tees every post-header write into body, for Finish's checksum
	body bytes.Buffer
	err  error
}

// NewWriter wraps w and immediately writes the magic/version header.
func NewWriter(w io.Writer) (*Writer, error) {
	this := &Writer{out: w, this: w}
	this.writeUint32(Magic)
	this.writeUint32(Version)
	this.this = io.MultiWriter(w, &this.body)
	return this, this.err
}

// Finish appends an xxhash64 checksum of everything written since the
// header to the stream, the integrity-trailer role kanzi-go's
// io.CompressedStream gives its own per-block checksums. Call once after
// the last Write* call; Reader.Finish verifies it.
func (this *Writer) Finish() error {
	if this.err != nil {
		return this.err
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], xxhash.Sum64(this.body.Bytes()))
	_, this.err = this.out.Write(buf[:])
	return this.err
}

func (this *Writer) writeUint32(v uint32) {
	if this.err != nil {
		return
	}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, this.err = this.this.Write(buf[:])
}

// WriteInt writes v as a fixed-width 64-bit big-endian integer.
func (this *Writer) WriteInt(v int) error {
	if this.err != nil {
		return this.err
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	_, this.err = this.this.Write(buf[:])
	return this.err
}

// WriteBytes writes a length-prefixed byte slice.
func (this *Writer) WriteBytes(b []byte) error {
	if err := this.WriteInt(len(b)); err != nil {
		return err
	}
	if this.err != nil {
		return this.err
	}
	_, this.err = this.this.Write(b)
	return this.err
}

// WriteBits packs bits 8-to-a-byte and writes a length-prefixed payload.
func (this *Writer) WriteBits(bits []bool) error {
	if err := this.WriteInt(len(bits)); err != nil {
		return err
	}
	if this.err != nil {
		return this.err
	}
	return this.WriteBytes(packBits(bits))
}

// Err returns the first error encountered by any Write* call.
func (this *Writer) Err() error { return this.err }

// Reader deserialises a stream produced by Writer.
type Reader struct {
	in   io.Reader
	this io.Reader // tees every post-header read into body, for Finish's checksum
	body bytes.Buffer
	err  error
}

// NewReader wraps r and validates the magic/version header.
func NewReader(r io.Reader) (*Reader, error) {
	this := &Reader{in: r, this: r}
	magic := this.readUint32()
	version := this.readUint32()
	if this.err != nil {
		return nil, fmerr.Wrap(fmerr.Corrupt, "archive: truncated header")
	}
	if magic != Magic {
		return nil, fmerr.Wrapf(fmerr.Corrupt, "archive: bad magic %#x", magic)
	}
	if version != Version {
		return nil, fmerr.Wrapf(fmerr.Corrupt, "archive: unsupported version %d", version)
	}
	this.this = io.TeeReader(r, &this.body)
	return this, nil
}

// Finish reads the checksum trailer Writer.Finish appended and verifies
// it against everything read since the header. Call once after the last
// Read* call.
func (this *Reader) Finish() error {
	if this.err != nil {
		return this.err
	}
	var buf [8]byte
	if _, err := io.ReadFull(this.in, buf[:]); err != nil {
		this.err = fmt.Errorf("%w: %v", fmerr.Corrupt, err)
		return this.err
	}
	want := binary.BigEndian.Uint64(buf[:])

	if got := xxhash.Sum64(this.body.Bytes()); got != want {
		this.err = fmerr.Wrapf(fmerr.Corrupt, "archive: checksum mismatch (want %#x, got %#x)", want, got)
		return this.err
	}
	return nil
}

func (this *Reader) readUint32() uint32 {
	if this.err != nil {
		return 0
	}
	var buf [4]byte
	if _, err := io.ReadFull(this.this, buf[:]); err != nil {
		this.err = err
		return 0
	}
	return binary.BigEndian.Uint32(buf[:])
}

// ReadInt reads a value written by WriteInt.
func (this *Reader) ReadInt() (int, error) {
	if this.err != nil {
		return 0, this.err
	}
	var buf [8]byte
	if _, err := io.ReadFull(this.this, buf[:]); err != nil {
		this.err = fmt.Errorf("%w: %v", fmerr.Corrupt, err)
		return 0, this.err
	}
	return int(binary.BigEndian.Uint64(buf[:])), nil
}

// ReadBytes reads a value written by WriteBytes.
func (this *Reader) ReadBytes() ([]byte, error) {
	n, err := this.ReadInt()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(this.this, buf); err != nil {
		this.err = fmt.Errorf("%w: %v", fmerr.Corrupt, err)
		return nil, this.err
	}
	return buf, nil
}

// ReadBits reads a value written by WriteBits. n is accepted for symmetry
// with the csa.Source interface but the payload is self-describing;
// callers may pass 0 to trust the stored length.
func (this *Reader) ReadBits(n int) ([]bool, error) {
	count, err := this.ReadInt()
	if err != nil {
		return nil, err
	}
	packed, err := this.ReadBytes()
	if err != nil {
		return nil, err
	}

	bits, err := unpackBits(packed, count)
	if err != nil {
		this.err = err
		return nil, err
	}
	return bits, nil
}

// Err returns the first error encountered by any Read* call.
func (this *Reader) Err() error { return this.err }
