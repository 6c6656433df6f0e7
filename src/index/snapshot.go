// Package index manages the catalog of search indexes and the documents in them.
package index

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc64"
	"io"
	"math"
	"os"

	"gopkg.in/op/go-logging.v1"

	"github.com/scarab-search/scarab/src/fs"
	"github.com/scarab-search/scarab/src/scan"
)

var log = logging.MustGetLogger("index")

// SnapshotFileName is the name of the file-state snapshot within an index directory.
const SnapshotFileName = "snapshot.btlx"

// snapshotVersion is the current snapshot format version.
const snapshotVersion = 1

// snapshotMagic identifies a snapshot file.
var snapshotMagic = []byte("BTLX")

var crcTable = crc64.MakeTable(crc64.ECMA)

var (
	// ErrSnapshotMagic is returned when a snapshot doesn't start with the expected magic bytes.
	ErrSnapshotMagic = errors.New("bad snapshot magic")
	// ErrSnapshotVersion is returned for snapshot format versions we don't understand.
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
	// ErrSnapshotChecksum is returned when a snapshot fails checksum validation.
	ErrSnapshotChecksum = errors.New("snapshot checksum mismatch")
	// ErrSnapshotTruncated is returned when a snapshot ends prematurely.
	ErrSnapshotTruncated = errors.New("snapshot truncated")
)

// WriteSnapshot encodes the given file state to w.
// The layout is a fixed header (magic, version, entry count), the entries
// (size, mtime, path length, path) and a CRC64-ECMA trailer over everything
// before it. All integers are big-endian.
func WriteSnapshot(w io.Writer, files []scan.FileMeta) error {
	crc := crc64.New(crcTable)
	tee := io.MultiWriter(w, crc)
	if _, err := tee.Write(snapshotMagic); err != nil {
		return err
	}
	hdr := make([]byte, 8)
	binary.BigEndian.PutUint32(hdr[:4], snapshotVersion)
	binary.BigEndian.PutUint32(hdr[4:], uint32(len(files)))
	if _, err := tee.Write(hdr); err != nil {
		return err
	}
	entry := make([]byte, 18)
	for _, f := range files {
		if len(f.Path) > math.MaxUint16 {
			return fmt.Errorf("Path too long to snapshot: %s", f.Path)
		}
		binary.BigEndian.PutUint64(entry[:8], f.Size)
		binary.BigEndian.PutUint64(entry[8:16], f.ModTime)
		binary.BigEndian.PutUint16(entry[16:], uint16(len(f.Path)))
		if _, err := tee.Write(entry); err != nil {
			return err
		}
		if _, err := io.WriteString(tee, f.Path); err != nil {
			return err
		}
	}
	trailer := make([]byte, 8)
	binary.BigEndian.PutUint64(trailer, crc.Sum64())
	_, err := w.Write(trailer)
	return err
}

// ReadSnapshot decodes a file state previously written by WriteSnapshot.
func ReadSnapshot(r io.Reader) ([]scan.FileMeta, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(b) < 20 { // header + trailer
		return nil, ErrSnapshotTruncated
	}
	if !bytes.Equal(b[:4], snapshotMagic) {
		return nil, ErrSnapshotMagic
	}
	if v := binary.BigEndian.Uint32(b[4:8]); v != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, v)
	}
	body, trailer := b[:len(b)-8], b[len(b)-8:]
	if crc64.Checksum(body, crcTable) != binary.BigEndian.Uint64(trailer) {
		return nil, ErrSnapshotChecksum
	}
	count := binary.BigEndian.Uint32(b[8:12])
	end := len(b) - 8
	if int(count) > (end-12)/18 {
		return nil, ErrSnapshotTruncated
	}
	files := make([]scan.FileMeta, 0, count)
	off := 12
	for i := uint32(0); i < count; i++ {
		if off+18 > end {
			return nil, ErrSnapshotTruncated
		}
		size := binary.BigEndian.Uint64(b[off : off+8])
		mtime := binary.BigEndian.Uint64(b[off+8 : off+16])
		pathLen := int(binary.BigEndian.Uint16(b[off+16 : off+18]))
		off += 18
		if off+pathLen > end {
			return nil, ErrSnapshotTruncated
		}
		files = append(files, scan.FileMeta{Path: string(b[off : off+pathLen]), Size: size, ModTime: mtime})
		off += pathLen
	}
	if off != end {
		return nil, fmt.Errorf("snapshot has %d trailing bytes", end-off)
	}
	return files, nil
}

// SaveSnapshot atomically writes the file state to the given path.
func SaveSnapshot(filename string, files []scan.FileMeta) error {
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, files); err != nil {
		return err
	}
	return fs.WriteFile(&buf, filename, 0644)
}

// LoadSnapshot reads the file state from the given path.
// A missing file is not an error; it reads as the empty state so a first
// update simply indexes everything.
func LoadSnapshot(filename string) ([]scan.FileMeta, error) {
	f, err := os.Open(filename)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSnapshot(f)
}
