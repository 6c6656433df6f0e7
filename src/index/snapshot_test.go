package index

import (
	"bytes"
	"encoding/binary"
	"hash/crc64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scarab-search/scarab/src/scan"
)

var testFiles = []scan.FileMeta{
	{Path: "main.c", Size: 312, ModTime: 1700000000},
	{Path: "src/add.h", Size: 57, ModTime: 1700000300},
	{Path: "docs/naïve.md", Size: 9, ModTime: 1700000600},
}

func TestSnapshotRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSnapshot(&buf, testFiles)
	assert.NoError(t, err)
	files, err := ReadSnapshot(&buf)
	assert.NoError(t, err)
	assert.Equal(t, testFiles, files)
}

func TestSnapshotRoundTripEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSnapshot(&buf, nil)
	assert.NoError(t, err)
	files, err := ReadSnapshot(&buf)
	assert.NoError(t, err)
	assert.Empty(t, files)
}

func TestSnapshotHeader(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSnapshot(&buf, testFiles)
	assert.NoError(t, err)
	b := buf.Bytes()
	assert.Equal(t, []byte("BTLX"), b[:4])
	assert.EqualValues(t, 1, binary.BigEndian.Uint32(b[4:8]))
	assert.EqualValues(t, len(testFiles), binary.BigEndian.Uint32(b[8:12]))
}

func TestSnapshotBadMagic(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSnapshot(&buf, testFiles)
	assert.NoError(t, err)
	b := buf.Bytes()
	copy(b, "NOPE")
	_, err = ReadSnapshot(bytes.NewReader(b))
	assert.ErrorIs(t, err, ErrSnapshotMagic)
}

func TestSnapshotBadVersion(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSnapshot(&buf, testFiles)
	assert.NoError(t, err)
	b := buf.Bytes()
	binary.BigEndian.PutUint32(b[4:8], 42)
	_, err = ReadSnapshot(bytes.NewReader(b))
	assert.ErrorIs(t, err, ErrSnapshotVersion)
}

func TestSnapshotChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSnapshot(&buf, testFiles)
	assert.NoError(t, err)
	b := buf.Bytes()
	b[len(b)-9] ^= 0xff // last byte before the trailer
	_, err = ReadSnapshot(bytes.NewReader(b))
	assert.ErrorIs(t, err, ErrSnapshotChecksum)
}

func TestSnapshotTooShort(t *testing.T) {
	_, err := ReadSnapshot(bytes.NewReader([]byte("BTLX")))
	assert.ErrorIs(t, err, ErrSnapshotTruncated)
}

func TestSnapshotCountOverrunsData(t *testing.T) {
	// A header claiming three entries with none present, with a valid checksum
	// so the count check is what fails.
	body := make([]byte, 12)
	copy(body, "BTLX")
	binary.BigEndian.PutUint32(body[4:8], 1)
	binary.BigEndian.PutUint32(body[8:12], 3)
	trailer := make([]byte, 8)
	binary.BigEndian.PutUint64(trailer, crc64.Checksum(body, crc64.MakeTable(crc64.ECMA)))
	_, err := ReadSnapshot(bytes.NewReader(append(body, trailer...)))
	assert.ErrorIs(t, err, ErrSnapshotTruncated)
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	filename := filepath.Join(t.TempDir(), SnapshotFileName)
	err := SaveSnapshot(filename, testFiles)
	assert.NoError(t, err)
	files, err := LoadSnapshot(filename)
	assert.NoError(t, err)
	assert.Equal(t, testFiles, files)
}

func TestLoadMissingSnapshot(t *testing.T) {
	files, err := LoadSnapshot(filepath.Join(t.TempDir(), SnapshotFileName))
	assert.NoError(t, err)
	assert.Empty(t, files)
}

func TestLoadCorruptSnapshotFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), SnapshotFileName)
	err := os.WriteFile(filename, []byte("not a snapshot at all"), 0644)
	assert.NoError(t, err)
	_, err = LoadSnapshot(filename)
	assert.Error(t, err)
}
