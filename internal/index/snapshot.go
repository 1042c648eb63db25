package index

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"

	"ragcore/internal/domain"
)

// Snapshot layout: a binary vector blob plus a JSON metadata list, always
// written and read as a pair. The blob carries a fixed header, the raw
// little-endian float32 rows and a CRC32 (IEEE) trailer over header and
// data. The metadata file holds one record per row in the same order.

const (
	blobMagic   uint32 = 0x52474331 // "RGC1"
	blobVersion uint32 = 1
)

var (
	errBadMagic   = errors.New("invalid magic number")
	errBadVersion = errors.New("unsupported snapshot version")
	errChecksum   = errors.New("checksum mismatch")
)

type blobHeader struct {
	Magic     uint32
	Version   uint32
	Dimension uint32
	Rows      uint64
}

// Save writes both artifacts from a snapshot of the current rows. Each file
// is written to a temp path in its target directory and renamed into place,
// so a crash mid-write never publishes a half-written artifact.
func (f *Flat) Save(indexPath, metaPath string) error {
	rows := f.Len()

	if err := writeAtomic(indexPath, func(w io.Writer) error {
		return f.writeBlob(w, rows)
	}); err != nil {
		return &domain.PersistenceError{Path: indexPath, Err: err}
	}

	if err := writeAtomic(metaPath, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		return enc.Encode(f.records[:rows])
	}); err != nil {
		return &domain.PersistenceError{Path: metaPath, Err: err}
	}

	f.logger.Info("snapshot saved", "index", indexPath, "metadata", metaPath, "rows", rows)
	return nil
}

// Load replaces the index state wholesale with a persisted pair. Both
// artifacts are decoded and cross-checked before anything is swapped in, so
// a corrupt or mismatched pair leaves the prior state intact. A missing
// artifact yields domain.ErrSnapshotMissing.
func (f *Flat) Load(indexPath, metaPath string) error {
	if _, err := os.Stat(indexPath); os.IsNotExist(err) {
		return domain.ErrSnapshotMissing
	}
	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		return domain.ErrSnapshotMissing
	}

	vectors, rows, err := f.readBlob(indexPath)
	if err != nil {
		return &domain.PersistenceError{Path: indexPath, Err: err}
	}

	data, err := os.ReadFile(metaPath)
	if err != nil {
		return &domain.PersistenceError{Path: metaPath, Err: err}
	}
	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return &domain.PersistenceError{Path: metaPath, Err: err}
	}

	if len(records) != rows {
		return &domain.PersistenceError{
			Path: metaPath,
			Err:  fmt.Errorf("row count mismatch: blob has %d rows, metadata has %d", rows, len(records)),
		}
	}

	f.vectors = vectors
	f.records = records
	f.logger.Info("snapshot loaded", "index", indexPath, "rows", rows)
	return nil
}

func (f *Flat) writeBlob(w io.Writer, rows int) error {
	crc := crc32.NewIEEE()
	out := io.MultiWriter(w, crc)

	header := blobHeader{
		Magic:     blobMagic,
		Version:   blobVersion,
		Dimension: uint32(f.dimension),
		Rows:      uint64(rows),
	}
	if err := binary.Write(out, binary.LittleEndian, header); err != nil {
		return err
	}
	if err := binary.Write(out, binary.LittleEndian, f.vectors[:rows*f.dimension]); err != nil {
		return err
	}
	// Trailer is excluded from its own checksum.
	return binary.Write(w, binary.LittleEndian, crc.Sum32())
}

func (f *Flat) readBlob(path string) ([]float32, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	if len(data) < binary.Size(blobHeader{})+4 {
		return nil, 0, fmt.Errorf("blob truncated: %d bytes", len(data))
	}

	payload := data[:len(data)-4]
	stored := binary.LittleEndian.Uint32(data[len(data)-4:])
	if crc32.ChecksumIEEE(payload) != stored {
		return nil, 0, errChecksum
	}

	r := bytes.NewReader(payload)
	var header blobHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, 0, err
	}
	if header.Magic != blobMagic {
		return nil, 0, errBadMagic
	}
	if header.Version != blobVersion {
		return nil, 0, fmt.Errorf("%w: %d", errBadVersion, header.Version)
	}
	if int(header.Dimension) != f.dimension {
		return nil, 0, &domain.DimensionMismatchError{Expected: f.dimension, Got: int(header.Dimension)}
	}

	vectors := make([]float32, int(header.Rows)*f.dimension)
	if err := binary.Read(r, binary.LittleEndian, vectors); err != nil {
		return nil, 0, err
	}
	if r.Len() != 0 {
		return nil, 0, fmt.Errorf("blob has %d trailing bytes", r.Len())
	}

	return vectors, int(header.Rows), nil
}

// writeAtomic writes through a temp file in the target directory and
// publishes it with a rename.
func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	w := bufio.NewWriter(tmp)
	if err := write(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
