package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/image/riff"
)

/*
typedef struct tagLOGPALETTE {
  WORD         palVersion;
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1];
} LOGPALETTE;

typedef struct tagPALETTEENTRY {
  BYTE peRed;
  BYTE peGreen;
  BYTE peBlue;
  BYTE peFlags;
} PALETTEENTRY;
*/

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
	capType  = riff.FourCC{'c', 'a', 'p', ' '}
)

const (
	palVersion = 3

	// maxStoredCapacity bounds the capacity accepted from a cap chunk.
	maxStoredCapacity = 1 << 24
)

// palFile is the content of a PAL stream. capacity is zero when the stream
// carries no cap chunk.
type palFile struct {
	entries  [][3]byte
	capacity int
}

// ReadTable loads every entry of a PAL stream into a new table. The table
// gets the capacity stored in the stream, or the next power of two that holds
// all entries when the stream has none.
func ReadTable(r io.Reader) (*Table, error) {
	pf, err := readEntries(r)
	if err != nil {
		return nil, err
	}

	size := pf.capacity
	if size == 0 {
		size = NextPowerOfTwo(len(pf.entries))
	}
	t, err := New(size)
	if err != nil {
		return nil, fmt.Errorf("could not create table: %w", err)
	}
	for i, e := range pf.entries {
		if err := t.Add(int(e[0]), int(e[1]), int(e[2])); err != nil {
			return nil, fmt.Errorf("could not add color %d: %w", i, err)
		}
	}

	return t, nil
}

// ReadRIFF appends the entries of a PAL stream to t. Entries past the table's
// capacity are reported as ErrCapacityExceeded; the ones that fit stay added.
// A stored capacity is ignored.
func (t *Table) ReadRIFF(r io.Reader) (int64, error) {
	pf, err := readEntries(r)
	if err != nil {
		return 0, fmt.Errorf("could not load palettes: %w", err)
	}
	entries := pf.entries

	var n int64
	for i, e := range entries {
		if err := t.Add(int(e[0]), int(e[1]), int(e[2])); err != nil {
			return n, fmt.Errorf("could not add color %d/%d: %w", i, len(entries), err)
		}
		n++
	}

	return n, nil
}

// WriteRIFF writes the table as a PAL stream holding its capacity and a single
// data chunk, and returns the number of colors written.
func (t *Table) WriteRIFF(w io.Writer) (int64, error) {
	n := 4 + 4 + 4 + 4 // form type + cap chunk id + cap chunk size + capacity
	n += 4 + 4 + 4 + len(t.colours)*4 // chunk id + chunk size + palVersion + palNumEntries + 4 bytes/color

	if err := writeBytes(w, riffType[:]); err != nil {
		return 0, fmt.Errorf("could not write RIFF magic: %w", err)
	}

	if err := writeBytes(w, binary.LittleEndian.AppendUint32(nil, uint32(n))); err != nil {
		return 0, fmt.Errorf("could not write document size: %w", err)
	}

	if err := writeBytes(w, palType[:]); err != nil {
		return 0, fmt.Errorf("could not write content type: %w", err)
	}

	if err := writeCapChunk(w, t.capacity); err != nil {
		return 0, fmt.Errorf("could not save capacity: %w", err)
	}

	count, err := writeChunk(w, t.colours)
	if err != nil {
		return count, fmt.Errorf("could not save palette: %w", err)
	}
	return count, nil
}

func readEntries(r io.Reader) (palFile, error) {
	var pf palFile

	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return pf, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return pf, fmt.Errorf("unsupported RIFF content type: %s", string(formType[:]))
	}

	err = readChunks(rd, string(formType[:]), &pf)
	return pf, err
}

func readChunks(r *riff.Reader, ident string, pf *palFile) error {
	for chunk := 0; ; chunk++ {
		id, size, data, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("could not read chunk %q#%d: %w", ident, chunk, err)
		}

		switch id {
		case riff.LIST:
			listType, list, lerr := riff.NewListReader(size, data)
			if lerr != nil {
				return fmt.Errorf("could not read list from chunk %q#%d: %w", ident, chunk, lerr)
			} else if listType != palType {
				return fmt.Errorf("chunk %q#%d unsupported type: %s", ident, chunk, string(listType[:]))
			}

			if lerr := readChunks(list, fmt.Sprintf("%s%d.%s", ident, chunk, listType[:]), pf); lerr != nil {
				return lerr
			}
		case capType:
			capacity, err := readCapChunk(data, size, fmt.Sprintf("%s%d", ident, chunk))
			if err != nil {
				return err
			}
			pf.capacity = capacity
		case dataType:
			entries, err := readChunk(data, fmt.Sprintf("%s%d", ident, chunk))
			if err != nil {
				return err
			}
			pf.entries = append(pf.entries, entries...)
		default:
			return fmt.Errorf("unsupported chunk type in %q#%d: %s", ident, chunk, id[:])
		}
	}
}

func readCapChunk(r io.Reader, size uint32, ident string) (int, error) {
	if size != 4 {
		return 0, fmt.Errorf("invalid capacity chunk size in %s: %d", ident, size)
	}

	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, fmt.Errorf("could not read capacity from chunk %s: %w", ident, err)
	}

	capacity := binary.LittleEndian.Uint32(buf)
	if capacity == 0 || capacity > maxStoredCapacity {
		return 0, fmt.Errorf("%w: capacity %d in chunk %s", ErrInvalidConfiguration, capacity, ident)
	}
	return int(capacity), nil
}

func readChunk(r io.Reader, ident string) ([][3]byte, error) {
	buf := make([]byte, 2)

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read version from chunk %s: %w", ident, err)
	}

	ver := binary.BigEndian.Uint16(buf)
	if ver != palVersion {
		return nil, fmt.Errorf("unsupported palette version in chunk %s: %d", ident, ver)
	}

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read number of entries from chunk %s: %w", ident, err)
	}

	count := binary.LittleEndian.Uint16(buf)
	res := make([][3]byte, 0, count)
	buf4 := make([]byte, 4)
	for i := range count {
		if _, err := io.ReadFull(r, buf4); err != nil {
			return res, fmt.Errorf("could not read color %d/%d from chunk %s: %w", i, count, ident, err)
		}

		res = append(res, [3]byte{buf4[0], buf4[1], buf4[2]})
	}

	return res, nil
}

func writeCapChunk(w io.Writer, capacity int) error {
	if err := writeBytes(w, capType[:]); err != nil {
		return fmt.Errorf("could not write type: %w", err)
	}

	if err := writeBytes(w, binary.LittleEndian.AppendUint32(nil, 4)); err != nil {
		return fmt.Errorf("could not write chunk size: %w", err)
	}

	if err := writeBytes(w, binary.LittleEndian.AppendUint32(nil, uint32(capacity))); err != nil {
		return fmt.Errorf("could not write capacity: %w", err)
	}
	return nil
}

func writeChunk(w io.Writer, colours []Colour) (int64, error) {
	if len(colours) > 0xffff {
		return 0, fmt.Errorf("too many colors for a single chunk: %d", len(colours))
	}

	if err := writeBytes(w, dataType[:]); err != nil {
		return 0, fmt.Errorf("could not write type: %w", err)
	}

	n := 4 + len(colours)*4
	if err := writeBytes(w, binary.LittleEndian.AppendUint32(nil, uint32(n))); err != nil {
		return 0, fmt.Errorf("could not write chunk size: %w", err)
	}

	if err := writeBytes(w, binary.BigEndian.AppendUint16(nil, palVersion)); err != nil {
		return 0, fmt.Errorf("could not write palette version: %w", err)
	}

	if err := writeBytes(w, binary.LittleEndian.AppendUint16(nil, uint16(len(colours)))); err != nil {
		return 0, fmt.Errorf("could not write number of colors: %w", err)
	}

	for i, c := range colours {
		if err := writeBytes(w, []byte{c.R(), c.G(), c.B(), 0x00}); err != nil {
			return int64(i), fmt.Errorf("could not write color %d/%d: %w", i, len(colours), err)
		}
	}

	return int64(len(colours)), nil
}

func writeBytes(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	} else if n != len(b) {
		return fmt.Errorf("wrote only %d/%d bytes", n, len(b))
	}

	return nil
}
