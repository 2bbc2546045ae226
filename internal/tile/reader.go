package tile

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Config is the header of an encoded tile.
type Config struct {
	Width, Height int
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r   io.Reader
	cfg Config
	t   *Tile
}

func (d *decoder) readHeader() error {
	var hdr [headerSize]byte
	if err := readFull(d.r, hdr[:]); err != nil {
		return err
	}
	d.cfg = Config{
		Width:  int(binary.LittleEndian.Uint16(hdr[0:])),
		Height: int(binary.LittleEndian.Uint16(hdr[2:])),
	}
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	if configOnly {
		return nil
	}

	d.t = New(d.cfg.Width, d.cfg.Height)

	row := make([]byte, sampleSize*d.cfg.Width)
	for y := 0; y < d.cfg.Height; y++ {
		if err := readFull(d.r, row); err != nil {
			if err != io.ErrUnexpectedEOF {
				return err
			}
			return errNotEnough
		}
		codes := d.t.Row(y)
		for x := range codes {
			codes[x] = binary.LittleEndian.Uint16(row[sampleSize*x:])
		}
	}

	// ReadFull retries empty reads until it sees a byte or EOF
	var tmp [1]byte
	switch _, err := io.ReadFull(r, tmp[:]); err {
	case io.EOF:
		return nil
	case nil:
		return errTooMuch
	default:
		return err
	}
}

// Decode reads a binary tile from r. The whole of r must be consumed by the
// tile.
func Decode(r io.Reader) (*Tile, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.t, nil
}

// DecodeConfig returns the dimensions of a binary tile without decoding
// its samples.
func DecodeConfig(r io.Reader) (Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return Config{}, err
	}
	return d.cfg, nil
}

// UnmarshalBinary decodes the tile from binary form.
func (t *Tile) UnmarshalBinary(b []byte) error {
	dec, err := Decode(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*t = *dec
	return nil
}
