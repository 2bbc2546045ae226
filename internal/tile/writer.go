package tile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(t *Tile) error {
	var hdr [headerSize]byte
	binary.LittleEndian.PutUint16(hdr[0:], uint16(t.Width))
	binary.LittleEndian.PutUint16(hdr[2:], uint16(t.Height))

	if _, err := e.w.Write(hdr[:]); err != nil {
		return err
	}

	// One row at a time keeps the scratch buffer small for large tiles
	row := make([]byte, sampleSize*t.Width)
	for y := 0; y < t.Height; y++ {
		for x, c := range t.Row(y) {
			binary.LittleEndian.PutUint16(row[sampleSize*x:], c)
		}
		if _, err := e.w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes t to w in binary tile format.
func Encode(w io.Writer, t *Tile) error {
	if err := checkEdges(t.Width, t.Height); err != nil {
		return err
	}
	if len(t.Codes) != t.Width*t.Height {
		return fmt.Errorf("tile: %d codes for %dx%d", len(t.Codes), t.Width, t.Height)
	}

	e := encoder{w: w}

	return e.encode(t)
}

// MarshalBinary encodes the tile into binary form and returns the result.
func (t *Tile) MarshalBinary() ([]byte, error) {
	b := bytes.NewBuffer(make([]byte, 0, Size(t.Width, t.Height)))
	if err := Encode(b, t); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
