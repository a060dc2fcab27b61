package bctk

import "encoding/binary"

// BOM values as they appear on the wire. 0xFEFF decodes as little-endian when
// the two bytes are read in file order; 0xFFFE decodes as big-endian.
const (
	BomLittleEndian uint16 = 0xFEFF
	BomBigEndian    uint16 = 0xFFFE
)

// OrderFromBOM resolves a byte order from the raw BOM field, read as a
// little-endian uint16 regardless of the container's actual order (the
// order isn't known yet — that's what this function determines). A
// container always stores the conceptual marker value BomLittleEndian
// (0xFEFF) using its own order; read through a fixed little-endian probe,
// that comes back as BomLittleEndian if the file is little-endian, or
// BomBigEndian if the file is big-endian (the byte-swapped pattern).
func OrderFromBOM(bom uint16) (binary.ByteOrder, error) {
	switch bom {
	case BomLittleEndian:
		return binary.LittleEndian, nil
	case BomBigEndian:
		return binary.BigEndian, nil
	default:
		return nil, ErrBadBom
	}
}

// SniffBOM reads the 2-byte BOM field at buf[offset:offset+2] and resolves
// the container's byte order. Use this once, before constructing a Cursor,
// since the order isn't known until the BOM is read.
func SniffBOM(buf []byte, offset int) (binary.ByteOrder, error) {
	if offset < 0 || offset+2 > len(buf) {
		return nil, ErrOutOfBounds
	}
	return OrderFromBOM(binary.LittleEndian.Uint16(buf[offset : offset+2]))
}

// Cursor reads structured fields from a byte buffer under a fixed endian order.
// It never grows or copies the buffer; reads past the end return ErrOutOfBounds.
type Cursor struct {
	buf   []byte
	pos   int
	order binary.ByteOrder
}

// NewCursor wraps buf for reading under order, starting at position 0.
func NewCursor(buf []byte, order binary.ByteOrder) *Cursor {
	return &Cursor{buf: buf, order: order}
}

// Len returns the total buffer length.
func (c *Cursor) Len() int { return len(c.buf) }

// Pos returns the current read position.
func (c *Cursor) Pos() int { return c.pos }

// Order returns the cursor's byte order.
func (c *Cursor) Order() binary.ByteOrder { return c.order }

// Bytes returns the underlying buffer.
func (c *Cursor) Bytes() []byte { return c.buf }

// SeekAbs moves the cursor to an absolute position.
func (c *Cursor) SeekAbs(pos int) error {
	if pos < 0 || pos > len(c.buf) {
		return ErrOutOfBounds
	}
	c.pos = pos
	return nil
}

func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, ErrOutOfBounds
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadBytes reads n raw bytes and advances the cursor.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	return c.take(n)
}

// PeekBytes reads n raw bytes at the current position without advancing.
func (c *Cursor) PeekBytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, ErrOutOfBounds
	}
	return c.buf[c.pos : c.pos+n], nil
}

// ReadU8 reads an unsigned 8-bit integer.
func (c *Cursor) ReadU8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI8 reads a signed 8-bit integer.
func (c *Cursor) ReadI8() (int8, error) {
	v, err := c.ReadU8()
	return int8(v), err
}

// ReadU16 reads an unsigned 16-bit integer in the cursor's order.
func (c *Cursor) ReadU16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return c.order.Uint16(b), nil
}

// ReadU32 reads an unsigned 32-bit integer in the cursor's order.
func (c *Cursor) ReadU32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return c.order.Uint32(b), nil
}

// ReadU64 reads an unsigned 64-bit integer in the cursor's order.
func (c *Cursor) ReadU64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return c.order.Uint64(b), nil
}

// ReadMagic reads a raw 4-byte tag (no endian conversion — tag names are byte-literal).
func (c *Cursor) ReadMagic() (string, error) {
	b, err := c.take(4)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Writer builds a byte buffer under a fixed endian order, supporting
// back-patching at absolute positions already written.
type Writer struct {
	buf   []byte
	order binary.ByteOrder
}

// NewWriter creates an empty Writer under order.
func NewWriter(order binary.ByteOrder) *Writer {
	return &Writer{order: order}
}

// Order returns the writer's byte order.
func (w *Writer) Order() binary.ByteOrder { return w.order }

// Pos returns the current write position (== number of bytes written so far).
func (w *Writer) Pos() int { return len(w.buf) }

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(b []byte) { w.buf = append(w.buf, b...) }

// WriteMagic appends a 4-byte tag verbatim.
func (w *Writer) WriteMagic(tag string) { w.buf = append(w.buf, tag...) }

// WriteU8 appends an unsigned 8-bit integer.
func (w *Writer) WriteU8(v uint8) { w.buf = append(w.buf, v) }

// WriteI8 appends a signed 8-bit integer.
func (w *Writer) WriteI8(v int8) { w.buf = append(w.buf, byte(v)) }

// WriteU16 appends an unsigned 16-bit integer in the writer's order.
func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	w.order.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteU32 appends an unsigned 32-bit integer in the writer's order.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteU64 appends an unsigned 64-bit integer in the writer's order.
func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	w.order.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WritePad appends n zero bytes.
func (w *Writer) WritePad(n int) {
	for i := 0; i < n; i++ {
		w.buf = append(w.buf, 0)
	}
}

// WritePadByte appends n bytes of value v.
func (w *Writer) WritePadByte(n int, v byte) {
	for i := 0; i < n; i++ {
		w.buf = append(w.buf, v)
	}
}

// PatchU16At overwrites 2 bytes at an absolute position already written, without
// disturbing the logical write position.
func (w *Writer) PatchU16At(pos int, v uint16) {
	var b [2]byte
	w.order.PutUint16(b[:], v)
	copy(w.buf[pos:pos+2], b[:])
}

// PatchU32At overwrites 4 bytes at an absolute position already written, without
// disturbing the logical write position.
func (w *Writer) PatchU32At(pos int, v uint32) {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	copy(w.buf[pos:pos+4], b[:])
}
