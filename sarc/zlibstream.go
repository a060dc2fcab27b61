package sarc

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
)

// No third-party deflate implementation in the pack speaks this container's
// exact wire shape (a bare zlib stream, Adler32 trailer included), so the
// wrap is handled with the standard library's compress/zlib directly.

// readChunkSize is the most decompressed bytes DecodeZlib reads from the
// inflater per step, mirroring original_source/sarc.py's READ_AMOUNT.
const readChunkSize = 1024

// DecodeZlib reads a zlib-wrapped SARC stream: a 4-byte big-endian
// uncompressed size followed by a raw zlib stream of the archive bytes. The
// decompressed bytes are fed through a Decoder in fixed-size chunks, so an
// archive arriving over a slow or chunked transport decodes without ever
// buffering the whole thing at once.
func DecodeZlib(r io.Reader, onFile func(File) error) error {
	var sizeBuf [4]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return err
	}
	_ = binary.BigEndian.Uint32(sizeBuf[:]) // declared size, informational only

	zr, err := zlib.NewReader(r)
	if err != nil {
		return err
	}
	defer zr.Close()

	dec := NewDecoder(onFile)
	buf := make([]byte, readChunkSize)
	for {
		n, err := zr.Read(buf)
		if n > 0 {
			if feedErr := dec.Feed(buf[:n]); feedErr != nil {
				return feedErr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// EncodeOptions controls zlib transport encoding. CompressionLevel mirrors
// the original encoder's compression_level constructor argument.
type EncodeOptions struct {
	// CompressionLevel is a compress/zlib level (1-9, or -1/-2 for the
	// package's built-in constants). Zero value resolves to 6, the
	// original's default, so compress/zlib's NoCompression cannot be chosen.
	CompressionLevel int
}

// EncodeZlib wraps a fully-built SARC archive (as produced by Encode) in the
// zlib transport at the default compression level: a 4-byte big-endian
// uncompressed size, then a raw zlib stream of archive.
func EncodeZlib(archive []byte) ([]byte, error) {
	return EncodeZlibWithOptions(archive, EncodeOptions{})
}

// EncodeZlibWithOptions is EncodeZlib with an explicit CompressionLevel.
func EncodeZlibWithOptions(archive []byte, opts EncodeOptions) ([]byte, error) {
	level := opts.CompressionLevel
	if level == 0 {
		level = zlib.DefaultCompression // original default, level 6
	}

	var out bytes.Buffer
	var sizeBuf [4]byte
	binary.BigEndian.PutUint32(sizeBuf[:], uint32(len(archive)))
	out.Write(sizeBuf[:])

	zw, err := zlib.NewWriterLevel(&out, level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(archive); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
