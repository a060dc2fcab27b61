package sarc

import (
	"encoding/binary"

	"github.com/go3ds/bctools/bctk"
)

type streamState int

// The six states mirror original_source/sarc.py's STATE_SARC_HEADER through
// STATE_FILE_DATA: each transition fires only once the accumulated buffer
// holds at least the bytes the current state needs, independent of how the
// input was chunked by the caller.
const (
	stateSarcHeader streamState = iota
	stateSfatHeader
	stateSfatNodes
	stateSfntHeader
	stateSfntData
	stateFileData
	stateDone
)

// Decoder decodes a SARC byte stream incrementally: Feed can be called with
// chunks of any size (including single bytes), and OnFile fires for each
// archive member as soon as its data range has been fully accumulated. This
// is what lets a zlib-wrapped archive be decoded as its inflater produces
// output, without holding the whole decompressed archive in memory at once.
type Decoder struct {
	OnFile func(File) error

	state    streamState
	pending  []byte
	consumed int // total bytes consumed from the stream so far

	order      binary.ByteOrder
	dataOffset uint32
	nodeCount  int
	hashMult   uint32
	nodes      []Node

	nameTableLen int
	regionPos    uint32
	fileIdx      int
}

// NewDecoder creates a streaming decoder. onFile is invoked once per archive
// member, in SFAT node order, as its bytes become available.
func NewDecoder(onFile func(File) error) *Decoder {
	return &Decoder{OnFile: onFile}
}

// Feed appends chunk to the decoder's pending buffer and advances the state
// machine as far as the accumulated bytes allow.
func (d *Decoder) Feed(chunk []byte) error {
	d.pending = append(d.pending, chunk...)
	for {
		advanced, err := d.step()
		if err != nil {
			return err
		}
		if !advanced {
			return nil
		}
	}
}

// Done reports whether every SFAT node has been emitted.
func (d *Decoder) Done() bool { return d.state == stateDone }

// step attempts one state transition, returning false when there isn't yet
// enough pending data to make progress.
func (d *Decoder) step() (bool, error) {
	switch d.state {
	case stateSarcHeader:
		if len(d.pending) < sarcHeaderSize {
			return false, nil
		}
		order, err := bctk.SniffBOM(d.pending, 6)
		if err != nil {
			return false, err
		}
		c := bctk.NewCursor(d.pending, order)
		magic, _ := c.ReadMagic()
		if magic != "SARC" {
			return false, bctk.ErrBadMagic
		}
		headerSize, _ := c.ReadU16()
		if headerSize != sarcHeaderSize {
			return false, bctk.ErrBadHeaderSize
		}
		_, _ = c.ReadU16() // BOM
		_, _ = c.ReadU32() // fileSize: unknowable from a partial stream, not checked here
		dataOffset, _ := c.ReadU32()
		_, _ = c.ReadU32() // constant

		d.order = order
		d.dataOffset = dataOffset
		d.pending = d.pending[sarcHeaderSize:]
		d.consumed += sarcHeaderSize
		d.state = stateSfatHeader
		return true, nil

	case stateSfatHeader:
		if len(d.pending) < sfatHeaderSize {
			return false, nil
		}
		c := bctk.NewCursor(d.pending, d.order)
		magic, _ := c.ReadMagic()
		if magic != "SFAT" {
			return false, bctk.ErrBadMagic
		}
		headerSize, _ := c.ReadU16()
		if headerSize != sfatHeaderSize {
			return false, bctk.ErrBadHeaderSize
		}
		nodeCount, _ := c.ReadU16()
		hashMult, _ := c.ReadU32()
		if hashMult != bctk.SFATMultiplier {
			return false, ErrBadHashMultiplier
		}

		d.nodeCount = int(nodeCount)
		d.hashMult = hashMult
		d.pending = d.pending[sfatHeaderSize:]
		d.consumed += sfatHeaderSize
		d.state = stateSfatNodes
		return true, nil

	case stateSfatNodes:
		need := d.nodeCount * sfatNodeSize
		if len(d.pending) < need {
			return false, nil
		}
		c := bctk.NewCursor(d.pending, d.order)
		nodes := make([]Node, d.nodeCount)
		for i := range nodes {
			hash, _ := c.ReadU32()
			nameEntry, _ := c.ReadU32()
			dataStart, _ := c.ReadU32()
			dataEnd, _ := c.ReadU32()
			nodes[i] = Node{
				Hash:       hash,
				HasName:    nameEntry>>24 != 0,
				nameOffset: (nameEntry & 0xFFFFFF) * 4,
				DataStart:  dataStart,
				DataEnd:    dataEnd,
			}
		}
		d.nodes = nodes
		d.pending = d.pending[need:]
		d.consumed += need
		d.state = stateSfntHeader
		return true, nil

	case stateSfntHeader:
		if len(d.pending) < sfntHeaderSize {
			return false, nil
		}
		c := bctk.NewCursor(d.pending, d.order)
		magic, _ := c.ReadMagic()
		if magic != "SFNT" {
			return false, bctk.ErrBadMagic
		}
		headerSize, _ := c.ReadU16()
		if headerSize != sfntHeaderSize {
			return false, bctk.ErrBadHeaderSize
		}
		_, _ = c.ReadU16() // unknown

		d.pending = d.pending[sfntHeaderSize:]
		d.consumed += sfntHeaderSize
		d.nameTableLen = int(d.dataOffset) - d.consumed
		if d.nameTableLen < 0 {
			return false, bctk.ErrTruncatedSection
		}
		d.state = stateSfntData
		return true, nil

	case stateSfntData:
		if len(d.pending) < d.nameTableLen {
			return false, nil
		}
		nameTable := d.pending[:d.nameTableLen]
		for i := range d.nodes {
			node := &d.nodes[i]
			if node.HasName {
				name, err := readCString(nameTable, int(node.nameOffset))
				if err != nil {
					return false, err
				}
				if bctk.SFATHash(name) != node.Hash {
					return false, bctk.ErrHashMismatch
				}
				node.Name = name
			} else {
				node.Name = synthesizeNonameName(node.Hash)
			}
		}
		d.pending = d.pending[d.nameTableLen:]
		d.consumed += d.nameTableLen
		d.state = stateFileData
		return true, nil

	case stateFileData:
		if d.fileIdx >= len(d.nodes) {
			d.state = stateDone
			return true, nil
		}
		node := d.nodes[d.fileIdx]
		need := int(node.DataEnd - d.regionPos)
		if need < 0 {
			return false, bctk.ErrTruncatedSection
		}
		if len(d.pending) < need {
			return false, nil
		}
		skip := int(node.DataStart - d.regionPos)
		payload := append([]byte(nil), d.pending[skip:need]...)
		d.pending = d.pending[need:]
		d.regionPos = node.DataEnd
		d.fileIdx++

		if d.OnFile != nil {
			if err := d.OnFile(File{Node: node, Data: payload}); err != nil {
				return false, err
			}
		}
		return true, nil

	case stateDone:
		return false, nil

	default:
		return false, nil
	}
}
