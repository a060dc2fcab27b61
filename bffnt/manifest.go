package bffnt

import (
	"sort"
	"strconv"

	"github.com/go3ds/bctools/bctk"
)

// Manifest is the JSON authoring/export schema described in spec §4.6. It
// mirrors Font field-for-field but with glyph-indexed maps instead of CWDH/
// CMAP chains, matching how an external JSON encoder expects the document
// shaped.
type Manifest struct {
	Version  uint32 `json:"version"`
	FileType string `json:"fileType"`

	FontInfo ManifestFontInfo `json:"fontInfo"`

	TextureInfo ManifestTextureInfo `json:"textureInfo"`

	// GlyphWidths is keyed by base-10 glyph index, e.g. "42".
	GlyphWidths map[string]ManifestWidth `json:"glyphWidths"`
	// GlyphMap is keyed by the single-character string of the code point
	// itself, e.g. "A" for U+0041, not its base-10 numeric value.
	GlyphMap map[string]uint16 `json:"glyphMap"`
}

type ManifestFontInfo struct {
	Height         uint8               `json:"height"`
	Width          uint8               `json:"width"`
	Ascent         uint8               `json:"ascent"`
	LineFeed       uint16              `json:"lineFeed"`
	AlterCharIdx   uint16              `json:"alterCharIdx"`
	DefaultWidth   ManifestWidth       `json:"defaultWidth"`
	FontType       uint8               `json:"fontType"`
	Encoding       uint8               `json:"encoding"`
}

type ManifestWidth struct {
	Left  int8  `json:"left"`
	Glyph uint8 `json:"glyph"`
	Char  uint8 `json:"char"`
}

type ManifestTextureInfo struct {
	Glyph      ManifestGlyphCell `json:"glyph"`
	SheetCount int               `json:"sheetCount"`
	SheetInfo  ManifestSheetInfo `json:"sheetInfo"`
}

type ManifestGlyphCell struct {
	Width    uint8 `json:"width"`
	Height   uint8 `json:"height"`
	Baseline uint8 `json:"baseline"`
}

type ManifestSheetInfo struct {
	Cols        uint16 `json:"cols"`
	Rows        uint16 `json:"rows"`
	Width       uint16 `json:"width"`
	Height      uint16 `json:"height"`
	ColorFormat string `json:"colorFormat"`
}

// formatNames maps canonical Format to the manifest's string spelling.
var formatNames = map[bctk.Format]string{
	bctk.FormatRGBA8:   "RGBA8",
	bctk.FormatRGB8:    "RGB8",
	bctk.FormatRGBA5551: "RGBA5551",
	bctk.FormatRGB565:  "RGB565",
	bctk.FormatRGBA4:   "RGBA4",
	bctk.FormatLA8:     "LA8",
	bctk.FormatHILO8:   "HILO8",
	bctk.FormatL8:      "L8",
	bctk.FormatA8:       "A8",
	bctk.FormatLA4:      "LA4",
	bctk.FormatL4:       "L4",
	bctk.FormatA4:       "A4",
	bctk.FormatETC1:     "ETC1",
	bctk.FormatETC1A4:   "ETC1A4",
}

var formatByName = func() map[string]bctk.Format {
	m := make(map[string]bctk.Format, len(formatNames))
	for f, name := range formatNames {
		m[name] = f
	}
	return m
}()

// ToManifest flattens font's CWDH/CMAP chains into the glyph-indexed
// manifest shape, suitable for handing to an external JSON encoder.
func ToManifest(font *Font) (*Manifest, error) {
	colorFormat, ok := formatNames[font.Sheet.Format]
	if !ok {
		return nil, bctk.ErrUnknownPixelFormat
	}

	m := &Manifest{
		Version:  font.Version,
		FileType: font.Magic,
		FontInfo: ManifestFontInfo{
			Height:   font.Info.Height,
			Width:    font.Info.Width,
			Ascent:   font.Info.Ascent,
			LineFeed: font.Info.LineFeed,
			AlterCharIdx: font.Info.AlterCharIndex,
			DefaultWidth: ManifestWidth{
				Left:  font.Info.DefaultLeft,
				Glyph: font.Info.DefaultGlyphWidth,
				Char:  font.Info.DefaultCharWidth,
			},
			FontType: font.Info.FontType,
			Encoding: font.Info.Encoding,
		},
		TextureInfo: ManifestTextureInfo{
			Glyph: ManifestGlyphCell{
				Width:    font.Sheet.GlyphWidth,
				Height:   font.Sheet.GlyphHeight,
				Baseline: font.Sheet.BaselinePosition,
			},
			SheetCount: len(font.Sheet.Sheets),
			SheetInfo: ManifestSheetInfo{
				Cols: font.Sheet.Cols, Rows: font.Sheet.Rows,
				Width: font.Sheet.SheetWidth, Height: font.Sheet.SheetHeight,
				ColorFormat: colorFormat,
			},
		},
		GlyphWidths: make(map[string]ManifestWidth),
		GlyphMap:    make(map[string]uint16),
	}

	for _, chain := range font.Widths {
		for i, rec := range chain.Records {
			idx := int(chain.StartIndex) + i
			m.GlyphWidths[strconv.Itoa(idx)] = ManifestWidth{Left: rec.Left, Glyph: rec.GlyphWidth, Char: rec.CharWidth}
		}
	}

	for code := 0; code <= 0xFFFF; code++ {
		idx, ok := font.Lookup(uint16(code))
		if ok {
			m.GlyphMap[string(rune(code))] = idx
		}
	}

	return m, nil
}

// FromManifest rebuilds CWDH/CMAP chains from a manifest's glyph-indexed
// maps. Glyph indices are sorted numerically (not lexicographically) before
// being grouped into a single CWDH chain link.
func FromManifest(m *Manifest) (*Font, error) {
	format, ok := formatByName[m.TextureInfo.SheetInfo.ColorFormat]
	if !ok {
		return nil, bctk.ErrUnknownPixelFormat
	}

	font := &Font{
		Magic:   m.FileType,
		Version: m.Version,
		Info: FontInfo{
			FontType: m.FontInfo.FontType, Height: m.FontInfo.Height, Width: m.FontInfo.Width,
			Ascent: m.FontInfo.Ascent, LineFeed: m.FontInfo.LineFeed,
			AlterCharIndex: m.FontInfo.AlterCharIdx, DefaultLeft: m.FontInfo.DefaultWidth.Left,
			DefaultGlyphWidth: m.FontInfo.DefaultWidth.Glyph, DefaultCharWidth: m.FontInfo.DefaultWidth.Char,
			Encoding: m.FontInfo.Encoding,
		},
		Sheet: SheetSet{
			GlyphWidth: m.TextureInfo.Glyph.Width, GlyphHeight: m.TextureInfo.Glyph.Height,
			BaselinePosition: m.TextureInfo.Glyph.Baseline, Format: format,
			Cols: m.TextureInfo.SheetInfo.Cols, Rows: m.TextureInfo.SheetInfo.Rows,
			SheetWidth: m.TextureInfo.SheetInfo.Width, SheetHeight: m.TextureInfo.SheetInfo.Height,
		},
	}

	indices := make([]int, 0, len(m.GlyphWidths))
	for k := range m.GlyphWidths {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, err
		}
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	if len(indices) > 0 {
		records := make([]GlyphWidthRecord, len(indices))
		for i, idx := range indices {
			w := m.GlyphWidths[strconv.Itoa(idx)]
			records[i] = GlyphWidthRecord{Left: w.Left, GlyphWidth: w.Glyph, CharWidth: w.Char}
		}
		font.Widths = []CWDH{{
			StartIndex: uint16(indices[0]),
			EndIndex:   uint16(indices[len(indices)-1]),
			Records:    records,
		}}
	}

	codes := make([]int, 0, len(m.GlyphMap))
	codeKeys := make(map[int]string, len(m.GlyphMap))
	for k := range m.GlyphMap {
		r := []rune(k)
		if len(r) != 1 {
			return nil, bctk.ErrInvalidMappingType
		}
		code := int(r[0])
		codes = append(codes, code)
		codeKeys[code] = k
	}
	sort.Ints(codes)

	if len(codes) > 0 {
		pairs := make([]CodePair, len(codes))
		for i, code := range codes {
			pairs[i] = CodePair{Code: uint16(code), Index: m.GlyphMap[codeKeys[code]]}
		}
		font.Maps = []CMAP{{
			CodeBegin: uint16(codes[0]),
			CodeEnd:   uint16(codes[len(codes)-1]),
			Type:      MappingScan,
			Pairs:     pairs,
		}}
	}

	return font, nil
}
