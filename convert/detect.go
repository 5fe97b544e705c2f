package convert

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

var encNames = [...]string{
	encUnknown:           "unknown",
	encUTF8:              "utf8",
	encUTF16BigEndian:    "utf16be",
	encUTF16LittleEndian: "utf16le",
	encUTF32BigEndian:    "utf32be",
	encUTF32LittleEndian: "utf32le",
}

func (e srcEncoding) String() string {
	if e < 0 || int(e) >= len(encNames) {
		return fmt.Sprintf("srcEncoding(%d)", int(e))
	}
	return encNames[e]
}

// sniffLen is the amount of data read to recognize file type.
const sniffLen = 4096

// markupExts lists extensions of files we are going to look at.
var markupExts = []string{".fsc", ".xml", ".txt"}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// detectUTF looks for byte order mark, UTF-32 must be checked before UTF-16.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// selectReader strips BOM and converts input to UTF-8. Without BOM input is
// returned as is, its encoding is detected later from XML declaration.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return unicode.UTF8BOM.NewDecoder().Reader(r)
	case encUTF16BigEndian:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Reader(r)
	case encUTF16LittleEndian:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Reader(r)
	case encUTF32BigEndian:
		return utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder().Reader(r)
	case encUTF32LittleEndian:
		return utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder().Reader(r)
	}
	// this should never happen
	panic(fmt.Sprintf("unexpected source encoding %d", enc))
}

// charsetReader returns reader for XML declaration encoding. When BOM was
// found input is already UTF-8 and declaration must be ignored.
func charsetReader(enc srcEncoding) func(string, io.Reader) (io.Reader, error) {
	if enc != encUnknown {
		return func(_ string, input io.Reader) (io.Reader, error) { return input, nil }
	}
	return charset.NewReaderLabel
}

func readHead(r io.Reader) ([]byte, error) {
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:n], nil
}

// isArchiveFile checks if file is a zip archive.
func isArchiveFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head, err := readHead(f)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

func hasMarkupExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range markupExts {
		if ext == e {
			return true
		}
	}
	return false
}

// sniffContainer checks that first element in the head of the document is
// container. Head could be truncated anywhere, so only the first start
// element is looked at. Names are compared the way they are written, prefix
// included.
func sniffContainer(head []byte, enc srcEncoding, container string) bool {
	d := xml.NewDecoder(selectReader(bytes.NewReader(head), enc))
	d.Strict = false
	d.CharsetReader = charsetReader(enc)
	for {
		tok, err := d.RawToken()
		if err != nil {
			return false
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if t.Name.Space != "" {
				name = t.Name.Space + ":" + name
			}
			return name == container
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return false
			}
		}
	}
}

func isMarkup(r io.Reader, name, container string) (bool, srcEncoding, error) {
	if !hasMarkupExt(name) {
		return false, encUnknown, nil
	}
	head, err := readHead(r)
	if err != nil {
		return false, encUnknown, err
	}
	enc := detectUTF(head)
	if !sniffContainer(head, enc, container) {
		return false, encUnknown, nil
	}
	return true, enc, nil
}

// isMarkupFile checks if file looks like markup document with expected
// container and returns detected BOM encoding.
func isMarkupFile(path, container string) (bool, srcEncoding, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, encUnknown, err
	}
	defer f.Close()
	return isMarkup(f, path, container)
}

// isMarkupInArchive is the same as isMarkupFile for archive entries.
func isMarkupInArchive(f *zip.File, container string) (bool, srcEncoding, error) {
	r, err := f.Open()
	if err != nil {
		return false, encUnknown, err
	}
	defer r.Close()
	return isMarkup(r, f.FileHeader.Name, container)
}
