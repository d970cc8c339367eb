package extractor

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var errDecode = errors.New("decode failed")

// textEncoding is one attempt in the ordered decode ladder
type textEncoding struct {
	name   string
	decode func(data []byte) ([]byte, error)
}

// encodings is tried in order; the first decoder that succeeds wins.
// UTF-8 goes first so correctly encoded files are never mis-read as
// Latin-1. The single-byte charmaps are pure byte-to-character mappings
// that cannot fail, so they sit at the end of the ladder.
var encodings = []textEncoding{
	{name: "utf-8", decode: decodeUTF8},
	{name: "utf-8-sig", decode: decodeUTF8SIG},
	{name: "latin-1", decode: charmap.ISO8859_1.NewDecoder().Bytes},
	{name: "windows-1252", decode: charmap.Windows1252.NewDecoder().Bytes},
}

// decodeText runs the ladder and returns the decoded text plus the name of
// the encoding that accepted it
func decodeText(data []byte) (text []byte, encoding string, err error) {
	for _, enc := range encodings {
		decoded, decErr := enc.decode(data)
		if decErr == nil {
			return decoded, enc.name, nil
		}
	}
	return nil, "", errDecode
}

// decodeUTF8 accepts data only if it is already valid UTF-8. A leading
// byte-order mark is valid UTF-8 and survives decoding as U+FEFF, the same
// way Python's plain "utf-8" codec leaves it in the text.
func decodeUTF8(data []byte) ([]byte, error) {
	if !utf8.Valid(data) {
		return nil, errDecode
	}
	return data, nil
}

// decodeUTF8SIG accepts BOM-prefixed UTF-8 and strips the mark
func decodeUTF8SIG(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, utf8BOM) {
		return nil, errDecode
	}
	rest := data[len(utf8BOM):]
	if !utf8.Valid(rest) {
		return nil, errDecode
	}
	return rest, nil
}
