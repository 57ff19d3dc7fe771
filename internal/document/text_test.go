package document

import "testing"

func TestIsTextDetectsUTF16LE(t *testing.T) {
	content := []byte{0xFF, 0xFE, 0x41, 0x00, 0x0D, 0x00, 0x0A, 0x00}
	if !IsText("notes.md", content) {
		t.Fatalf("expected UTF-16 LE content to be treated as text")
	}
}

func TestIsTextRejectsBinary(t *testing.T) {
	if IsText("logo.png", []byte("# not really")) {
		t.Fatalf("expected binary extension to be rejected")
	}
	if IsText("blob.md", []byte{'a', 0x00, 'b'}) {
		t.Fatalf("expected NUL bytes to be rejected")
	}
	if !IsText("", nil) {
		t.Fatalf("expected empty content to be text")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    string
		enc     Encoding
	}{
		{"utf16le crlf", []byte{0xFF, 0xFE, 0x41, 0x00, 0x0D, 0x00, 0x0A, 0x00}, "A\n", EncodingUTF16LE},
		{"utf16be", []byte{0xFE, 0xFF, 0x00, 0x23, 0x00, 0x20, 0x00, 0x48}, "# H", EncodingUTF16BE},
		{"utf8 bom", []byte("\xEF\xBB\xBFhi\r\nthere\r"), "hi\nthere\n", EncodingUTF8BOM},
		{"nfc", []byte("cafe\u0301"), "caf\u00e9", EncodingUTF8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, enc := Decode(tt.content)
			if got != tt.want || enc != tt.enc {
				t.Fatalf("Decode=%q,%v want %q,%v", got, enc, tt.want, tt.enc)
			}
		})
	}
}
