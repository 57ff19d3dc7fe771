package markdown

import (
	"path/filepath"
	"strings"
)

// parseImageLine matches a line that consists solely of `![alt](src)`.
func parseImageLine(trimmed, basePath string) (Image, bool) {
	if !strings.HasPrefix(trimmed, "![") {
		return Image{}, false
	}
	runes := []rune(trimmed[1:])
	alt, src, consumed, ok := parseLinkRunes(runes)
	if !ok || consumed != len(runes) {
		return Image{}, false
	}
	return Image{Src: ResolveImageSource(src, basePath), Alt: alt}, true
}

// ResolveImageSource joins a relative image path onto basePath. Remote URLs,
// data URLs and absolute paths are returned unchanged, as is everything when
// basePath is empty.
func ResolveImageSource(src, basePath string) string {
	if src == "" || basePath == "" || !isRelativePath(src) {
		return src
	}
	return filepath.Join(basePath, src)
}

func isRelativePath(src string) bool {
	lower := strings.ToLower(src)
	for _, scheme := range []string{"http://", "https://", "data:", "file://"} {
		if strings.HasPrefix(lower, scheme) {
			return false
		}
	}
	if strings.HasPrefix(src, "/") || strings.HasPrefix(src, `\`) || filepath.IsAbs(src) {
		return false
	}
	// Windows drive paths (C:\ or C:/) are absolute regardless of host OS.
	if len(src) >= 3 && src[1] == ':' && (src[2] == '\\' || src[2] == '/') && isASCIILetter(src[0]) {
		return false
	}
	return true
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
