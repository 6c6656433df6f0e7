package fs

import (
	"path"
	"strings"
)

// binaryExtensions are file extensions we never attempt to treat as text.
var binaryExtensions = map[string]struct{}{
	"exe": {}, "dll": {}, "so": {}, "dylib": {}, "bin": {}, "obj": {}, "o": {},
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "bmp": {}, "ico": {},
	"mp3": {}, "mp4": {}, "avi": {}, "mov": {}, "wav": {},
	"zip": {}, "tar": {}, "gz": {}, "rar": {}, "7z": {},
	"pdf": {}, "doc": {}, "docx": {}, "xls": {}, "xlsx": {},
}

// IsTextFile returns true if the given filename looks like a text file based on its
// extension. Files without an extension are assumed to be text.
func IsTextFile(filename string) bool {
	ext := Extension(filename)
	if ext == "" {
		return true
	}
	_, binary := binaryExtensions[strings.ToLower(ext)]
	return !binary
}

// Extension returns the filename's extension without the leading dot, or the
// empty string if it has none.
func Extension(filename string) string {
	return strings.TrimPrefix(path.Ext(filename), ".")
}
