package utils

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// classifierSniffLength defines the maximum number of bytes sampled when probing file content.
const classifierSniffLength = 1024

// highBitRatioLimit is the fraction of sampled bytes above 127 beyond which content is treated as binary.
const highBitRatioLimit = 0.30

// binaryExtensionDenylist enumerates extensions whose files are classified binary without a content probe.
var binaryExtensionDenylist = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".bmp": {}, ".ico": {},
	".webp": {}, ".tif": {}, ".tiff": {}, ".heic": {},
	".mp3": {}, ".wav": {}, ".flac": {}, ".ogg": {}, ".m4a": {}, ".aac": {}, ".wma": {},
	".mp4": {}, ".avi": {}, ".mov": {}, ".mkv": {}, ".webm": {}, ".wmv": {}, ".flv": {},
	".o": {}, ".obj": {}, ".a": {}, ".so": {}, ".dll": {}, ".dylib": {}, ".exe": {},
	".bin": {}, ".class": {}, ".pyc": {}, ".pyo": {}, ".wasm": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".tgz": {}, ".bz2": {}, ".xz": {}, ".7z": {},
	".rar": {}, ".jar": {}, ".war": {},
	".db": {}, ".sqlite": {}, ".sqlite3": {}, ".mdb": {},
	".log": {},
}

// HasBinaryExtension reports whether the path carries a known-binary extension.
// The comparison is case-insensitive.
func HasBinaryExtension(path string) bool {
	extension := strings.ToLower(filepath.Ext(path))
	_, denied := binaryExtensionDenylist[extension]
	return denied
}

// IsBinaryData reports whether the provided sample appears to contain binary data.
// A NUL byte is conclusive; otherwise the sample is binary when more than
// highBitRatioLimit of its bytes have the high bit set.
func IsBinaryData(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	highBitCount := 0
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
		if byteValue > 127 {
			highBitCount++
		}
	}
	return float64(highBitCount) > highBitRatioLimit*float64(len(data))
}

// IsFileBinary classifies the file at path. The extension denylist is consulted
// first; otherwise up to classifierSniffLength bytes are sampled. A file that
// cannot be opened for the probe is classified binary rather than failing.
func IsFileBinary(path string) bool {
	if HasBinaryExtension(path) {
		return true
	}

	fileHandle, openError := os.Open(path)
	if openError != nil {
		return true
	}
	defer fileHandle.Close()

	buffer := make([]byte, classifierSniffLength)
	bytesRead, readError := fileHandle.Read(buffer)
	if readError != nil && readError != io.EOF {
		return true
	}
	return IsBinaryData(buffer[:bytesRead])
}
