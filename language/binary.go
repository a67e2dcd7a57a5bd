package language

import "bytes"

// sniffLen is how much of a file is inspected when deciding whether it is text.
const sniffLen = 512

// IsBinaryContent reports whether data looks binary: a NUL byte anywhere in
// the first sniffLen bytes.
func IsBinaryContent(data []byte) bool {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
