package tracelog

import (
	"crypto/sha1"
	"encoding/binary"
	"strings"
	"unicode/utf16"

	"github.com/Microsoft/go-winio/pkg/guid"
)

// namespace for name-derived provider IDs, shared with .NET's EventSource
// and the ETW backend itself.
var providerIDNamespace = guid.GUID{
	Data1: 0x482C2DB2,
	Data2: 0xC390,
	Data3: 0x47C8,
	Data4: [8]byte{0x87, 0xF8, 0x1A, 0x15, 0xBF, 0xC1, 0x30, 0xFB},
}

// ProviderID derives the GUID a provider name registers under when no
// explicit ID is configured. It matches the EventSource derivation (SHA-1
// of a fixed namespace and the upper-cased UTF-16BE name, with V5 version
// bits), so tooling can compute the GUID for a name without running the
// process: see
// https://learn.microsoft.com/en-us/archive/blogs/dcook/etw-provider-names-and-guids
func ProviderID(name string) guid.GUID {
	h := sha1.New()
	ns := providerIDNamespace.ToArray()
	h.Write(ns[:])
	// writes to a [hash.Hash] never fail
	_ = binary.Write(h, binary.BigEndian, utf16.Encode([]rune(strings.ToUpper(name))))

	sum := h.Sum(nil)
	sum[7] = (sum[7] & 0xf) | 0x50

	var a [16]byte
	copy(a[:], sum)
	return guid.FromWindowsArray(a)
}
