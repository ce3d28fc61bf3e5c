package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/materia/core"
)

// Key prefixes for different data types
const (
	libraryPrefix         = "matlib"
	libraryIDSeq          = "matlibseq"
	materialPrefix        = "matrec"
	materialIDSeq         = "matrecseq"
	materialLibraryPrefix = "matlibidx"
)

// makeLibraryKey generates a key for a library by ID.
func makeLibraryKey(id core.LibraryID) []byte {
	return []byte(fmt.Sprintf("%s:%d", libraryPrefix, id))
}

// makeLibraryScanPrefix returns the prefix shared by all library keys.
func makeLibraryScanPrefix() []byte {
	return []byte(libraryPrefix + ":")
}

// makeMaterialKey generates a key for a material by ID.
func makeMaterialKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", materialPrefix, id))
}

// makeMaterialLibraryKey generates a composite key for the library index.
// Format: prefix:libraryID:materialID
func makeMaterialLibraryKey(lib core.LibraryID, id core.ID) []byte {
	prefix := []byte(materialLibraryPrefix + ":")
	buf := make([]byte, len(prefix)+16) // 8 bytes for libraryID + 8 bytes for materialID
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(lib))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialMaterialLibraryKey generates a partial key for library scans.
// Format: prefix:libraryID
func makePartialMaterialLibraryKey(lib core.LibraryID) []byte {
	prefix := []byte(materialLibraryPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(lib))
	return buf
}

// materialIDFromLibraryKey extracts the material ID from a library index key.
func materialIDFromLibraryKey(key []byte) core.ID {
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
}
