package cache

import (
	"encoding/binary"

	"gpca/internal/core"
)

// key packs the current state followed by each neighbor state as 4-byte
// little-endian words. Neighbor order is significant.
func key(current core.State, neighbors []core.State) string {
	buf := make([]byte, 0, 4*(len(neighbors)+1))
	buf = binary.LittleEndian.AppendUint32(buf, current.State())
	for _, n := range neighbors {
		buf = binary.LittleEndian.AppendUint32(buf, n.State())
	}
	return string(buf)
}
