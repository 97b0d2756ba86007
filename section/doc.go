// Package section defines the fixed-size binary structures of a dataset
// (.msr) file.
//
// A dataset is laid out as:
//
//	┌───────────────────────────────────────────┐
//	│ Header (32 bytes)                         │
//	│  - Flag: options, encoding, compression   │
//	│  - Magic "MSRA"                           │
//	│  - SeriesCount and section offsets        │
//	├───────────────────────────────────────────┤
//	│ Index (SeriesCount × 16 bytes)            │
//	│  - SeriesID, payload offset, count        │
//	├───────────────────────────────────────────┤
//	│ Names (uvarint length + bytes, per entry) │
//	├───────────────────────────────────────────┤
//	│ Payload (encoded values, compressed)      │
//	├───────────────────────────────────────────┤
//	│ CRC32 IEEE of all preceding bytes         │
//	└───────────────────────────────────────────┘
//
// The Options field of the flag is always little-endian. Its bit 0 selects
// the byte order of every other multi-byte field, including raw-encoded
// values in the payload.
package section
