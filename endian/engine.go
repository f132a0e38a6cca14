// Package endian provides byte order utilities for the trace capture
// format.
//
// It combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single EndianEngine interface, satisfied by
// binary.LittleEndian and binary.BigEndian. Trace files record which engine
// wrote them, so readers pick the matching engine from the file header
// rather than assuming the host order.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder for convenient byte
// order operations. Engines are immutable and safe for concurrent use.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
