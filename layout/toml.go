package layout

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// tomlField mirrors one [[field]] table in a layout file.
type tomlField struct {
	Name  string `toml:"name"`
	Byte  int    `toml:"byte"`
	Bit   int    `toml:"bit"`
	Width int    `toml:"width"`
}

type tomlLayout struct {
	Fields []tomlField `toml:"field"`
}

// ParseTOML builds a Layout from TOML data of the form:
//
//	[[field]]
//	name  = "version"
//	byte  = 0
//	bit   = 4
//	width = 4
//
//	[[field]]
//	name  = "length"
//	byte  = 2
//	width = 16
//
// Omitted bit offsets default to 0. The resulting field set is validated by
// New, so the usual layout rules apply.
func ParseTOML(data []byte) (*Layout, error) {
	var doc tomlLayout
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	fields := make([]Field, 0, len(doc.Fields))
	for _, f := range doc.Fields {
		fields = append(fields, Field{
			Name:       f.Name,
			ByteOffset: f.Byte,
			BitOffset:  f.Bit,
			WidthBits:  f.Width,
		})
	}

	return New(fields)
}

// LoadTOML reads and parses a layout file from disk.
func LoadTOML(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}

	return ParseTOML(data)
}
