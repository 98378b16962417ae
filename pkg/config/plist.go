package config

import (
	"bytes"

	"github.com/groob/plist"
)

// PlistParser implements koanf.Parser for property lists, XML or binary.
type PlistParser struct{}

// Plist returns a plist parser.
func Plist() *PlistParser {
	return &PlistParser{}
}

// Unmarshal parses a plist dictionary into a map.
func (p *PlistParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	if err := plist.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Marshal encodes a map as an XML plist dictionary.
func (p *PlistParser) Marshal(o map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := plist.NewEncoder(&buf)
	enc.Indent("\t")
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
