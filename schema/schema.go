// Package schema loads the YAML field configuration document that
// binds boost and copy_to behaviour onto the field dictionary at
// startup, before any document is indexed.
package schema

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rekki/go-query-db/field"
)

// FieldSpec is one field's declared configuration, in the order it was
// written in the YAML document.
type FieldSpec struct {
	Name   string
	Boost  float32
	CopyTo []string
}

// Config is an ordered list of field declarations, as decoded from a
// YAML document of the form:
//
//	fields:
//	  title:
//	    boost: 2.0
//	    copy_to: [all_text]
//	  summary:
//	    copy_to: [all_text]
//	  all_text: {}
type Config struct {
	Fields []FieldSpec
}

type fieldYAML struct {
	Boost  *float32 `yaml:"boost"`
	CopyTo []string `yaml:"copy_to"`
}

type document struct {
	Fields yaml.Node `yaml:"fields"`
}

// Load parses a schema document. Fields are returned in the exact
// order they appear in the document: decoding walks the raw mapping's
// Content nodes (which yaml.Node preserves in document order) rather
// than a plain Go map, whose iteration order is unspecified — re-Apply
// against a fresh field.Dictionary must mint ids deterministically.
func Load(r io.Reader) (*Config, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("schema: decode: %w", err)
	}

	if doc.Fields.Kind != yaml.MappingNode && doc.Fields.Kind != 0 {
		return nil, fmt.Errorf("schema: \"fields\" must be a mapping")
	}

	cfg := &Config{}
	content := doc.Fields.Content
	for i := 0; i+1 < len(content); i += 2 {
		name := content[i].Value

		var raw fieldYAML
		if err := content[i+1].Decode(&raw); err != nil {
			return nil, fmt.Errorf("schema: field %q: %w", name, err)
		}

		boost := float32(1.0)
		if raw.Boost != nil {
			boost = *raw.Boost
		}

		cfg.Fields = append(cfg.Fields, FieldSpec{
			Name:   name,
			Boost:  boost,
			CopyTo: raw.CopyTo,
		})
	}

	return cfg, nil
}

// Apply registers every declared field against fd in declaration
// order, then resolves copy_to targets by name. Resolution happens in
// a second pass so that a field may copy_to a target declared later in
// the same document; an undeclared copy_to target is minted on demand
// with the default Config.
func (c *Config) Apply(fd *field.Dictionary) {
	ids := make(map[string]field.ID, len(c.Fields))
	for _, spec := range c.Fields {
		id := fd.Insert(spec.Name, field.NewConfig().WithBoost(spec.Boost))
		ids[spec.Name] = id
	}

	for _, spec := range c.Fields {
		if len(spec.CopyTo) == 0 {
			continue
		}
		id := ids[spec.Name]
		cfg, _ := fd.Config(id)
		for _, destName := range spec.CopyTo {
			destID, ok := ids[destName]
			if !ok {
				destID = fd.GetOrInsert(destName)
				ids[destName] = destID
			}
			cfg = cfg.WithCopyTo(destID)
		}
		fd.SetConfig(id, cfg)
	}
}
