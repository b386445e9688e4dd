// Package field implements the field dictionary: a case-sensitive,
// append-only table of field names to dense FieldIds, each carrying a
// per-field Config (boost, copy_to destinations).
package field

// ID is a dense, process-lifetime-stable identifier assigned in
// insertion order.
type ID uint32

// Config holds per-field indexing behaviour: a multiplicative score
// boost and the set of fields this field's content should additionally
// be appended into at ingest time.
type Config struct {
	Boost  float32
	CopyTo map[ID]struct{}
}

// NewConfig returns the default Config: boost 1.0, no copy_to targets.
func NewConfig() Config {
	return Config{Boost: 1.0, CopyTo: map[ID]struct{}{}}
}

// WithBoost returns a copy of c with Boost multiplied by factor.
func (c Config) WithBoost(factor float32) Config {
	c.Boost *= factor
	cp := make(map[ID]struct{}, len(c.CopyTo))
	for k := range c.CopyTo {
		cp[k] = struct{}{}
	}
	c.CopyTo = cp
	return c
}

// WithCopyTo returns a copy of c with dest added to its copy_to set.
func (c Config) WithCopyTo(dest ID) Config {
	cp := make(map[ID]struct{}, len(c.CopyTo)+1)
	for k := range c.CopyTo {
		cp[k] = struct{}{}
	}
	cp[dest] = struct{}{}
	c.CopyTo = cp
	return c
}

// Dictionary interns field names to Ids, each with an associated
// Config. Entries are append-only: Insert always mints a new Id and
// never overwrites an existing name's id or config.
type Dictionary struct {
	names   map[string]ID
	byID    []string
	configs []Config
}

// NewDictionary returns an empty field dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{names: map[string]ID{}}
}

// Insert mints a new FieldId for name bound to config. Callers must
// not reinsert an existing name; doing so mints a second, shadowing Id
// rather than corrupting the first.
func (d *Dictionary) Insert(name string, config Config) ID {
	id := ID(len(d.byID))
	d.names[name] = id
	d.byID = append(d.byID, name)
	d.configs = append(d.configs, config)
	return id
}

// GetOrInsert returns the existing Id for name, or inserts it with the
// default Config if unseen. Mirrors the intern-table discipline of
// term.Dictionary for fields created implicitly rather than through an
// explicit schema.
func (d *Dictionary) GetOrInsert(name string) ID {
	if id, ok := d.names[name]; ok {
		return id
	}
	return d.Insert(name, NewConfig())
}

// LookupByName returns the Id for name, if it has been registered.
func (d *Dictionary) LookupByName(name string) (ID, bool) {
	id, ok := d.names[name]
	return id, ok
}

// LookupByID returns the field name for id, if id has been issued.
func (d *Dictionary) LookupByID(id ID) (string, bool) {
	if int(id) < 0 || int(id) >= len(d.byID) {
		return "", false
	}
	return d.byID[id], true
}

// Config returns the Config registered for id.
func (d *Dictionary) Config(id ID) (Config, bool) {
	if int(id) < 0 || int(id) >= len(d.configs) {
		return Config{}, false
	}
	return d.configs[id], true
}

// SetConfig overwrites the Config registered for id. This is for
// callers (schema.Config.Apply) that must resolve copy_to targets by
// name after every field has been minted, including forward
// references declared later in the same schema document.
func (d *Dictionary) SetConfig(id ID, config Config) {
	if int(id) < 0 || int(id) >= len(d.configs) {
		return
	}
	d.configs[id] = config
}

// Len returns the number of distinct fields registered so far.
func (d *Dictionary) Len() int {
	return len(d.byID)
}
