// Package term implements the term dictionary: a case-sensitive,
// append-only intern table mapping term strings to dense TermIds.
package term

// ID is a dense, process-lifetime-stable identifier assigned in
// insertion order.
type ID uint32

// Dictionary interns term strings to Ids. It is append-only: once
// assigned, an Id is never reused and never changes meaning.
type Dictionary struct {
	names map[string]ID
	byID  []string
}

// NewDictionary returns an empty term dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		names: map[string]ID{},
	}
}

// GetOrInsert returns the Id for term, minting a new one if this is
// the first time term has been seen.
func (d *Dictionary) GetOrInsert(term string) ID {
	if id, ok := d.names[term]; ok {
		return id
	}
	id := ID(len(d.byID))
	d.names[term] = id
	d.byID = append(d.byID, term)
	return id
}

// LookupByName returns the Id for term, if it has been interned.
func (d *Dictionary) LookupByName(term string) (ID, bool) {
	id, ok := d.names[term]
	return id, ok
}

// LookupByID returns the term string for id, if id has been issued.
func (d *Dictionary) LookupByID(id ID) (string, bool) {
	if int(id) < 0 || int(id) >= len(d.byID) {
		return "", false
	}
	return d.byID[id], true
}

// Len returns the number of distinct terms interned so far.
func (d *Dictionary) Len() int {
	return len(d.byID)
}
