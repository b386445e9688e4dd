// Package sparrowdb is the database facade: it owns the term and
// field dictionaries, one inverted index per field, the per-document
// field-vector snapshots, the tombstone set, and the pk<->doc id
// bijection, and orchestrates ingest, delete and query the way the
// teacher's MemOnlyIndex owns and orchestrates its own postings.
package sparrowdb

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/rekki/go-query-db/field"
	"github.com/rekki/go-query-db/postings"
	"github.com/rekki/go-query-db/query"
	"github.com/rekki/go-query-db/term"
	"github.com/rekki/go-query-db/vector"
)

// Database is the single-writer/multi-reader facade over the whole
// index. Insert and Delete take the embedded write lock; Query and
// SimpleMatch take the read lock.
type Database struct {
	sync.RWMutex

	terms  *term.Dictionary
	fields *field.Dictionary

	indexes map[field.ID]*postings.Index

	docs       map[postings.DocID]map[field.ID]*vector.Vector
	docOrder   []postings.DocID
	tombstones map[postings.DocID]struct{}

	pkToID map[string]postings.DocID
	idToPK map[postings.DocID]string
}

// New returns an empty Database with fresh term and field dictionaries.
func New() *Database {
	return &Database{
		terms:      term.NewDictionary(),
		fields:     field.NewDictionary(),
		indexes:    map[field.ID]*postings.Index{},
		docs:       map[postings.DocID]map[field.ID]*vector.Vector{},
		tombstones: map[postings.DocID]struct{}{},
		pkToID:     map[string]postings.DocID{},
		idToPK:     map[postings.DocID]string{},
	}
}

// Fields returns the field dictionary, for schema.Config.Apply to
// register fields against at startup. Not safe to call concurrently
// with Insert/Delete/Query — field registration is expected to
// complete before the database is opened to traffic.
func (db *Database) Fields() *field.Dictionary { return db.fields }

// Terms returns the term dictionary, for read-only name->id lookups
// (e.g. when resolving a wire query). The dictionary itself is not
// synchronized: Insert adds terms to it under the write lock, so a
// lookup made without holding at least the read lock must not run
// concurrently with Insert. An id once minted never changes meaning.
func (db *Database) Terms() *term.Dictionary { return db.terms }

func (db *Database) indexFor(id field.ID) *postings.Index {
	idx, ok := db.indexes[id]
	if !ok {
		idx = postings.New()
		db.indexes[id] = idx
	}
	return idx
}

// Insert builds one PositionalVector per named field that resolves in
// the field dictionary (unknown field names are silently dropped),
// applies copy_to, mints a DocumentId, and indexes every resulting
// vector. Insert rejects a pk already bound to a document.
func (db *Database) Insert(pk string, fieldTokens map[string][]vector.Token) error {
	db.Lock()
	defer db.Unlock()

	if _, exists := db.pkToID[pk]; exists {
		return ErrAlreadyExists
	}

	built := map[field.ID]*vector.Vector{}
	type sourceVector struct {
		id  field.ID
		vec *vector.Vector
	}
	sources := make([]sourceVector, 0, len(fieldTokens))

	for name, tokens := range fieldTokens {
		fieldID, ok := db.fields.LookupByName(name)
		if !ok {
			continue
		}
		cfg, _ := db.fields.Config(fieldID)

		vec := vector.FromTokens(tokens, db.terms)
		if vec.Length > 0 {
			vec.Boost(cfg.Boost / float32(vec.Length))
		} else {
			vec.Boost(cfg.Boost)
		}

		built[fieldID] = vec
		sources = append(sources, sourceVector{id: fieldID, vec: vec})
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].id < sources[j].id })

	for _, src := range sources {
		cfg, _ := db.fields.Config(src.id)
		if len(cfg.CopyTo) == 0 {
			continue
		}
		dests := make([]field.ID, 0, len(cfg.CopyTo))
		for d := range cfg.CopyTo {
			dests = append(dests, d)
		}
		sort.Slice(dests, func(i, j int) bool { return dests[i] < dests[j] })

		for _, destID := range dests {
			dest, ok := built[destID]
			if !ok {
				dest = vector.New()
				built[destID] = dest
			}
			dest.Append(src.vec)
		}
	}

	docID := postings.DocID(len(db.docOrder))
	for fieldID, vec := range built {
		db.indexFor(fieldID).InsertVector(docID, vec)
	}

	db.docs[docID] = built
	db.docOrder = append(db.docOrder, docID)
	db.pkToID[pk] = docID
	db.idToPK[docID] = pk

	slog.Debug("insert", "pk", pk, "doc_id", docID)
	return nil
}

// Delete tombstones the document bound to pk and removes the pk
// binding. An unknown pk is silently ignored.
func (db *Database) Delete(pk string) {
	db.Lock()
	defer db.Unlock()

	docID, ok := db.pkToID[pk]
	if !ok {
		return
	}
	db.tombstones[docID] = struct{}{}
	delete(db.pkToID, pk)

	slog.Debug("delete", "pk", pk, "doc_id", docID)
}

// DocIDByPK returns the DocumentId bound to pk, if any live binding
// exists.
func (db *Database) DocIDByPK(pk string) (postings.DocID, bool) {
	db.RLock()
	defer db.RUnlock()
	id, ok := db.pkToID[pk]
	return id, ok
}

// PKByDocID returns the primary key bound to id, if id has a live
// binding. A tombstoned id keeps its pk entry internally but is
// reported as absent.
func (db *Database) PKByDocID(id postings.DocID) (string, bool) {
	db.RLock()
	defer db.RUnlock()
	pk, ok := db.idToPK[id]
	if !ok {
		return "", false
	}
	if _, dead := db.tombstones[id]; dead {
		return "", false
	}
	return pk, true
}

// Hit is one scored search result resolved back to its primary key.
type Hit struct {
	PK    string
	Score float32
}

// Query evaluates q and returns every surviving document's primary key
// and score, per §4.8's scored executor rules. Order is unspecified;
// callers sort by descending score.
func (db *Database) Query(q query.Query) []Hit {
	db.RLock()
	defer db.RUnlock()

	scored := db.evalQuery(query.Simplify(q))
	out := make([]Hit, 0, len(scored))
	for _, s := range scored {
		pk, ok := db.idToPK[s.Doc]
		if !ok {
			continue
		}
		out = append(out, Hit{PK: pk, Score: s.Score})
	}
	return out
}

// SimpleMatch evaluates q and returns every surviving document's
// primary key, unscored.
func (db *Database) SimpleMatch(q query.Query) []string {
	db.RLock()
	defer db.RUnlock()

	ids := db.evalSimpleMatch(query.Simplify(q))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		pk, ok := db.idToPK[id]
		if !ok {
			continue
		}
		out = append(out, pk)
	}
	return out
}

func (db *Database) isLive(id postings.DocID) bool {
	_, dead := db.tombstones[id]
	return !dead
}
