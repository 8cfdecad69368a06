// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Batch describes one set of records loaded into a store (typically one file)
type Batch struct {
	ID      uuid.UUID
	Name    string    // File name or other label given by the loader
	Loaded  time.Time // Wall clock time the batch was opened
	Begin   GTime     // Earliest epoch in the batch
	End     GTime     // Latest epoch in the batch
	Records int       // Number of records
}

func (b *Batch) add(t GTime) {
	if b.Records == 0 || t.Compare(b.Begin) < 0 {
		b.Begin = t
	}
	if b.Records == 0 || t.Compare(b.End) > 0 {
		b.End = t
	}
	b.Records++
}

// Provenance is the list of batches a store was built from
type Provenance struct {
	batches []*Batch
}

func NewProvenance() *Provenance {
	return &Provenance{batches: []*Batch{}}
}

// Batches returns copies of the recorded batches in load order
func (p *Provenance) Batches() []Batch {
	out := make([]Batch, len(p.batches))
	for i, b := range p.batches {
		out[i] = *b
	}
	return out
}

// Find returns the batch with the given id
func (p *Provenance) Find(id uuid.UUID) (Batch, bool) {
	for _, b := range p.batches {
		if b.ID == id {
			return *b, true
		}
	}
	return Batch{}, false
}

func (p *Provenance) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, " Loaded from %d batches:\n", len(p.batches))
	for _, b := range p.batches {
		fmt.Fprintf(&buf, "  %s %-20s %6d records, %s to %s\n", b.ID, b.Name, b.Records, b.Begin, b.End)
	}
	return buf.WriteTo(w)
}

// Load adds the records of one batch (file) to the store. When provenance tracking is
// on, the batch is recorded under the returned id; otherwise the id is uuid.Nil.
func (s *Store) Load(name string, recs []Record) uuid.UUID {
	if s.prov != nil {
		s.batch = &Batch{ID: uuid.New(), Name: name, Loaded: time.Now()}
		s.prov.batches = append(s.prov.batches, s.batch)
	}
	for _, r := range recs {
		s.AddRecord(r)
	}
	id := uuid.Nil
	if s.batch != nil {
		id = s.batch.ID
		s.log.Info("ephemeris batch loaded", "id", id.String(), "name", name, "records", s.batch.Records)
		s.batch = nil
	}
	return id
}
