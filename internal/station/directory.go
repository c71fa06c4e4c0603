package station

import "math/rand"

// Directory is the in-memory station index. It is built once from a loaded
// station list and read-mostly afterwards; a reload is a full replace via
// NewDirectory, never an incremental patch.
type Directory struct {
	records []Record
	byKey   map[string]int
	byCoord map[string][]int
}

// NewDirectory indexes a station list. Input order is preserved. When two
// records share a key the first one wins; both still occupy a slot so
// coordinate groups stay complete.
func NewDirectory(records []Record) *Directory {
	d := &Directory{
		records: make([]Record, len(records)),
		byKey:   make(map[string]int, len(records)),
		byCoord: make(map[string][]int),
	}
	copy(d.records, records)

	for i, r := range d.records {
		if _, ok := d.byKey[r.Key()]; !ok {
			d.byKey[r.Key()] = i
		}
		ck := r.CoordKey()
		d.byCoord[ck] = append(d.byCoord[ck], i)
	}
	return d
}

// Len returns the number of indexed stations.
func (d *Directory) Len() int {
	return len(d.records)
}

// Records returns a copy of all records in directory order.
func (d *Directory) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// ByKey looks up a station by its unique key.
func (d *Directory) ByKey(key string) (Record, bool) {
	i, ok := d.byKey[key]
	if !ok {
		return Record{}, false
	}
	return d.records[i], true
}

// AtCoord returns all stations sharing a coordinate key.
func (d *Directory) AtCoord(coordKey string) []Record {
	idxs := d.byCoord[coordKey]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]Record, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, d.records[i])
	}
	return out
}

// Filter returns all stations matching an opaque predicate, in directory
// order. The predicate comes from the surrounding UI (region, tag, favorite
// or history membership); the directory does not interpret it.
func (d *Directory) Filter(pred func(Record) bool) []Record {
	var out []Record
	for _, r := range d.records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Random picks a uniformly random station whose key differs from
// excludeKey. Returns false when no candidate remains.
func (d *Directory) Random(excludeKey string, rng *rand.Rand) (Record, bool) {
	candidates := make([]int, 0, len(d.records))
	for i, r := range d.records {
		if r.Key() != excludeKey {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return Record{}, false
	}
	return d.records[candidates[rng.Intn(len(candidates))]], true
}
