package search

import (
	"encoding/json"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/fieldnation/devportal/errors"
)

const (
	formatVersion = 1

	// bm25 parameters
	k1 = 1.2
	b  = 0.75

	titleBoost = 2
)

type posting struct {
	doc  int
	freq int
}

// Index is an in memory inverted index with bm25 scoring.
type Index struct {
	byID     map[string]int
	entries  []*Entry
	lengths  []int
	postings map[string][]posting
	total    int
}

// Result is a scored search hit.
type Result struct {
	*Entry
	Score float64 `json:"score"`
}

type document struct {
	Count   int      `json:"count"`
	Entries []*Entry `json:"entries"`
	Version int      `json:"version"`
}

func NewIndex() *Index {
	return &Index{
		byID:     make(map[string]int),
		postings: make(map[string][]posting),
	}
}

// Insert adds an entry. Empty and duplicate ids are rejected.
func (i *Index) Insert(e *Entry) error {
	if e.ID == "" {
		return errors.Search.Label(e.URL).Message("missing id")
	}
	if _, exist := i.byID[e.ID]; exist {
		return errors.Search.Label(e.ID).Message("duplicate id")
	}

	doc := len(i.entries)
	i.byID[e.ID] = doc
	i.entries = append(i.entries, e)

	terms := tokenize(e.Content + " " + e.Description)
	for n := 0; n < titleBoost; n++ {
		terms = append(terms, tokenize(e.Title)...)
	}

	freqs := make(map[string]int)
	for _, term := range terms {
		freqs[term]++
	}
	for term, freq := range freqs {
		i.postings[term] = append(i.postings[term], posting{doc: doc, freq: freq})
	}

	i.lengths = append(i.lengths, len(terms))
	i.total += len(terms)
	return nil
}

func (i *Index) Len() int {
	return len(i.entries)
}

func (i *Index) Entries() []*Entry {
	entries := make([]*Entry, len(i.entries))
	copy(entries, i.entries)
	return entries
}

// Count returns the number of entries per type.
func (i *Index) Count(t EntryType) int {
	var n int
	for _, e := range i.entries {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Search returns the best matching entries for the query, at most limit
// if limit is positive. Terms are or-combined, a term which is a prefix of
// an indexed word matches with a lower weight.
func (i *Index) Search(query string, limit int) []Result {
	if len(i.entries) == 0 {
		return nil
	}

	n := float64(len(i.entries))
	avg := float64(i.total) / n
	scores := make(map[int]float64)

	for _, term := range tokenize(query) {
		for indexed, weight := range i.matches(term) {
			list := i.postings[indexed]
			df := float64(len(list))
			idf := math.Log(1 + (n-df+0.5)/(df+0.5))
			for _, p := range list {
				tf := float64(p.freq)
				norm := tf + k1*(1-b+b*float64(i.lengths[p.doc])/avg)
				scores[p.doc] += weight * idf * tf * (k1 + 1) / norm
			}
		}
	}

	results := make([]Result, 0, len(scores))
	for doc, score := range scores {
		results = append(results, Result{Entry: i.entries[doc], Score: score})
	}
	sort.Slice(results, func(a, c int) bool {
		if results[a].Score != results[c].Score {
			return results[a].Score > results[c].Score
		}
		return results[a].ID < results[c].ID
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func (i *Index) matches(term string) map[string]float64 {
	matches := make(map[string]float64)
	if _, exist := i.postings[term]; exist {
		matches[term] = 1
	}
	for indexed := range i.postings {
		if indexed != term && strings.HasPrefix(indexed, term) {
			matches[indexed] = 0.5
		}
	}
	return matches
}

// Save writes the entries as one json document.
func (i *Index) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(&document{
		Count:   len(i.entries),
		Entries: i.entries,
		Version: formatVersion,
	})
}

// Load reads an index written by Save.
func Load(r io.Reader) (*Index, error) {
	doc := &document{}
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Search.Message("invalid index").With(err)
	}
	if doc.Version != formatVersion {
		return nil, errors.Search.Messagef("unsupported index version: %d", doc.Version)
	}

	index := NewIndex()
	for _, e := range doc.Entries {
		if err := index.Insert(e); err != nil {
			return nil, err
		}
	}
	return index, nil
}
