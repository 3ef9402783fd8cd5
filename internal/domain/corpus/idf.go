package corpus

import (
	"encoding/csv"
	"io"
	"log"
	"math"
	"os"

	"joblens/internal/domain/text"
)

// Table maps normalized tokens to inverse-document-frequency weights. It is
// built once before the engine accepts traffic and never mutated afterwards,
// so it is safe to share across concurrent scoring calls. An empty table is a
// valid state meaning "operate unweighted".
type Table map[string]float64

const minWeight = 0.1

// defaultWeight is used for tokens the reference corpus never saw.
const defaultWeight = 1.0

func (t Table) Empty() bool {
	return len(t) == 0
}

// Weight returns the corpus weight for a token, or 1.0 when unknown.
func (t Table) Weight(token string) float64 {
	if w, ok := t[token]; ok {
		return w
	}
	return defaultWeight
}

// Load builds a Table from a CSV reference corpus. The description per record
// is chosen heuristically: the longest field wins, since the corpus carries no
// reliable header contract. Known limitation, kept as-is.
//
// A missing, unreadable, or empty corpus yields an empty Table and a warning;
// it never blocks startup.
func Load(path string, logger *log.Logger) Table {
	f, err := os.Open(path)
	if err != nil {
		warn(logger, "reference corpus unavailable, scoring unweighted: %v", err)
		return Table{}
	}
	defer f.Close()

	return build(f, logger)
}

func build(r io.Reader, logger *log.Logger) Table {
	rd := csv.NewReader(r)
	rd.FieldsPerRecord = -1

	// Header row is consumed; the description is picked per-record anyway.
	if _, err := rd.Read(); err != nil {
		warn(logger, "reference corpus empty, scoring unweighted")
		return Table{}
	}

	docFreq := make(map[string]int)
	docs := 0

	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		desc := longestField(rec)
		seen := text.TokenSet(desc)
		if len(seen) == 0 {
			continue
		}

		docs++
		for tok := range seen {
			docFreq[tok]++
		}
	}

	if docs == 0 {
		warn(logger, "reference corpus yielded no documents, scoring unweighted")
		return Table{}
	}

	table := make(Table, len(docFreq))
	for tok, df := range docFreq {
		w := math.Log((float64(docs)+1.0)/(float64(df)+1.0)) + 1.0
		if w < minWeight {
			w = minWeight
		}
		table[tok] = w
	}

	if logger != nil {
		logger.Printf("[Corpus] term-weight table built: docs=%d tokens=%d", docs, len(table))
	}
	return table
}

func longestField(rec []string) string {
	best := ""
	for _, v := range rec {
		if len(v) > len(best) {
			best = v
		}
	}
	return best
}

func warn(logger *log.Logger, format string, args ...any) {
	if logger == nil {
		return
	}
	logger.Printf("[Corpus] "+format, args...)
}
