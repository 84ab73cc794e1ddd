package loadtest

import (
	"fmt"
	"math/rand"
)

const payloadAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// randomPayload generates size bytes of printable synthetic data.
func randomPayload(r *rand.Rand, size int) []byte {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = payloadAlphabet[r.Intn(len(payloadAlphabet))]
	}
	return buf
}

var (
	rowStatuses   = []string{"active", "inactive", "pending", "completed", "cancelled"}
	rowCategories = []string{"electronics", "clothing", "food", "books", "toys", "sports", "home", "automotive"}
	rowDomains    = []string{"example.com", "test.com", "demo.org", "sample.net"}
)

// syntheticRow generates one structured row for bulk population: a stable
// item label followed by randomized attribute fields.
func syntheticRow(r *rand.Rand, id int) []byte {
	desc := randomPayload(r, 50+r.Intn(150))
	return []byte(fmt.Sprintf("item_%d|%s|%s|%.2f|%d|user%d@%s|%s",
		id,
		rowStatuses[r.Intn(len(rowStatuses))],
		rowCategories[r.Intn(len(rowCategories))],
		1.0+r.Float64()*9998.99,
		r.Intn(10001),
		id,
		rowDomains[r.Intn(len(rowDomains))],
		desc,
	))
}
