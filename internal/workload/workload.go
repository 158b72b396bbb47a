// Package workload defines the fixed table of recognized benchmark workloads
// and their parameters.
package workload

import (
	"sort"

	"github.com/benchkit/sqlbench/internal/gen"
)

// Op is the database operation a workload performs.
type Op int

const (
	OpWrite Op = iota
	OpRead
	OpDelete
)

// Descriptor is the resolved, immutable parameter set of one workload.
type Descriptor struct {
	Name string
	Op   Op
	// Order selects sequential or random key generation.
	Order gen.Order
	// EntriesPerBatch is the number of row operations grouped into one
	// transaction.
	EntriesPerBatch int
	// Sync forces each write to stable storage (synchronous = FULL);
	// otherwise durability is async (synchronous = OFF).
	Sync bool
	// FreshTable marks workloads that expect a newly created table. The
	// overwrite family and all reads/deletes run against whatever table
	// already exists; if none does, that is a caller error.
	FreshTable bool
	// NumDiv divides the configured entry count; 0 means no division.
	// The 100K variants run Num/1000 entries.
	NumDiv int
	// ValueSize overrides the configured value size; 0 keeps it.
	ValueSize int
	// ReadsDiv divides the configured read count for the duration of this
	// workload only; 0 means no division.
	ReadsDiv int
}

// table maps each recognized workload name to its descriptor. The set of
// names and their parameters is explicit data, not branches.
var table = map[string]Descriptor{
	"fillseq":        {Op: OpWrite, Order: gen.Sequential, EntriesPerBatch: 1, FreshTable: true},
	"fillseqsync":    {Op: OpWrite, Order: gen.Sequential, EntriesPerBatch: 1, Sync: true, FreshTable: true},
	"fillseqbatch":   {Op: OpWrite, Order: gen.Sequential, EntriesPerBatch: 1000, FreshTable: true},
	"fillrandom":     {Op: OpWrite, Order: gen.RandomOrder, EntriesPerBatch: 1, FreshTable: true},
	"fillrandsync":   {Op: OpWrite, Order: gen.RandomOrder, EntriesPerBatch: 1, Sync: true, FreshTable: true},
	"fillrandbatch":  {Op: OpWrite, Order: gen.RandomOrder, EntriesPerBatch: 1000, FreshTable: true},
	"overwrite":      {Op: OpWrite, Order: gen.RandomOrder, EntriesPerBatch: 1},
	"overwritesync":  {Op: OpWrite, Order: gen.RandomOrder, EntriesPerBatch: 1, Sync: true},
	"overwritebatch": {Op: OpWrite, Order: gen.RandomOrder, EntriesPerBatch: 1000},
	"fillrand100K":   {Op: OpWrite, Order: gen.RandomOrder, EntriesPerBatch: 1, FreshTable: true, NumDiv: 1000, ValueSize: 100 * 1000},
	"fillseq100K":    {Op: OpWrite, Order: gen.Sequential, EntriesPerBatch: 1, FreshTable: true, NumDiv: 1000, ValueSize: 100 * 1000},
	"readseq":        {Op: OpRead, Order: gen.Sequential, EntriesPerBatch: 1},
	"readrandom":     {Op: OpRead, Order: gen.RandomOrder, EntriesPerBatch: 1},
	"readrand100K":   {Op: OpRead, Order: gen.RandomOrder, EntriesPerBatch: 1, ReadsDiv: 1000},
	"delete":         {Op: OpDelete, Order: gen.RandomOrder, EntriesPerBatch: 1},
	"deletesync":     {Op: OpDelete, Order: gen.RandomOrder, EntriesPerBatch: 1, Sync: true},
}

// Resolve looks up a workload by exact name match. The second return value
// reports whether the name is recognized.
func Resolve(name string) (Descriptor, bool) {
	d, ok := table[name]
	if !ok {
		return Descriptor{}, false
	}
	d.Name = name
	return d, true
}

// Names returns the recognized workload names in sorted order, for usage
// output.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
