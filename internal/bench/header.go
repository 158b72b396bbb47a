package bench

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/benchkit/sqlbench/internal/storage"
	"github.com/google/uuid"
)

// headerKeySize is the nominal key size reported in the run header.
const headerKeySize = 16

func newRunID() string {
	return uuid.New().String()
}

// printHeader reports the environment and run parameters before the first
// workload, so result lines can be interpreted and correlated later.
func (r *Runner) printHeader() {
	fmt.Fprintf(r.out, "SQLite:     version %s\n", storage.Version())
	fmt.Fprintf(r.out, "Date:       %s\n", time.Now().Format(time.ANSIC))
	r.printCPUInfo()
	fmt.Fprintf(r.out, "Run:        %s\n", r.runID)
	fmt.Fprintf(r.out, "Keys:       %d bytes each\n", headerKeySize)
	fmt.Fprintf(r.out, "Values:     %d bytes each\n", r.cfg.ValueSize)
	fmt.Fprintf(r.out, "Entries:    %d\n", r.cfg.Num)
	fmt.Fprintf(r.out, "RawSize:    %.1f MB (estimated)\n",
		float64(int64(headerKeySize+r.cfg.ValueSize)*int64(r.cfg.Num))/1048576.0)
	fmt.Fprintf(r.out, "ValuePool:  fingerprint %016x, compresses to %.1f%%\n",
		r.values.Fingerprint(),
		100*float64(r.values.CompressedSize())/float64(r.values.PoolSize()))
	fmt.Fprintf(r.out, "------------------------------------------------\n")
}

// printCPUInfo reports CPU model, count, and cache size from /proc/cpuinfo.
// Silently skipped on systems without it.
func (r *Runner) printCPUInfo() {
	f, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return
	}
	defer f.Close()

	numCPUs := 0
	cpuType := ""
	cacheSize := ""
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		key, val, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		switch key {
		case "model name":
			numCPUs++
			cpuType = val
		case "cache size":
			cacheSize = val
		}
	}
	if numCPUs > 0 {
		fmt.Fprintf(r.out, "CPU:        %d * %s\n", numCPUs, cpuType)
		fmt.Fprintf(r.out, "CPUCache:   %s\n", cacheSize)
	}
}
