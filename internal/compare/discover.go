package compare

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stellarbit/gatediff/pkg/benchreport"
)

// Pair is one discovered correspondence between a base artifact and a
// candidate artifact for the same contract. It is consumed once by the
// engine and not retained.
type Pair struct {
	Contract string
	BasePath string
	PRPath   string
}

// Discover scans dir (non-recursively) for candidate artifacts named
// <contract><prSuffix>.benchmark.json that have a sibling
// <contract><baseSuffix>.benchmark.json, and returns the pairs sorted by
// contract name so output never depends on filesystem enumeration order.
//
// Candidates without a base counterpart are new benchmarks with nothing to
// compare against and are skipped. A missing or unreadable directory is not
// fatal: it is logged and yields an empty pair set.
func Discover(logger *slog.Logger, dir, baseSuffix, prSuffix string) []Pair {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("reports directory does not exist, nothing to compare", "dir", dir)
		} else {
			logger.Error("failed to list reports directory", "dir", dir, "error", err)
		}
		return nil
	}

	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			present[e.Name()] = true
		}
	}

	prTail := prSuffix + benchreport.Extension
	baseTail := baseSuffix + benchreport.Extension

	var pairs []Pair
	for name := range present {
		contract, ok := strings.CutSuffix(name, prTail)
		if !ok {
			continue
		}
		baseName := contract + baseTail
		if !present[baseName] {
			logger.Debug("candidate report has no base counterpart", "file", name)
			continue
		}
		pairs = append(pairs, Pair{
			Contract: contract,
			BasePath: filepath.Join(dir, baseName),
			PRPath:   filepath.Join(dir, name),
		})
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Contract < pairs[j].Contract })
	return pairs
}
