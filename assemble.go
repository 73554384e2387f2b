package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// Report is the partitioned, aggregated outcome of a run.
type Report struct {
	Results   []ProcessingResult // every result, in submission order
	Successes []ProcessingResult
	Skipped   []ProcessingResult
	Errors    []ProcessingResult
	Stats     RunStatistics
}

// assemble partitions the complete result set and folds the statistics. It
// must only be called once every worker has finished.
func assemble(results []ProcessingResult, tokensCounted bool) Report {
	rep := Report{Results: results}
	for _, res := range results {
		switch res.Status {
		case StatusSuccess:
			rep.Successes = append(rep.Successes, res)
			rep.Stats.TotalBytes += res.Metadata.Size
			rep.Stats.TotalTokens += res.Tokens
		case StatusSkipped:
			rep.Skipped = append(rep.Skipped, res)
		default:
			rep.Errors = append(rep.Errors, res)
		}
	}
	rep.Stats.Processed = len(rep.Successes)
	rep.Stats.Skipped = len(rep.Skipped)
	rep.Stats.Errors = len(rep.Errors)
	rep.Stats.TokensCounted = tokensCounted
	return rep
}

// ErrorSamples returns at most n errored results, in submission order.
func (r Report) ErrorSamples(n int) []ProcessingResult {
	if n <= 0 {
		return nil
	}
	return r.Errors[:min(n, len(r.Errors))]
}

// writeDocument writes the header, every successful file in submission order,
// and the footer.
func writeDocument(w io.Writer, r Renderer, root string, generated time.Time, rep Report) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(r.DocumentHeader(root, generated))
	for _, res := range rep.Successes {
		bw.WriteString(res.Header)
		bw.WriteString(renderContent(r, res.Content))
		bw.WriteString(res.Footer)
	}
	bw.WriteString(r.DocumentFooter(rep.Stats))
	return bw.Flush()
}

// writeOutputFile writes the document to path atomically, holding an advisory
// lock on "<path>.lock" so concurrent runs cannot interleave. The lock file is
// left in place; removing it would let two runs lock different inodes.
// Failures are returned as *SetupError.
func writeOutputFile(path string, r Renderer, root string, generated time.Time, rep Report) error {
	fail := func(op string, err error) error {
		return &SetupError{Op: op, Path: path, Kind: ErrOutputUnwritable, Err: err}
	}

	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	if err := lock.Lock(); err != nil {
		return fail("lock", err)
	}
	defer lock.Unlock()

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tempFile, err := os.CreateTemp(dir, tempPattern(base))
	if err != nil {
		return fail("create", err)
	}
	tempPath := tempFile.Name()

	// Ensure temp file is cleaned up on error
	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if err := writeDocument(tempFile, r, root, generated, rep); err != nil {
		return fail("write", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tempFile.Close(); err != nil {
		return fail("close", err)
	}
	if err := os.Chmod(tempPath, 0o644); err != nil {
		return fail("chmod", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fail("rename", err)
	}
	tempFile = nil
	return nil
}

// checkOutputWritable fails early, before any file is processed, when the
// output location cannot take a new file.
func checkOutputWritable(path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return &SetupError{Op: "open", Path: path, Kind: ErrOutputUnwritable, Err: fmt.Errorf("is a directory")}
	}
	dir := filepath.Dir(path)
	probe, err := os.CreateTemp(dir, tempPattern(filepath.Base(path)))
	if err != nil {
		return &SetupError{Op: "open", Path: path, Kind: ErrOutputUnwritable, Err: err}
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}

func tempPattern(base string) string {
	return "." + base + ".tmp-*"
}

// isOutputArtifact reports whether path is the output file or one of the
// lock/temp files written next to it.
func isOutputArtifact(path, output string) bool {
	if samePath(path, output) || samePath(path, output+".lock") {
		return true
	}
	if !samePath(filepath.Dir(path), filepath.Dir(output)) {
		return false
	}
	return strings.HasPrefix(filepath.Base(path), "."+filepath.Base(output)+".tmp-")
}
