package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aadc/internal/report"
	"aadc/internal/source"
)

func mustDoc(t *testing.T, content string) *source.Document {
	t.Helper()
	doc, err := source.FromBytes("test", []byte(content), true)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	return doc
}

func TestProcessCorrectsRaggedBox(t *testing.T) {
	doc := mustDoc(t, strings.Join([]string{
		"+--------+",
		"| hello|",
		"| world  |",
		"+--------+",
	}, "\n"))

	res := Process(doc, DefaultOptions())
	if res.Err != nil {
		t.Fatalf("Process: %v", res.Err)
	}
	if !res.Changed {
		t.Fatal("ragged box should produce changes")
	}
	if res.Corrected[1] != "| hello  |" {
		t.Fatalf("line 1 = %q", res.Corrected[1])
	}
	if res.Report.BlocksFound != 1 || res.Report.BlocksModified != 1 {
		t.Fatalf("stats = %+v", res.Report)
	}
	if res.Report.RevisionsApplied == 0 {
		t.Fatal("no revisions recorded")
	}
}

func TestProcessPassThrough(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&sb, "prose line %d with no drawings\n", i)
	}
	doc := mustDoc(t, sb.String())

	res := Process(doc, DefaultOptions())
	if !res.Report.PassThrough {
		t.Fatal("expected pass-through")
	}
	if res.Changed {
		t.Fatal("pass-through must not change the document")
	}
	if len(res.Corrected) != len(doc.Lines) {
		t.Fatalf("line count changed: %d -> %d", len(doc.Lines), len(res.Corrected))
	}
}

func TestProcessAllBlocksOverridesQuickScan(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&sb, "prose line %d\n", i)
	}
	sb.WriteString("+----+\n| a|\n+----+\n")
	doc := mustDoc(t, sb.String())

	opts := DefaultOptions()
	opts.AllBlocks = true
	res := Process(doc, opts)
	if res.Report.PassThrough {
		t.Fatal("all-blocks mode must not pass through")
	}
	if !res.Changed {
		t.Fatal("expected the trailing box to be corrected")
	}
}

func TestProcessBelowThresholdBlockSkipped(t *testing.T) {
	// Boxy lines without right borders score low confidence.
	doc := mustDoc(t, strings.Join([]string{
		"| aaa",
		"| bb",
		"| c",
	}, "\n"))

	opts := DefaultOptions()
	opts.BlockThreshold = 0.99
	res := Process(doc, opts)
	if res.Report.BlocksFound != 0 {
		t.Fatalf("BlocksFound = %d, want 0", res.Report.BlocksFound)
	}
	var skipped bool
	for _, blk := range res.Report.Blocks {
		if blk.Status == report.StatusBelowThreshold {
			skipped = true
		}
	}
	if !skipped {
		t.Fatal("expected a below-threshold block report")
	}
}

func TestProcessExpandsTabs(t *testing.T) {
	doc := mustDoc(t, "+----+\n|\ta|\n+----+\n")

	res := Process(doc, DefaultOptions())
	if strings.ContainsRune(strings.Join(res.Corrected, "\n"), '\t') {
		t.Fatal("tabs survived expansion")
	}
}

func TestProcessLargeDocument(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 10000; i++ {
		if i%100 == 0 {
			sb.WriteString("+------+\n| box|\n+------+\n")
			continue
		}
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	doc := mustDoc(t, sb.String())

	res := Process(doc, DefaultOptions())
	if res.Report.PassThrough {
		t.Fatal("document with diagrams passed through")
	}
	if res.Report.BlocksModified != 100 {
		t.Fatalf("BlocksModified = %d, want 100", res.Report.BlocksModified)
	}
}

func TestScan(t *testing.T) {
	doc := mustDoc(t, "text\n+--+\n|ab|\n+--+\n")
	rep := Scan(doc, DefaultOptions())
	if !rep.Scan.LikelyHasDiagrams {
		t.Fatal("scan missed the diagram")
	}
	if len(rep.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(rep.Blocks))
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	path := filepath.Join(t.TempDir(), "box.txt")
	if err := os.WriteFile(path, []byte("+----+\n| a|\n+----+\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := source.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	opts := DefaultOptions()
	opts.Cache = cache

	first := Process(doc, opts)
	if first.FromCache {
		t.Fatal("first run cannot hit the cache")
	}
	second := Process(doc, opts)
	if !second.FromCache {
		t.Fatal("second run should hit the cache")
	}
	if strings.Join(first.Corrected, "\n") != strings.Join(second.Corrected, "\n") {
		t.Fatal("cached output differs from computed output")
	}

	// Changing an option must invalidate the key.
	opts.MinScore = 0.9
	third := Process(doc, opts)
	if third.FromCache {
		t.Fatal("different options must not share a cache entry")
	}
}

func TestDiskCacheSkipsVirtualDocuments(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	opts := DefaultOptions()
	opts.Cache = cache

	doc := mustDoc(t, "+--+\n|a|\n+--+\n")
	Process(doc, opts)
	res := Process(doc, opts)
	if res.FromCache {
		t.Fatal("virtual documents must never be cached")
	}
}

func TestProcessPaths(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	if err := os.WriteFile(good, []byte("+----+\n| a|\n+----+\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	missing := filepath.Join(dir, "missing.txt")
	plain := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(plain, []byte("just text\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	results, err := ProcessPaths(context.Background(), []string{good, missing, plain}, DefaultOptions())
	if err != nil {
		t.Fatalf("ProcessPaths: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Path != good || results[1].Path != missing || results[2].Path != plain {
		t.Fatal("results out of input order")
	}
	if results[0].Err != nil || !results[0].Changed {
		t.Fatalf("good file: err=%v changed=%v", results[0].Err, results[0].Changed)
	}
	if results[1].Err == nil {
		t.Fatal("missing file should carry an error")
	}
	if results[2].Err != nil || results[2].Changed {
		t.Fatalf("plain file: err=%v changed=%v", results[2].Err, results[2].Changed)
	}
}

func TestProcessPathsEmitsEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	sink := make(ChannelSink, 16)
	opts := DefaultOptions()
	opts.Sink = sink

	if _, err := ProcessPaths(context.Background(), []string{path}, opts); err != nil {
		t.Fatalf("ProcessPaths: %v", err)
	}
	close(sink)

	var stages []Stage
	for event := range sink {
		stages = append(stages, event.Stage)
	}
	if len(stages) != 2 || stages[0] != StageStart || stages[1] != StageDone {
		t.Fatalf("stages = %v", stages)
	}
}
