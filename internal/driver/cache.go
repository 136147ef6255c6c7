package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"aadc/internal/report"
	"aadc/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest identifies cached output by content and options.
type Digest = [sha256.Size]byte

// DiskCache persists corrected documents keyed by a digest of the input
// content and the correction options. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores a corrected document and its report.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	LineCount uint32
	Corrected []string
	Report    report.Document
	Changed   bool
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt opens a cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "docs", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A payload
// written with a different schema version is treated as a miss.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey digests the document content together with every option that
// influences the corrected output.
func cacheKey(doc *source.Document, opts Options) Digest {
	h := sha256.New()
	h.Write(doc.Hash[:])

	writeFloat := func(v float64) {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	writeInt := func(v int) {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	}

	writeFloat(opts.MinScore)
	writeInt(opts.MaxIterations)
	writeInt(opts.TabWidth)
	if opts.AllBlocks {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	writeFloat(opts.BlockThreshold)
	writeFloat(opts.Weights.PadBase)
	writeFloat(opts.Weights.GapPenaltyPerColumn)
	writeFloat(opts.Weights.GapPenaltyCap)
	writeFloat(opts.Weights.StrongBonus)
	writeFloat(opts.Weights.MarginMismatchPenalty)
	writeFloat(opts.Weights.SynthesizeBase)
	writeFloat(opts.Weights.SynthesizeStrongBonus)
	writeFloat(opts.Weights.SynthesizeWeakBonus)

	var key Digest
	h.Sum(key[:0])
	return key
}

func resultToPayload(res *Result) (*DiskPayload, error) {
	lineCount, err := safecast.Conv[uint32](len(res.Corrected))
	if err != nil {
		return nil, fmt.Errorf("line count overflow: %w", err)
	}
	return &DiskPayload{
		Schema:    diskCacheSchemaVersion,
		LineCount: lineCount,
		Corrected: res.Corrected,
		Report:    res.Report,
		Changed:   res.Changed,
	}, nil
}
