package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"rftidy/internal/transform"
	"rftidy/internal/version"
)

// Current schema version - increment when cachePayload format changes.
const cacheSchemaVersion uint16 = 1

// Digest identifies one (file contents, pipeline configuration) pair.
type Digest [sha256.Size]byte

// Cache remembers files that a given pipeline already left unchanged, so
// repeated runs over a large tree skip the parse and pipeline work for
// files that did not change. Entries are msgpack payloads on disk, one per
// digest. Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema  uint16
	Path    string // last path the digest was seen at, informational only
	Size    uint32
	Version string
	Stamp   int64
}

// OpenCache initializes the cache at the standard location
// ($XDG_CACHE_HOME/rftidy, falling back to ~/.cache/rftidy).
func OpenCache() (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, "rftidy", "clean")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// CleanKey derives the cache digest for file contents processed by the
// given pipeline. Any change to the contents, the selected passes, their
// parameters, the separator settings or the tool version changes the key.
func CleanKey(data []byte, p *transform.Pipeline, lineSeparator string) Digest {
	h := sha256.New()
	h.Write(data)
	fmt.Fprintf(h, "|v=%d|tool=%s|space=%d|range=%d-%d|sep=%s",
		cacheSchemaVersion, version.Number, p.Config.SpaceCount,
		p.Config.StartLine, p.Config.EndLine, lineSeparator)
	for _, inv := range p.Invocations {
		fmt.Fprintf(h, "|%s", inv.Descriptor.Name)
		keys := make([]string, 0, len(inv.Params))
		for k := range inv.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(h, ";%s=%s", k, inv.Params[k])
		}
	}
	var d Digest
	h.Sum(d[:0])
	return d
}

// IsClean reports whether the digest was previously marked clean.
func (c *Cache) IsClean(key Digest) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return false
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return false
	}
	return payload.Schema == cacheSchemaVersion
}

// MarkClean records that the pipeline leaves this digest unchanged.
// Failures are swallowed: the cache is advisory.
func (c *Cache) MarkClean(key Digest, path string, contentSize int) {
	size, err := safecast.Conv[uint32](contentSize)
	if err != nil {
		size = 0
	}
	payload := cachePayload{
		Schema:  cacheSchemaVersion,
		Path:    path,
		Size:    size,
		Version: version.Number,
		Stamp:   time.Now().Unix(),
	}
	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	tmp := c.pathFor(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return
	}
	_ = os.Rename(tmp, c.pathFor(key))
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".bin")
}
