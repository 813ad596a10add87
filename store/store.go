// Package store caches solved games in a badger database.
//
// Entries are keyed by solver name and arena fingerprint. Values are
// msgpack records compressed with zstd. A record also carries the vertex
// count and the sorted vertex ids, so a fingerprint collision reads as a
// miss instead of a wrong answer.
package store

import (
	"encoding/binary"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/katalvlaran/gamegraph/parity"
	"github.com/katalvlaran/gamegraph/solution"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	// ErrBadOptions is returned by Open for an unusable Options value.
	ErrBadOptions = errors.New("store: bad options")

	// ErrClosed is returned by any call after Close.
	ErrClosed = errors.New("store: closed")

	// ErrEmptySolver is returned when the solver name is empty.
	ErrEmptySolver = errors.New("store: empty solver name")
)

// recordVersion is bumped whenever record changes shape.
const recordVersion = 1

// Options selects where the cache lives.
type Options struct {
	Dir      string // database directory; ignored when InMemory
	InMemory bool   // keep everything in RAM
	ReadOnly bool   // open an existing Dir without writing
}

// Store is a solution cache. It is safe for concurrent use.
type Store struct {
	mu  sync.RWMutex
	db  *badger.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// record is the stored value.
type record struct {
	Version  int               `msgpack:"v"`
	Vertices int               `msgpack:"n"`
	IDs      []string          `msgpack:"ids"`
	Winner   []int8            `msgpack:"w"`
	Strategy map[string]string `msgpack:"s"`
}

// Open opens (or creates) a cache.
func Open(opts Options) (*Store, error) {
	if opts.Dir == "" && !opts.InMemory {
		return nil, errors.Wrap(ErrBadOptions, "Dir must be set unless InMemory")
	}
	if opts.InMemory && opts.ReadOnly {
		return nil, errors.Wrap(ErrBadOptions, "an in-memory cache cannot be read-only")
	}

	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = badger.DefaultOptions("")
		dbOpts.InMemory = true
	}
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrap(err, "store: open badger")
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store: zstd writer")
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, errors.Wrap(err, "store: zstd reader")
	}
	klog.V(2).Infof("store: opened (dir=%q in-memory=%v)", opts.Dir, opts.InMemory)

	return &Store{db: db, enc: enc, dec: dec}, nil
}

// Close flushes and closes the database. Calling Close twice is a no-op.
func (st *Store) Close() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.db == nil {
		return nil
	}
	err := st.db.Close()
	st.enc.Close()
	st.dec.Close()
	st.db = nil

	return errors.Wrap(err, "store: close")
}

// key is solverName, NUL, big-endian fingerprint.
func key(solver string, fp uint64) []byte {
	k := make([]byte, 0, len(solver)+9)
	k = append(k, solver...)
	k = append(k, 0)

	return binary.BigEndian.AppendUint64(k, fp)
}

// Put stores sol as the answer of solver on a.
func (st *Store) Put(a *parity.Arena, solver string, sol *solution.Solution) error {
	if solver == "" {
		return ErrEmptySolver
	}
	ids := sol.IDs()
	rec := record{
		Version:  recordVersion,
		Vertices: a.Len(),
		IDs:      ids,
		Winner:   make([]int8, len(ids)),
		Strategy: make(map[string]string, sol.StrategyLen()),
	}
	for i, id := range ids {
		w, _ := sol.Winner(id)
		rec.Winner[i] = int8(w)
		if to, ok := sol.Strategy(id); ok {
			rec.Strategy[id] = to
		}
	}
	raw, err := msgpack.Marshal(&rec)
	if err != nil {
		return errors.Wrap(err, "store: encode record")
	}

	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.db == nil {
		return ErrClosed
	}
	val := st.enc.EncodeAll(raw, nil)
	err = st.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(solver, a.Fingerprint()), val)
	})
	if err != nil {
		return errors.Wrapf(err, "store: put %s", solver)
	}
	klog.V(3).Infof("store: put %s (%d vertices, %d bytes)", solver, a.Len(), len(val))

	return nil
}

// Get returns the cached answer of solver on a. found is false on a miss,
// including a record whose vertex ids do not match a.
func (st *Store) Get(a *parity.Arena, solver string) (sol *solution.Solution, found bool, err error) {
	if solver == "" {
		return nil, false, ErrEmptySolver
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.db == nil {
		return nil, false, ErrClosed
	}

	var rec record
	err = st.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(solver, a.Fingerprint()))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			raw, err := st.dec.DecodeAll(val, nil)
			if err != nil {
				return errors.Wrap(err, "store: decompress record")
			}
			return errors.Wrap(msgpack.Unmarshal(raw, &rec), "store: decode record")
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if !matches(a, &rec) {
		klog.V(2).Infof("store: %s record does not match arena, treating as a miss", solver)
		return nil, false, nil
	}

	sol = solution.New(rec.Vertices)
	for i, id := range rec.IDs {
		sol.SetWinner(id, parity.Player(rec.Winner[i]))
	}
	for id, to := range rec.Strategy {
		sol.SetStrategy(id, to)
	}

	return sol, true, nil
}

// matches reports whether rec was written for an arena with a's vertex set.
func matches(a *parity.Arena, rec *record) bool {
	if rec.Version != recordVersion || rec.Vertices != a.Len() || len(rec.IDs) != a.Len() || len(rec.Winner) != len(rec.IDs) {
		return false
	}
	for i, id := range rec.IDs {
		if _, ok := a.Index(id); !ok {
			return false
		}
		if !parity.Player(rec.Winner[i]).Valid() {
			return false
		}
	}

	return true
}
