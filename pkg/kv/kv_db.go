package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-ch/pkg/util"
)

// OrderStore persists contraction orders by graph name so a hierarchy can be rebuilt by replay.
type OrderStore interface {
	SaveOrders(ctx context.Context, orders []OrderEntry) error
	// LoadOrder fails with ErrOrderNotFound if name is unknown and with ErrInvalidOrder if the
	// stored order was built on a graph of another shape.
	LoadOrder(ctx context.Context, name string, numNodes, numArcs int) (OrderEntry, error)
	Close() error
}

type OrderEntry struct {
	Name     string
	NumNodes int
	NumArcs  int
	// HopLimit is the witness search hop limit the order was computed with, 0 if unknown.
	HopLimit int32
	Order    []da.Index
}

const (
	keyPrefix = "order:"
	batchSize = 1000
)

func orderKey(name string) []byte {
	return []byte(keyPrefix + name)
}

func checkShape(name string, rec orderRecord, numNodes, numArcs int) error {
	if int(rec.NumNodes) != numNodes || int(rec.NumArcs) != numArcs {
		return util.WrapErrorf(util.ErrInvalidOrder, util.ErrBadInput,
			"order %q was built for %d nodes and %d arcs, graph has %d nodes and %d arcs",
			name, rec.NumNodes, rec.NumArcs, numNodes, numArcs)
	}
	if !util.IsPermutation(rec.Order, numNodes) {
		return util.WrapErrorf(util.ErrInvalidOrder, util.ErrInternal, "stored order %q is not a permutation", name)
	}
	return nil
}

func notFound(name string) error {
	return util.WrapErrorf(util.ErrOrderNotFound, util.ErrNotFound, "graph %q", name)
}

type BadgerOrderStore struct {
	db     *badger.DB
	logger *zap.Logger
}

func NewBadgerOrderStore(db *badger.DB, logger *zap.Logger) *BadgerOrderStore {
	return &BadgerOrderStore{db: db, logger: logger}
}

// OpenBadger opens a badger database at path, or an in memory one if path is empty.
func OpenBadger(path string, logger *zap.Logger) (*BadgerOrderStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := badger.DefaultOptions(path).WithLogger(badgerLogger{logger.Sugar()})
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternal, "open badger at %q", path)
	}
	return NewBadgerOrderStore(db, logger), nil
}

func (k *BadgerOrderStore) SaveOrders(ctx context.Context, orders []OrderEntry) error {
	for start := 0; start < len(orders); start += batchSize {
		end := min(start+batchSize, len(orders))
		if err := k.saveBatch(ctx, orders[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (k *BadgerOrderStore) saveBatch(ctx context.Context, orders []OrderEntry) error {
	batch := k.db.NewWriteBatch()
	defer batch.Cancel()

	for _, o := range orders {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		val, err := encodeOrder(newOrderRecord(o))
		if err != nil {
			return fmt.Errorf("encode order %q: %w", o.Name, err)
		}
		if err := batch.Set(orderKey(o.Name), val); err != nil {
			return err
		}
	}

	if err := batch.Flush(); err != nil {
		k.logger.Error("error saving contraction orders", zap.Error(err))
		return err
	}
	k.logger.Info("saved contraction orders", zap.Int("count", len(orders)))
	return nil
}

func (k *BadgerOrderStore) get(key []byte) ([]byte, error) {
	var val []byte
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

func (k *BadgerOrderStore) LoadOrder(ctx context.Context, name string, numNodes, numArcs int) (OrderEntry, error) {
	if err := ctx.Err(); err != nil {
		return OrderEntry{}, err
	}
	val, err := k.get(orderKey(name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return OrderEntry{}, notFound(name)
	}
	if err != nil {
		return OrderEntry{}, util.WrapErrorf(err, util.ErrInternal, "load order %q", name)
	}
	rec, err := decodeOrder(val)
	if err != nil {
		return OrderEntry{}, util.WrapErrorf(err, util.ErrInternal, "decode order %q", name)
	}
	if err := checkShape(name, rec, numNodes, numArcs); err != nil {
		return OrderEntry{}, err
	}
	return rec.entry(name), nil
}

func (k *BadgerOrderStore) Close() error {
	return k.db.Close()
}

// badgerLogger routes badger's own logging through zap.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}
