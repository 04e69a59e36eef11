package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"

	"github.com/lintang-b-s/navigatorx-ch/pkg/util"
)

type PebbleOrderStore struct {
	db     *pebble.DB
	logger *zap.Logger
}

func OpenPebble(path string, logger *zap.Logger) (*PebbleOrderStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternal, "open pebble at %q", path)
	}
	return &PebbleOrderStore{db: db, logger: logger}, nil
}

func (p *PebbleOrderStore) SaveOrders(ctx context.Context, orders []OrderEntry) error {
	batch := p.db.NewBatch()
	defer batch.Close()

	for i, o := range orders {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		val, err := encodeOrder(newOrderRecord(o))
		if err != nil {
			return fmt.Errorf("encode order %q: %w", o.Name, err)
		}
		if err := batch.Set(orderKey(o.Name), val, nil); err != nil {
			return err
		}
		if (i+1)%batchSize == 0 {
			if err := batch.Commit(pebble.Sync); err != nil {
				return err
			}
			batch.Reset()
		}
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		p.logger.Error("error saving contraction orders", zap.Error(err))
		return err
	}
	p.logger.Info("saved contraction orders", zap.Int("count", len(orders)))
	return nil
}

func (p *PebbleOrderStore) LoadOrder(ctx context.Context, name string, numNodes, numArcs int) (OrderEntry, error) {
	if err := ctx.Err(); err != nil {
		return OrderEntry{}, err
	}
	val, closer, err := p.db.Get(orderKey(name))
	if errors.Is(err, pebble.ErrNotFound) {
		return OrderEntry{}, notFound(name)
	}
	if err != nil {
		return OrderEntry{}, util.WrapErrorf(err, util.ErrInternal, "load order %q", name)
	}
	// val is only valid until closer is closed
	rec, err := decodeOrder(val)
	closer.Close()
	if err != nil {
		return OrderEntry{}, util.WrapErrorf(err, util.ErrInternal, "decode order %q", name)
	}
	if err := checkShape(name, rec, numNodes, numArcs); err != nil {
		return OrderEntry{}, err
	}
	return rec.entry(name), nil
}

func (p *PebbleOrderStore) Close() error {
	return p.db.Close()
}

// Open returns the OrderStore for backend, "badger" or "pebble".
func Open(backend, path string, logger *zap.Logger) (OrderStore, error) {
	switch backend {
	case "badger":
		return OpenBadger(path, logger)
	case "pebble":
		return OpenPebble(path, logger)
	}
	return nil, util.WrapErrorf(util.ErrInvalidConfig, util.ErrConfig, "unknown store backend %q", backend)
}
