package plugin

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/google/uuid"

	St "github.com/maroda/scansion/types"
)

type BadgerOutput struct {
	MU        sync.Mutex
	DB        *badger.DB
	BatchSize int
	Buffer    []*St.PoemAnalysis
}

func NewBadgerOutput(path string, batchSize int) (*BadgerOutput, error) {
	opts := badger.DefaultOptions(path).
		WithCompression(options.ZSTD).
		WithNumVersionsToKeep(1).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		slog.Error("BadgerOutput failed to open database", slog.Any("error", err))
		return nil, fmt.Errorf("database error: %w", err)
	}

	slog.Info("BadgerOutput opened",
		slog.String("path", path),
		slog.Int("batchSize", batchSize))

	return &BadgerOutput{
		DB:        db,
		BatchSize: batchSize,
		Buffer:    make([]*St.PoemAnalysis, 0, batchSize),
	}, nil
}

// WritePoem queues up a batch of analyses,
// when batchsize is reached, it calls flushLocked
// which calls WriteBatch() with the new batch
func (bo *BadgerOutput) WritePoem(poem *St.PoemAnalysis) error {
	bo.MU.Lock()
	defer bo.MU.Unlock()

	bo.Buffer = append(bo.Buffer, poem)
	if len(bo.Buffer) >= bo.BatchSize {
		return bo.flushLocked() // private Flush that does not lock
	}
	return nil
}

// WriteBatch performs the key/value creation to be stored
// and actually calls BadgerDB to write the data
func (bo *BadgerOutput) WriteBatch(poems []*St.PoemAnalysis) error {
	wb := bo.DB.NewWriteBatch()
	defer wb.Cancel()

	for _, p := range poems {
		v, err := PoemEncode(p)
		if err != nil {
			slog.Error("BadgerOutput failed to encode poem", slog.Any("error", err), slog.String("id", p.ID))
			return fmt.Errorf("encode error: %w", err)
		}
		if err := wb.Set(PoemKey(p), v); err != nil {
			slog.Error("BadgerOutput failed to set key in batch",
				slog.Any("error", err),
				slog.Time("created", p.Created),
				slog.String("id", p.ID))
			return fmt.Errorf("write batch error: %w", err)
		}
	}

	if err := wb.Flush(); err != nil {
		slog.Error("BadgerOutput failed to flush batch", slog.Any("error", err))
		return fmt.Errorf("batch flush error: %w", err)
	}

	return nil
}

// Flush is the public method that blocks,
// it sends data to WriteBatch and then clears the buffer
func (bo *BadgerOutput) Flush() error {
	bo.MU.Lock()
	defer bo.MU.Unlock()

	if len(bo.Buffer) == 0 {
		return nil
	}

	return bo.flushLocked()
}

// flushLocked mimics Flush without locking, called by WritePoem
func (bo *BadgerOutput) flushLocked() error {
	err := bo.WriteBatch(bo.Buffer) // Delegate to WriteBatch
	bo.Buffer = bo.Buffer[:0]       // Clear but keep capacity
	return err
}

// Close returns a Flush error but still attempts to close
func (bo *BadgerOutput) Close() error {
	slog.Info("BadgerOutput closing, flushing buffer",
		slog.Int("bufferSize", len(bo.Buffer)))
	flushErr := bo.Flush()
	closeErr := bo.DB.Close()

	if flushErr != nil {
		slog.Error("BadgerOutput failed to flush on close", slog.Any("error", flushErr))
		return fmt.Errorf("flush failed, close may have failed: %w", flushErr)
	}

	if closeErr != nil {
		slog.Error("BadgerOutput failed to close database", slog.Any("error", closeErr))
		return fmt.Errorf("close failed: %w", closeErr)
	}

	slog.Info("BadgerOutput closed successfully")
	return nil
}

func (bo *BadgerOutput) Type() string { return "BadgerDB" }

// PoemKey creates a composite key
// created timestamp + the 16 bytes of the analysis ID
func PoemKey(poem *St.PoemAnalysis) []byte {
	key := make([]byte, 8+16)

	// Using positive BigEndian integer to convert timestamp
	// so keys can be sorted chronologically by BadgerDB
	binary.BigEndian.PutUint64(key[0:8], uint64(poem.Created.UnixNano()))

	// Analyses created in the same nanosecond stay distinct
	if id, err := uuid.Parse(poem.ID); err == nil {
		copy(key[8:], id[:])
	}

	return key
}

// PoemEncode serializes the analysis for data storage
func PoemEncode(p *St.PoemAnalysis) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PoemDecode deserializes the analysis data
func PoemDecode(data []byte) (*St.PoemAnalysis, error) {
	var p St.PoemAnalysis
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	err := dec.Decode(&p)
	return &p, err
}

// QueryRange retrieves analyses created within [start, end)
// Keys lead with the timestamp so iteration can seek and stop early.
func (bo *BadgerOutput) QueryRange(start, end time.Time) ([]*St.PoemAnalysis, error) {
	var poems []*St.PoemAnalysis

	seek := make([]byte, 8)
	binary.BigEndian.PutUint64(seek, uint64(start.UnixNano()))
	stop := uint64(end.UnixNano())

	// db.View() callback
	// BadgerDB provides a transaction in which to get item.Value()
	err := bo.DB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(seek); it.Valid(); it.Next() {
			item := it.Item()
			if binary.BigEndian.Uint64(item.Key()[0:8]) >= stop {
				break
			}

			// item.Value() callback
			// BadgerDB passes bytes to the anon func
			err := item.Value(func(val []byte) error {
				poem, err := PoemDecode(val)
				if err != nil {
					slog.Error("BadgerOutput failed to decode poem", slog.Any("error", err))
					return fmt.Errorf("poem decode error: %w", err)
				}
				poems = append(poems, poem)
				return nil
			})
			if err != nil {
				slog.Error("BadgerOutput callback failure", slog.Any("error", err))
				return fmt.Errorf("item data error: %w", err)
			}
		}
		return nil
	})

	slog.Debug("BadgerOutput QueryRange successful", slog.Int("count", len(poems)))

	return poems, err
}
