package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/vvka-141/pbcore/internal/checksum"
	"github.com/vvka-141/pbcore/internal/datastream"
	"github.com/vvka-141/pbcore/pkg/pbcore"
)

// Indexer projects documents and writes them to a sink, skipping documents
// whose content and projection are unchanged since the last write.
type Indexer struct {
	sink   Sink
	sums   checksum.Calculator
	logger pbcore.Logger
}

func NewIndexer(sink Sink, logger pbcore.Logger) *Indexer {
	return &Indexer{sink: sink, sums: checksum.New(), logger: logger}
}

// Result reports what Index did with one document.
type Result struct {
	ID      string
	Fields  *pbcore.FieldMap
	Skipped bool
}

// Index projects d and stores it under id. Projection errors are returned
// before the sink is touched.
func (ix *Indexer) Index(ctx context.Context, id string, d *datastream.Document) (Result, error) {
	fields, err := Project(d)
	if err != nil {
		return Result{}, fmt.Errorf("project %s: %w", id, err)
	}

	sum, err := ix.fingerprint(d, fields)
	if err != nil {
		return Result{}, fmt.Errorf("checksum %s: %w", id, err)
	}

	stored, err := ix.sink.Checksum(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("lookup %s: %w", id, err)
	}
	if stored == sum {
		ix.logger.Verbose("%s unchanged, skipping", id)
		return Result{ID: id, Fields: fields, Skipped: true}, nil
	}

	if err := ix.sink.Put(ctx, Record{ID: id, Checksum: sum, Fields: fields}); err != nil {
		return Result{}, fmt.Errorf("store %s: %w", id, err)
	}
	ix.logger.Verbose("indexed %s (%d fields)", id, fields.Len())
	return Result{ID: id, Fields: fields}, nil
}

// fingerprint covers everything a stored record depends on: the variant the
// document was read as, its normalized content and the projected fields,
// which also reflect the configuration the schema was built from.
func (ix *Indexer) fingerprint(d *datastream.Document, fields *pbcore.FieldMap) (string, error) {
	data, err := d.Clone().Serialize()
	if err != nil {
		return "", err
	}
	projected, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	b.WriteString(string(d.Variant()))
	b.WriteByte(0)
	b.WriteString(ix.sums.Calculate(data))
	b.WriteByte(0)
	b.Write(projected)
	return ix.sums.CalculateRaw(b.Bytes()), nil
}
