package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/parcelam/docdex/internal/domain"
	"github.com/parcelam/docdex/internal/domain/document"
	"github.com/parcelam/docdex/internal/index"
	"github.com/parcelam/docdex/internal/metrics"
)

// Hash field names inside a stored record.
const (
	fieldContent = "content"
	fieldTitle   = "title"
	fieldMeta    = "meta" // JSON blob with the remaining record fields
	fieldVector  = "vector"
)

// Upsert vectorizes and writes records into a namespace. The namespace FT
// index is created lazily on first write.
func (x *Index) Upsert(ctx context.Context, namespace string, records []document.Record) error {
	if len(records) == 0 {
		return nil
	}

	start := time.Now()
	err := x.upsert(ctx, namespace, records)
	metrics.ObserveIndexOp(driverName, "upsert", time.Since(start).Seconds(), err)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}

	metrics.IndexRecordsUpserted.WithLabelValues(driverName).Add(float64(len(records)))
	return nil
}

func (x *Index) upsert(ctx context.Context, namespace string, records []document.Record) error {
	if err := x.ensureIndex(ctx, namespace); err != nil {
		return err
	}

	cmds := make([]rueidis.Completed, 0, len(records))
	for i := range records {
		rec := &records[i]

		vec, err := x.embed.Embed(ctx, rec.Content())
		if err != nil {
			return fmt.Errorf("vectorize record %s: %w", rec.ID(), err)
		}

		fields, err := hashFields(rec, vec)
		if err != nil {
			return err
		}

		cmd := x.b().Hset().Key(x.docKey(namespace, rec.ID())).FieldValue()
		for k, v := range fields {
			cmd = cmd.FieldValue(k, v)
		}
		cmds = append(cmds, cmd.Build())
	}

	for i, res := range x.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return fmt.Errorf("store record %s: %w", records[i].ID(), err)
		}
	}
	return nil
}

// hashFields flattens a record into hash fields: content and title stay
// plain, everything else rides in one JSON blob.
func hashFields(rec *document.Record, vec []float32) (map[string]string, error) {
	meta := make(map[string]any, len(rec.Fields()))
	title := ""
	for k, v := range rec.Fields() {
		if k == document.FieldTitle {
			title, _ = v.(string)
			continue
		}
		meta[k] = v
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode metadata for %s: %w", rec.ID(), err)
	}

	fields := map[string]string{
		fieldContent: rec.Content(),
		fieldMeta:    string(metaJSON),
		fieldVector:  vectorToBytes(vec),
	}
	if title != "" {
		fields[fieldTitle] = title
	}
	return fields, nil
}

// ensureIndex creates the namespace FT index if it does not exist yet.
func (x *Index) ensureIndex(ctx context.Context, namespace string) error {
	name := x.indexName(namespace)

	probe := x.b().Arbitrary("FT.INFO").Args(name).Build()
	err := x.do(ctx, probe).Error()
	if err == nil {
		return nil
	}
	if !isRedisErr(err, "unknown index name") && !isRedisErr(err, "no such index") {
		return fmt.Errorf("probe index %s: %w", name, err)
	}

	args := []string{
		name,
		"ON", "HASH",
		"PREFIX", "1", x.docPrefix(namespace),
		"SCHEMA",
		fieldContent, "TEXT",
		fieldVector, "VECTOR", "HNSW", "6",
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(x.dims),
		"DISTANCE_METRIC", "COSINE",
	}
	cmd := x.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := x.do(ctx, cmd).Error(); err != nil {
		// Concurrent first write may have created it already.
		if isRedisErr(err, "index already exists") {
			return nil
		}
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

// DeleteAll drops the namespace index together with its documents, then
// sweeps any leftover keys.
func (x *Index) DeleteAll(ctx context.Context, namespace string) error {
	start := time.Now()
	err := x.deleteAll(ctx, namespace)
	metrics.ObserveIndexOp(driverName, "delete_all", time.Since(start).Seconds(), err)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}
	return nil
}

func (x *Index) deleteAll(ctx context.Context, namespace string) error {
	drop := x.b().Arbitrary("FT.DROPINDEX").Args(x.indexName(namespace), "DD").Build()
	if err := x.do(ctx, drop).Error(); err != nil {
		if !isRedisErr(err, "unknown index name") && !isRedisErr(err, "no such index") {
			return fmt.Errorf("drop index: %w", err)
		}
	}

	keys, err := x.scan(ctx, x.docPrefix(namespace)+"*")
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, len(keys))
	for i, key := range keys {
		cmds[i] = x.b().Del().Key(key).Build()
	}
	for i, res := range x.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return fmt.Errorf("delete key %s: %w", keys[i], err)
		}
	}
	return nil
}

func (x *Index) scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		cmd := x.b().Scan().Cursor(cursor).Match(pattern).Count(100).Build()
		res, err := x.do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", pattern, err)
		}
		keys = append(keys, res.Elements...)
		cursor = res.Cursor
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}

// ListBackends reports one backend per namespace FT index under our prefix.
func (x *Index) ListBackends(ctx context.Context) ([]index.Backend, error) {
	start := time.Now()

	cmd := x.b().Arbitrary("FT._LIST").Build()
	names, err := x.do(ctx, cmd).AsStrSlice()
	metrics.ObserveIndexOp(driverName, "list_indexes", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, fmt.Errorf("%w: list indexes: %w", domain.ErrIndexUnavailable, err)
	}

	backends := make([]index.Backend, 0, len(names))
	for _, name := range names {
		if !strings.HasPrefix(name, x.prefix+"idx:") {
			continue
		}
		backends = append(backends, index.Backend{Name: name, Driver: driverName})
	}
	return backends, nil
}
