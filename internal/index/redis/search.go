package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"

	"github.com/parcelam/docdex/internal/domain"
	"github.com/parcelam/docdex/internal/index"
	"github.com/parcelam/docdex/internal/metrics"
)

// Search embeds the query, fetches TopK candidates via KNN, applies the
// metadata filter, and reranks locally down to Rerank.TopN.
func (x *Index) Search(ctx context.Context, namespace string, req index.SearchRequest) ([]index.Hit, error) {
	start := time.Now()
	hits, err := x.search(ctx, namespace, req)
	metrics.ObserveIndexOp(driverName, "search", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}
	return hits, nil
}

func (x *Index) search(ctx context.Context, namespace string, req index.SearchRequest) ([]index.Hit, error) {
	if req.TopK <= 0 {
		return nil, fmt.Errorf("top_k must be positive")
	}

	vec, err := x.embed.Embed(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	args := []string{
		x.indexName(namespace),
		fmt.Sprintf("*=>[KNN %d @%s $BLOB AS __vector_score]", req.TopK, fieldVector),
		"SORTBY", "__vector_score",
		"LIMIT", "0", strconv.Itoa(req.TopK),
		"PARAMS", "2", "BLOB", vectorToBytes(vec),
		"DIALECT", "2",
	}

	cmd := x.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := x.do(ctx, cmd).ToArray()
	if err != nil {
		// A namespace nobody has written to has no index yet: empty result.
		if isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index") {
			return []index.Hit{}, nil
		}
		return nil, fmt.Errorf("knn search: %w", err)
	}

	hits, err := x.parseKNNResult(namespace, raw)
	if err != nil {
		return nil, err
	}

	if len(req.Filter) > 0 {
		filtered := hits[:0]
		for _, h := range hits {
			if matchesFilter(h.Fields, req.Filter) {
				filtered = append(filtered, h)
			}
		}
		hits = filtered
	}

	topN := req.Rerank.TopN
	if topN <= 0 {
		topN = req.TopK
	}
	return rerank(req.Query, hits, topN), nil
}

// parseKNNResult decodes the RESP2 reply: [total, key1, fields1, key2, fields2, ...].
func (x *Index) parseKNNResult(namespace string, raw []rueidis.RedisMessage) ([]index.Hit, error) {
	if len(raw) == 0 {
		return []index.Hit{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return []index.Hit{}, nil
	}

	hits := make([]index.Hit, 0, total)
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		pairs, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		stored := parseFieldPairs(pairs)

		score := 0.0
		if s, err := strconv.ParseFloat(stored["__vector_score"], 64); err == nil {
			score = max(0, 1.0-s) // cosine distance → similarity, clamped to [0,1]
		}

		hits = append(hits, index.Hit{
			ID:     x.docID(namespace, key),
			Score:  score,
			Fields: hitFields(stored),
		})
	}

	return hits, nil
}

func parseFieldPairs(pairs []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(pairs)/2)
	for j := 0; j+1 < len(pairs); j += 2 {
		name, err := pairs[j].ToString()
		if err != nil {
			continue
		}
		value, err := pairs[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// hitFields rebuilds the flat record fields from the stored hash: plain
// content/title plus the decoded metadata blob. The vector never leaves
// the backend.
func hitFields(stored map[string]string) map[string]any {
	fields := make(map[string]any, len(stored))

	if content, ok := stored[fieldContent]; ok {
		fields[fieldContent] = content
	}
	if title, ok := stored[fieldTitle]; ok && title != "" {
		fields[fieldTitle] = title
	}

	if blob, ok := stored[fieldMeta]; ok && blob != "" {
		var meta map[string]any
		if err := json.Unmarshal([]byte(blob), &meta); err == nil {
			for k, v := range meta {
				fields[k] = v
			}
		}
	}

	return fields
}

// matchesFilter applies the metadata predicate as per-field equality.
// Values are compared by their printed form so that numeric metadata
// round-tripped through JSON still matches.
func matchesFilter(fields map[string]any, filter map[string]any) bool {
	for k, want := range filter {
		got, ok := fields[k]
		if !ok {
			return false
		}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}
