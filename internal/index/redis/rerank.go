package redis

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/parcelam/docdex/internal/index"
)

// Lexical rerank: RediSearch has no cross-encoder, so the second pass blends
// the first-pass vector similarity with query/content term overlap. The sort
// is stable, so hits the reranker cannot separate keep their KNN order.

var wordRe = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

func rerank(query string, hits []index.Hit, topN int) []index.Hit {
	qset := tokenSet(query)

	reranked := make([]index.Hit, len(hits))
	for i, h := range hits {
		content, _ := h.Fields[fieldContent].(string)
		h.Score = (h.Score + overlapOchiai(qset, content)) / 2
		reranked[i] = h
	}

	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].Score > reranked[j].Score
	})

	if len(reranked) > topN {
		reranked = reranked[:topN]
	}
	return reranked
}

func tokenSet(s string) map[string]struct{} {
	tokens := wordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

// overlapOchiai computes the Ochiai coefficient between the query token set
// and the distinct tokens of text: |A∩B| / sqrt(|A|·|B|), in [0,1].
func overlapOchiai(qset map[string]struct{}, text string) float64 {
	if len(qset) == 0 {
		return 0
	}

	tokens := wordRe.FindAllString(strings.ToLower(text), -1)
	seen := make(map[string]struct{}, len(tokens))
	inter := 0
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := qset[t]; ok {
			inter++
		}
	}
	if len(seen) == 0 {
		return 0
	}

	return float64(inter) / math.Sqrt(float64(len(qset))*float64(len(seen)))
}
