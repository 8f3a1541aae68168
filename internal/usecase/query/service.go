package query

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/parcelam/docdex/internal/domain"
	"github.com/parcelam/docdex/internal/domain/answer"
	"github.com/parcelam/docdex/internal/domain/document"
	"github.com/parcelam/docdex/internal/domain/rag"
	domtenant "github.com/parcelam/docdex/internal/domain/tenant"
	"github.com/parcelam/docdex/internal/index"
	"github.com/parcelam/docdex/internal/logger"
)

const (
	// DefaultTopK is the number of sources returned when the caller does
	// not ask for a specific count.
	DefaultTopK = 5
	// DefaultRerankModel is the cross-encoder used for the second pass.
	DefaultRerankModel = "bge-reranker-v2-m3"

	// overFetchFactor widens the first-pass fetch so the reranker has
	// enough candidates to select from. Fixed policy.
	overFetchFactor = 2
)

// Service answers natural-language questions over a tenant's documents.
type Service struct {
	idx         Searcher
	rerankModel string
	defaultTopK int
}

// New creates a query service.
func New(idx Searcher) *Service {
	return &Service{idx: idx, rerankModel: DefaultRerankModel, defaultTopK: DefaultTopK}
}

// WithRerankModel configures the rerank model id.
func (s *Service) WithRerankModel(model string) *Service {
	if model != "" {
		s.rerankModel = model
	}
	return s
}

// WithDefaultTopK configures the source count used when the caller does not
// ask for one.
func (s *Service) WithDefaultTopK(k int) *Service {
	if k > 0 {
		s.defaultTopK = k
	}
	return s
}

// Query retrieves, reranks, and summarizes the documents most relevant to
// the question, scoped to the tenant's namespace. Backend failures degrade
// to an empty well-formed result (logged, never returned as an error);
// a non-nil error means the input itself was invalid.
func (s *Service) Query(
	ctx context.Context, tenantID, question string, filter map[string]any, topK int,
) (rag.Result, error) {
	ns, err := domtenant.Namespace(tenantID)
	if err != nil {
		return rag.Empty(tenantID), err
	}
	if strings.TrimSpace(question) == "" {
		return rag.Empty(tenantID), fmt.Errorf("tenant %s: %w", ns, domain.ErrEmptyQuestion)
	}
	if topK < 1 {
		topK = s.defaultTopK
	}

	hits, err := s.idx.Search(ctx, ns, index.SearchRequest{
		Query:  question,
		TopK:   topK * overFetchFactor,
		Filter: filter,
		Rerank: index.Rerank{
			Model:      s.rerankModel,
			TopN:       topK,
			RankFields: []string{document.FieldContent},
		},
	})
	if err != nil {
		// Degrade to an empty result so callers always get a usable
		// response; the failure is surfaced through the log.
		logger.FromContext(ctx).Warn("search failed, returning empty result",
			zap.String("tenant_id", tenantID),
			zap.Error(err),
		)
		return rag.Empty(tenantID), nil
	}

	if len(hits) > topK {
		hits = hits[:topK]
	}

	sources := make([]rag.Source, 0, len(hits))
	for _, h := range hits {
		sources = append(sources, sourceFromHit(h))
	}

	return rag.NewResult(answer.Synthesize(sources), sources, tenantID), nil
}

// sourceFromHit reshapes a backend hit into retrieval evidence. Every field
// except content and title rides along as metadata.
func sourceFromHit(h index.Hit) rag.Source {
	title := "Untitled"
	if t, ok := h.Fields[document.FieldTitle].(string); ok && t != "" {
		title = t
	}

	content, _ := h.Fields[document.FieldContent].(string)

	metadata := make(map[string]any, len(h.Fields))
	for k, v := range h.Fields {
		if k == document.FieldContent || k == document.FieldTitle {
			continue
		}
		metadata[k] = v
	}

	return rag.NewSource(h.ID, title, content, h.Score, metadata)
}
