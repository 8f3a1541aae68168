package pinecone

// Wire DTOs for the Pinecone data and control planes.

type searchInputs struct {
	Text string `json:"text"`
}

type searchQuery struct {
	Inputs searchInputs   `json:"inputs"`
	TopK   int            `json:"top_k"`
	Filter map[string]any `json:"filter"`
}

type rerankSpec struct {
	Model      string   `json:"model"`
	TopN       int      `json:"top_n"`
	RankFields []string `json:"rank_fields"`
}

type searchRequest struct {
	Query  searchQuery `json:"query"`
	Rerank rerankSpec  `json:"rerank"`
	Fields []string    `json:"fields"`
}

type searchHit struct {
	ID     string         `json:"_id"`
	Score  float64        `json:"_score"`
	Fields map[string]any `json:"fields"`
}

type searchResponse struct {
	Result struct {
		Hits []searchHit `json:"hits"`
	} `json:"result"`
}

type deleteRequest struct {
	DeleteAll bool   `json:"deleteAll"`
	Namespace string `json:"namespace"`
}

type listIndexesResponse struct {
	Indexes []struct {
		Name string `json:"name"`
		Host string `json:"host"`
	} `json:"indexes"`
}
