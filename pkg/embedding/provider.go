package embedding

// EmbeddingResponse carries the normalized vector for one input text.
type EmbeddingResponse struct {
	Values []float32
}

// EmbeddingProvider defines the interface for generating text embeddings.
// taskType hints the intended use ("search_query" vs "search_document");
// providers that do not distinguish may ignore it.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}
