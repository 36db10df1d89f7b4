package risk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	chromem "github.com/philippgille/chromem-go"

	"github.com/mindbridge-care/sentinel/pkg/httputil"
	"github.com/mindbridge-care/sentinel/pkg/lexicon"
)

// SemanticEstimator catches crisis phrasing the substring matcher misses by
// comparing the message against embedded crisis exemplars in an in-process
// chromem vector store. Like the LLM estimator it is fail-open and can only
// raise the local crisis level.
type SemanticEstimator struct {
	db         *chromem.DB
	collection *chromem.Collection
	threshold  float32

	mu    sync.RWMutex
	ready bool
}

// CrisisExemplar is one seeded reference phrase with the level a confident
// match implies.
type CrisisExemplar struct {
	Text  string
	Level int
}

// defaultExemplars paraphrase the lexicon in ways substring matching cannot
// cover. Deployments pass their own set to SeedExemplars to extend or
// replace these.
func defaultExemplars() []CrisisExemplar {
	return []CrisisExemplar{
		{"I don't see a point in waking up tomorrow", 8},
		{"everyone's lives would improve if I wasn't around", 8},
		{"I've been thinking about how to make the pain stop for good", 9},
		{"I keep hurting my own body to feel something", 7},
		{"I'm planning to get back at the people who did this to me", 7},
		{"the voices won't leave me alone anymore", 7},
		{"I've been drinking until I black out every night", 6},
		{"nothing I do will ever change anything", 5},
		{"I haven't spoken to another person in weeks", 4},
	}
}

// NewSemanticEstimator builds an estimator over the given embedding source.
// The embedding func is injectable so tests run with a deterministic local
// embedder while production uses an HTTP embedding endpoint.
func NewSemanticEstimator(embeddingFunc chromem.EmbeddingFunc) (*SemanticEstimator, error) {
	if embeddingFunc == nil {
		return nil, fmt.Errorf("embedding func is nil")
	}

	db := chromem.NewDB()
	collection, err := db.CreateCollection("crisis_exemplars", nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &SemanticEstimator{
		db:         db,
		collection: collection,
		threshold:  0.65,
	}, nil
}

// SeedExemplars embeds the exemplar set into the vector store. Must be called
// once before Estimate.
func (s *SemanticEstimator) SeedExemplars(ctx context.Context, exemplars []CrisisExemplar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(exemplars) == 0 {
		exemplars = defaultExemplars()
	}

	docs := make([]chromem.Document, len(exemplars))
	for i, ex := range exemplars {
		docs[i] = chromem.Document{
			ID:      fmt.Sprintf("exemplar_%d", i),
			Content: lexicon.Normalize(ex.Text),
			Metadata: map[string]string{
				"level": strconv.Itoa(ex.Level),
			},
		}
	}

	// Sequential add; exemplar sets are small and remote embedding
	// endpoints dislike bursts.
	if err := s.collection.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("add exemplars: %w", err)
	}
	s.ready = true
	return nil
}

// Estimate returns the crisis level implied by the closest exemplar, or zero
// when nothing is similar enough.
func (s *SemanticEstimator) Estimate(ctx context.Context, message string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return 0, fmt.Errorf("semantic estimator not seeded")
	}

	results, err := s.collection.Query(ctx, lexicon.Normalize(message), 1, nil, nil)
	if err != nil {
		return 0, fmt.Errorf("query exemplars: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}

	best := results[0]
	if best.Similarity < s.threshold {
		return 0, nil
	}

	level, err := strconv.Atoi(best.Metadata["level"])
	if err != nil {
		return 0, fmt.Errorf("bad exemplar level %q: %w", best.Metadata["level"], err)
	}
	return level, nil
}

// NewHTTPEmbeddingFunc builds an embedding func against an Ollama-style
// /api/embeddings endpoint.
func NewHTTPEmbeddingFunc(model, baseURL string) chromem.EmbeddingFunc {
	client := httputil.Client(httputil.TierMedium)

	return func(ctx context.Context, text string) ([]float32, error) {
		payload, err := json.Marshal(map[string]string{
			"model":  model,
			"prompt": text,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/embeddings", bytes.NewBuffer(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("embedding request: %w", err)
		}
		defer httputil.DrainAndClose(resp.Body)

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("embedding API error %d", resp.StatusCode)
		}

		var result struct {
			Embedding []float32 `json:"embedding"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("decode embedding: %w", err)
		}
		return result.Embedding, nil
	}
}
