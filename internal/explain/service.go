package explain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/tanmay-g/prepdrill/internal/llm"
	"github.com/tanmay-g/prepdrill/internal/qset"
)

// Result is a finished explanation for a single request.
type Result struct {
	RequestID string
	Text      string
	Model     string
	Err       error
}

// Service generates question explanations asynchronously. Each request
// gets a unique ID; a result is only handed out to the caller holding
// that ID, so answers arriving after the user has moved on are dropped.
type Service struct {
	provider llm.Provider

	mu      sync.Mutex
	active  string
	results map[string]*Result
}

// NewService creates an explanation service backed by the given provider.
func NewService(provider llm.Provider) *Service {
	return &Service{
		provider: provider,
		results:  make(map[string]*Result),
	}
}

// Available reports whether a provider is configured.
func (s *Service) Available() bool {
	return s != nil && s.provider != nil
}

// Request starts async explanation generation for a question and
// returns the request ID. Any earlier in-flight request is abandoned;
// its result will be discarded when it lands.
func (s *Service) Request(ctx context.Context, q qset.Question) (string, error) {
	if !s.Available() {
		return "", fmt.Errorf("no explanation provider configured")
	}

	id := uuid.NewString()

	s.mu.Lock()
	s.active = id
	s.mu.Unlock()

	go func() {
		result := s.generate(ctx, id, q)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.active != id {
			return
		}
		s.results[id] = result
	}()

	return id, nil
}

// Consume returns the result for a request ID if it is ready.
// A consumed result is removed; a second call returns (nil, false).
func (s *Service) Consume(id string) (*Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[id]
	if !ok {
		return nil, false
	}
	delete(s.results, id)
	return result, true
}

// Cancel abandons a request. A result arriving for a cancelled ID is
// discarded instead of stored.
func (s *Service) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == id {
		s.active = ""
	}
	delete(s.results, id)
}

func (s *Service) generate(ctx context.Context, id string, q qset.Question) *Result {
	image, err := os.ReadFile(q.ImagePath)
	if err != nil {
		return &Result{RequestID: id, Err: fmt.Errorf("read question image: %w", err)}
	}

	explanation, err := s.provider.Explain(ctx, llm.ExplainRequest{
		Image:         image,
		ImageMIME:     imageMIME(q.ImagePath),
		CorrectAnswer: q.Correct,
	})
	if err != nil {
		return &Result{RequestID: id, Err: fmt.Errorf("generate explanation: %w", err)}
	}

	return &Result{
		RequestID: id,
		Text:      explanation.Text,
		Model:     explanation.Model,
	}
}

func imageMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
