package llm

import (
	"net/http"
	"sort"
	"strings"
	"sync"
)

// Registry maps provider ids to adapters.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: map[string]Adapter{}}
}

func (r *Registry) Register(provider string, a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[strings.ToLower(provider)] = a
}

func (r *Registry) Get(provider string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[strings.ToLower(strings.TrimSpace(provider))]
	return a, ok
}

func (r *Registry) Providers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.adapters))
	for k := range r.adapters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry registers openai, anthropic and gemini behind the shared retry ladder.
func DefaultRegistry(client *http.Client) *Registry {
	r := NewRegistry()
	r.Register("openai", WithRetryLadder(OpenAI{HTTP: client}))
	r.Register("anthropic", WithRetryLadder(Anthropic{HTTP: client}))
	r.Register("gemini", WithRetryLadder(Gemini{}))
	return r
}
