package store

import (
	"sync"
	"testing"

	"github.com/tranvh/menuboard/internal/storage"
)

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *fakePublisher) Publish(name string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, name)
}

func (p *fakePublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func (p *fakePublisher) count(name string) int {
	n := 0
	for _, ev := range p.names() {
		if ev == name {
			n++
		}
	}
	return n
}

// fakeRemover records image removal requests.
type fakeRemover struct {
	removed []string
}

func (r *fakeRemover) Remove(imageURL string) error {
	r.removed = append(r.removed, imageURL)
	return nil
}

// newTestStore creates a store over a JSON-file backend in a temp
// directory with recording fakes for broadcast and image cleanup.
func newTestStore(t *testing.T) (*Store, *fakePublisher, *fakeRemover) {
	t.Helper()

	backend, err := storage.NewJSONDir(t.TempDir())
	if err != nil {
		t.Fatalf("creating backend: %v", err)
	}

	pub := &fakePublisher{}
	remover := &fakeRemover{}
	s, err := Open(backend, pub, remover)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	return s, pub, remover
}
