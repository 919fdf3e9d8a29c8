package gallery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/seqsense/pcgol/mat"
	"go.uber.org/zap/zaptest"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

var errNotFound = errors.New("failed to fetch file: Not Found")

type fakeFetcher struct {
	mu      sync.Mutex
	files   map[string]string
	fetched []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, path)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, ok := f.files[path]
	if !ok {
		return nil, errNotFound
	}
	return []byte(b), nil
}

func (f *fakeFetcher) Fetched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}

type frameRequest struct {
	fn        func()
	cancelled bool
}

// fakeScheduler queues callbacks until the test runs them.
type fakeScheduler struct {
	mu     sync.Mutex
	idle   []func()
	frames []*frameRequest
}

func (s *fakeScheduler) Idle(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idle = append(s.idle, fn)
}

func (s *fakeScheduler) Frame(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &frameRequest{fn: fn}
	s.frames = append(s.frames, r)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		r.cancelled = true
	}
}

func (s *fakeScheduler) RunIdle() {
	for {
		s.mu.Lock()
		if len(s.idle) == 0 {
			s.mu.Unlock()
			return
		}
		fn := s.idle[0]
		s.idle = s.idle[1:]
		s.mu.Unlock()
		fn()
	}
}

// RunFrame runs callbacks requested before the call.
func (s *fakeScheduler) RunFrame() {
	s.mu.Lock()
	frames := s.frames
	s.frames = nil
	s.mu.Unlock()
	for _, r := range frames {
		s.mu.Lock()
		cancelled := r.cancelled
		s.mu.Unlock()
		if !cancelled {
			r.fn()
		}
	}
}

func (s *fakeScheduler) PendingFrames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, r := range s.frames {
		if !r.cancelled {
			n++
		}
	}
	return n
}

type fakeRenderer struct {
	mu            sync.Mutex
	width, height int
	renders       int
	disposed      int
	orbit         *Orbit
	scene         *Scene
	renderErr     error
	disposeErr    error
}

func (r *fakeRenderer) ClientSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *fakeRenderer) Resize(w, h int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = w, h
}

func (r *fakeRenderer) Render(s *Scene, projection, view mat.Mat4) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.renderErr != nil {
		return r.renderErr
	}
	r.renders++
	r.scene = s
	return nil
}

func (r *fakeRenderer) BindControls(o *Orbit) {
	r.orbit = o
}

func (r *fakeRenderer) Dispose() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disposed++
	return r.disposeErr
}

func (r *fakeRenderer) Renders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders
}

type fakePage struct {
	mu          sync.Mutex
	missing     map[int]bool
	rendererErr map[int]error
	disposeErr  map[int]error
	renderers   map[int]*fakeRenderer
	loading     map[int]bool
	errors      map[int]string
	hidden      map[int]bool
}

func newFakePage() *fakePage {
	return &fakePage{
		missing:     make(map[int]bool),
		rendererErr: make(map[int]error),
		disposeErr:  make(map[int]error),
		renderers:   make(map[int]*fakeRenderer),
		loading:     make(map[int]bool),
		errors:      make(map[int]string),
		hidden:      make(map[int]bool),
	}
}

func (p *fakePage) HasContainer(slot int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.missing[slot]
}

func (p *fakePage) NewRenderer(slot int) (Renderer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.rendererErr[slot]; err != nil {
		return nil, err
	}
	r := &fakeRenderer{width: 400, height: 300, disposeErr: p.disposeErr[slot]}
	p.renderers[slot] = r
	return r, nil
}

func (p *fakePage) ShowLoading(slot int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading[slot] = true
}

func (p *fakePage) HideLoading(slot int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.loading, slot)
}

func (p *fakePage) ShowError(slot int, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.loading, slot)
	p.errors[slot] = msg
}

func (p *fakePage) HideSlot(slot int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.loading, slot)
	p.hidden[slot] = true
}

func (p *fakePage) Renderer(slot int) *fakeRenderer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderers[slot]
}

type testEnv struct {
	gallery *Gallery
	fetcher *fakeFetcher
	sched   *fakeScheduler
	page    *fakePage
}

func newTestEnv(t *testing.T, files map[string]string, page *fakePage) *testEnv {
	t.Helper()
	if page == nil {
		page = newFakePage()
	}
	env := &testEnv{
		fetcher: &fakeFetcher{files: files},
		sched:   &fakeScheduler{},
		page:    page,
	}
	g, err := New(DefaultConfig(), env.fetcher, env.sched, env.page, zaptest.NewLogger(t).Sugar())
	if err != nil {
		t.Fatal(err)
	}
	clock := &fakeClock{t: time.Unix(1000, 0)}
	g.now = clock.Now
	env.gallery = g
	return env
}
