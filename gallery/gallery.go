// Package gallery loads point clouds into a grid of independent viewers and
// keeps their render loops and trajectory overlays up to date.
package gallery

import (
	"context"
	"errors"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/seqsense/pcgol/mat"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seqsense/pcgallery/cloud"
	"github.com/seqsense/pcgallery/overlay"
)

var (
	ErrClosed        = errors.New("gallery is disposed")
	ErrNoContainer   = errors.New("viewer container not found")
	ErrEmptyAsset    = errors.New("point cloud has no points")
	ErrAlreadyLoaded = errors.New("gallery is already loaded")
)

type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Scheduler runs callbacks on the page event loop.
type Scheduler interface {
	// Idle runs fn when the page is idle.
	Idle(fn func())
	// Frame runs fn before the next repaint. cancel prevents the call.
	Frame(fn func()) (cancel func())
}

type Renderer interface {
	ClientSize() (width, height int)
	Render(s *Scene, projection, view mat.Mat4) error
	BindControls(o *Orbit)
	Dispose() error
}

// Page is the document hosting the viewer containers.
type Page interface {
	HasContainer(slot int) bool
	NewRenderer(slot int) (Renderer, error)
	ShowLoading(slot int)
	HideLoading(slot int)
	ShowError(slot int, msg string)
	HideSlot(slot int)
}

type Gallery struct {
	cfg     Config
	fetcher Fetcher
	sched   Scheduler
	page    Page
	log     *zap.SugaredLogger
	now     func() time.Time

	cache   *Cache
	builder *overlay.Builder

	mu          sync.Mutex
	slots       []*Slot
	assets      []*cloud.Asset
	overlays    map[int]*overlay.Data
	visibility  overlay.Visibility
	loaded      bool
	closed      bool
	cancelBatch func()
}

func New(cfg Config, f Fetcher, s Scheduler, p Page, log *zap.SugaredLogger) (*Gallery, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	g := &Gallery{
		cfg:        cfg,
		fetcher:    f,
		sched:      s,
		page:       p,
		log:        log,
		now:        time.Now,
		cache:      NewCache(),
		overlays:   make(map[int]*overlay.Data),
		visibility: cfg.Visibility(),
	}
	g.builder = overlay.NewBuilder(palette, cfg.TubeRadius)
	g.builder.Disc = func(r float32, seg int) *overlay.Geometry {
		return g.cache.Geometry(discKey(r, seg), func() *overlay.Geometry {
			return overlay.NewDisc(r, seg)
		})
	}
	for i := 1; i <= cfg.Slots; i++ {
		g.slots = append(g.slots, newSlot(i))
	}
	return g, nil
}

func (g *Gallery) Cache() *Cache {
	return g.cache
}

// Load fetches every candidate file concurrently. Viewers are scheduled as
// soon as their file is parsed. When nothing could be loaded, synthetic
// shapes are shown instead. Overlays are fetched after all point clouds
// settle.
//
// Slot i is bound to file i: a file that fails to load leaves its slot in
// error rather than shifting later files forward, and only slots past
// MaxFiles are hidden. Assets returns the compacted list.
func (g *Gallery) Load(ctx context.Context) error {
	g.mu.Lock()
	switch {
	case g.closed:
		g.mu.Unlock()
		return ErrClosed
	case g.loaded:
		g.mu.Unlock()
		return ErrAlreadyLoaded
	}
	g.loaded = true
	for _, s := range g.slots {
		if g.page.HasContainer(s.Index) {
			g.page.ShowLoading(s.Index)
		}
	}
	g.mu.Unlock()

	start := g.now()
	n := g.cfg.MaxFiles
	assets := make([]*cloud.Asset, n)
	errs := make([]error, n)

	eg, egCtx := errgroup.WithContext(ctx)
	for i := 1; i <= n; i++ {
		i := i
		eg.Go(func() error {
			a, err := g.loadAsset(egCtx, i)
			if err != nil {
				g.log.Warnw("failed to load point cloud", "index", i, "error", err)
				errs[i-1] = err
				return nil
			}
			assets[i-1] = a
			g.cache.SetAsset(i, a)
			g.scheduleViewer(i, a)
			return nil
		})
	}
	_ = eg.Wait()

	var loaded []int
	for i, a := range assets {
		if a != nil {
			loaded = append(loaded, i+1)
		}
	}

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return ErrClosed
	}
	g.assets = compact(assets)
	if len(g.assets) == 0 {
		if err := g.loadSynthetic(); err != nil {
			g.mu.Unlock()
			return err
		}
	} else {
		for _, s := range g.slots {
			if s.Index > n {
				g.hide(s)
				continue
			}
			if err := errs[s.Index-1]; err != nil {
				g.fail(s, err)
			}
		}
	}
	g.log.Infof("loaded %d of %d point clouds in %v", len(loaded), n, g.now().Sub(start))
	g.mu.Unlock()

	if len(loaded) > 0 {
		g.loadOverlays(ctx, loaded)
	}
	return nil
}

func (g *Gallery) loadAsset(ctx context.Context, i int) (*cloud.Asset, error) {
	p := g.cfg.AssetPath(i)
	b, err := g.fetcher.Fetch(ctx, p)
	if err != nil {
		return nil, err
	}
	return cloud.Decode(p, b)
}

// loadSynthetic must be called with g.mu held.
func (g *Gallery) loadSynthetic() error {
	syn, err := cloud.Synthetic(g.cfg.SyntheticSeed)
	if err != nil {
		return pkgerrors.Wrap(err, "generating synthetic point clouds")
	}
	g.log.Infof("no point cloud available, showing %d synthetic shapes", len(syn))
	g.assets = syn
	for i, a := range syn {
		g.cache.SetAsset(i+1, a)
		g.scheduleViewer(i+1, a)
	}
	for _, s := range g.slots {
		if s.Index > len(syn) {
			g.hide(s)
		}
	}
	return nil
}

func compact(assets []*cloud.Asset) []*cloud.Asset {
	var out []*cloud.Asset
	for _, a := range assets {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

func (g *Gallery) scheduleViewer(i int, a *cloud.Asset) {
	if i > len(g.slots) {
		return
	}
	g.sched.Idle(func() {
		g.initViewer(i, a)
	})
}

func (g *Gallery) initViewer(i int, a *cloud.Asset) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	s := g.slots[i-1]
	if s.state != SlotLoading {
		return
	}

	switch {
	case !g.page.HasContainer(i):
		g.fail(s, ErrNoContainer)
		return
	case a.Len() == 0:
		g.fail(s, ErrEmptyAsset)
		return
	}
	r, err := g.page.NewRenderer(i)
	if err != nil {
		g.fail(s, pkgerrors.Wrap(err, "creating renderer"))
		return
	}

	d := a.Box.MaxDimension()
	points := g.cache.Material(pointsMaterialKey, func() Material {
		return Material{
			Color:           g.cfg.color(g.cfg.PointColor),
			Opacity:         g.cfg.PointOpacity,
			SizeAttenuation: true,
			VertexColors:    g.cfg.VertexColors,
		}
	})
	points.Size = d * 0.01
	if points.Size < 0.01 {
		points.Size = 0.01
	}

	s.asset = a
	s.renderer = r
	s.orbit = NewOrbit(a.Box.Center(), d, g.cfg, g.now)
	s.scene = &Scene{
		Background: g.cfg.color(g.cfg.Background),
		Asset:      a,
		Points:     points,
	}
	if data, ok := g.overlays[i]; ok {
		s.scene.SetOverlay(g.meshes(data))
	}
	r.BindControls(s.orbit)

	if err := s.transit(SlotReady); err != nil {
		g.log.Warn(err)
		return
	}
	g.page.HideLoading(i)
	s.cancelLoop = g.sched.Frame(g.renderLoop(s))
	g.log.Infof("viewer %d initialized (%.2f)", i, d)
}

func (g *Gallery) renderLoop(s *Slot) func() {
	var tick func()
	tick = func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		s.cancelLoop = nil
		if g.closed || s.state != SlotReady {
			return
		}
		if err := s.frame(); err != nil {
			g.fail(s, pkgerrors.Wrap(err, "rendering"))
			return
		}
		s.cancelLoop = g.sched.Frame(tick)
	}
	return tick
}

// fail must be called with g.mu held.
func (g *Gallery) fail(s *Slot, err error) {
	if s.cancelLoop != nil {
		s.cancelLoop()
		s.cancelLoop = nil
	}
	if terr := s.transit(SlotError); terr != nil {
		g.log.Debug(terr)
		return
	}
	s.err = err
	g.page.ShowError(s.Index, err.Error())
	g.log.Errorw("viewer failed", "slot", s.Index, "error", err)
}

// hide must be called with g.mu held.
func (g *Gallery) hide(s *Slot) {
	if err := s.transit(SlotHidden); err != nil {
		g.log.Debug(err)
		return
	}
	g.page.HideSlot(s.Index)
}

// Assets returns successfully loaded assets in file order.
func (g *Gallery) Assets() []*cloud.Asset {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*cloud.Asset(nil), g.assets...)
}

// State returns the state of 1-based slot i.
func (g *Gallery) State(i int) SlotState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.slots[i-1].state
}

// Slot returns 1-based slot i. Its fields must not be accessed while the
// gallery is running.
func (g *Gallery) Slot(i int) *Slot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.slots[i-1]
}

// ActiveLoops returns the number of scheduled render loops.
func (g *Gallery) ActiveLoops() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	var n int
	for _, s := range g.slots {
		if s.cancelLoop != nil {
			n++
		}
	}
	return n
}

// Cleanup stops every render loop and releases every renderer. It may be
// called more than once.
func (g *Gallery) Cleanup() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}
	g.closed = true
	if g.cancelBatch != nil {
		g.cancelBatch()
		g.cancelBatch = nil
	}

	var err error
	for _, s := range g.slots {
		if s.cancelLoop != nil {
			s.cancelLoop()
			s.cancelLoop = nil
		}
		if s.renderer != nil {
			err = multierr.Append(err, s.renderer.Dispose())
			s.renderer = nil
		}
		s.scene = nil
		s.orbit = nil
		if terr := s.transit(SlotDisposed); terr != nil {
			g.log.Debug(terr)
		}
	}
	g.cache.Clear()
	g.overlays = make(map[int]*overlay.Data)
	g.assets = nil
	g.log.Info("gallery disposed")
	return err
}
