package panel

import (
	"context"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"enet_panel/internal/logger"
)

// Device endpoints.
const (
	toggleLEDPath = "/cgi-bin/toggle_led"
	setSpeedPath  = "/cgi-bin/set_speed"
	ledStatePath  = "/ledstate"
	getSpeedPath  = "/get_speed"
)

// Fragment pages loaded into the content region.
const (
	AboutPage    = "about.htm"
	OverviewPage = "overview.htm"
	BlockPage    = "block.htm"
	IOHTTPPage   = "io_http.htm"
)

// maxCacheBust is the upper bound (inclusive) of the id query parameter.
const maxCacheBust = 1000

type Panel struct {
	doc       *Document
	fetch     Fetcher
	log       *logger.Logger
	cacheBust func() int
	refresh   *RefreshController

	mu       sync.Mutex
	handlers map[string]func()
}

type Option func(*options)

type options struct {
	log             *logger.Logger
	cacheBust       func() int
	refreshInterval time.Duration
}

func WithLogger(l *logger.Logger) Option { return func(o *options) { o.log = l } }

// WithCacheBust replaces the random id generator.
func WithCacheBust(fn func() int) Option { return func(o *options) { o.cacheBust = fn } }

func WithRefreshInterval(d time.Duration) Option {
	return func(o *options) { o.refreshInterval = d }
}

// New builds a panel. ctx is the panel lifetime: cancelling it ends the
// periodic refresh.
func New(ctx context.Context, doc *Document, fetch Fetcher, opts ...Option) *Panel {
	o := options{
		cacheBust:       func() int { return rand.IntN(maxCacheBust + 1) },
		refreshInterval: DefaultRefreshInterval,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Nop()
	}

	p := &Panel{
		doc:       doc,
		fetch:     fetch,
		log:       o.log,
		cacheBust: o.cacheBust,
		handlers:  make(map[string]func()),
	}
	p.refresh = NewRefreshController(ctx, o.refreshInterval, p.SpeedGet)
	return p
}

func (p *Panel) Document() *Document { return p.doc }

// Bootstrap wires navigation, shows the I/O page and reads the speed once.
func (p *Panel) Bootstrap() {
	p.On(AboutID, p.LoadAbout)
	p.On(IOHTTPID, p.LoadIOHTTP)

	p.LoadIOHTTP()
	p.SpeedGet()
}

// BindControls wires the remaining navigation entries and the buttons of
// the I/O page.
func (p *Panel) BindControls() {
	p.On(OverviewID, p.LoadOverview)
	p.On(BlockID, p.LoadBlock)
	p.On(ToggleLEDID, p.ToggleLED)
	p.On(SetSpeedID, p.SpeedRangeSet)
}

// On registers fn as the click handler of element id, replacing any other.
func (p *Panel) On(id string, fn func()) {
	p.mu.Lock()
	p.handlers[id] = fn
	p.mu.Unlock()
}

// Click runs the handler registered for id and reports whether there was one.
func (p *Panel) Click(id string) bool {
	p.mu.Lock()
	fn, ok := p.handlers[id]
	p.mu.Unlock()
	if !ok {
		return false
	}
	fn()
	return true
}

// LoadPage replaces the content region with page once it arrives.
func (p *Panel) LoadPage(page string) {
	p.loadPage(page, nil)
}

func (p *Panel) loadPage(page string, then func()) {
	p.fetch.Get(page, func(body string) {
		p.write(SetHTML(ContentID, body))
		if then != nil {
			then()
		}
	})
}

func (p *Panel) LoadAbout()    { p.LoadPage(AboutPage) }
func (p *Panel) LoadOverview() { p.LoadPage(OverviewPage) }
func (p *Panel) LoadBlock()    { p.LoadPage(BlockPage) }

// LoadIOHTTP shows the control page and then fills in its LED region.
func (p *Panel) LoadIOHTTP() {
	p.loadPage(IOHTTPPage, p.LEDStateGet)
}

func (p *Panel) LEDStateGet() {
	p.fetch.Get(p.withCacheBust(ledStatePath), p.showLEDState)
}

func (p *Panel) ToggleLED() {
	p.fetch.Get(toggleLEDPath, p.showLEDState)
}

func (p *Panel) showLEDState(body string) {
	p.write(SetHTML(LEDStateID, "<div>"+body+"</div>"))
}

// SpeedGet shows the device speed and moves the range control to match.
func (p *Panel) SpeedGet() {
	p.fetch.Get(p.withCacheBust(getSpeedPath), func(body string) {
		p.write(SetHTML(CurrentSpeedID, body), SetValue(SpeedRangeID, body))
	})
}

// SpeedSet sends value unchecked and shows the confirmed speed zero-padded.
func (p *Panel) SpeedSet(value string) {
	path := setSpeedPath + "?percent=" + url.QueryEscape(value)
	p.fetch.Get(p.withCacheBust(path), func(body string) {
		p.write(SetHTML(CurrentSpeedID, PadSpeed(body)))
	})
}

// SpeedRangeSet sends the range control's current value.
func (p *Panel) SpeedRangeSet() {
	v, ok := p.doc.Value(SpeedRangeID)
	if !ok {
		p.log.Debugw("speed_range_missing")
		return
	}
	p.SpeedSet(v)
}

// StartSpeedRefresh polls the speed every refresh interval. Calling it again
// while polling is a no-op.
func (p *Panel) StartSpeedRefresh() bool {
	return p.refresh.Start()
}

func (p *Panel) RefreshRunning() bool {
	return p.refresh.Running()
}

func (p *Panel) withCacheBust(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "id=" + strconv.Itoa(p.cacheBust())
}

func (p *Panel) write(writes ...Write) {
	if n := p.doc.Apply(writes...); n < len(writes) {
		p.log.Debugw("document_write_dropped", "applied", n, "requested", len(writes))
	}
}
