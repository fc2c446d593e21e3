package panel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"enet_panel/web"
)

// fakeDevice answers the panel's endpoints with canned bodies and records
// every request it sees.
type fakeDevice struct {
	mu       sync.Mutex
	led      string
	speed    string
	status   map[string]int // per path override
	requests []*url.URL
	pages    map[string]string
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		led:    "OFF",
		speed:  "10",
		status: map[string]int{},
		pages: map[string]string{
			"/about.htm":   "<h2>About</h2>",
			"/io_http.htm": `<span id="ledstate"></span><span id="current_speed"></span><input id="reference_range" type="range" value="0">`,
		},
	}
}

func (d *fakeDevice) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u := *r.URL
	d.requests = append(d.requests, &u)

	if code, ok := d.status[r.URL.Path]; ok && code != http.StatusOK {
		w.WriteHeader(code)
		_, _ = w.Write([]byte("nope"))
		return
	}

	switch r.URL.Path {
	case toggleLEDPath:
		_, _ = w.Write([]byte(d.led))
	case ledStatePath:
		_, _ = w.Write([]byte(d.led))
	case getSpeedPath:
		_, _ = w.Write([]byte(d.speed))
	case setSpeedPath:
		d.speed = r.URL.Query().Get("percent")
		_, _ = w.Write([]byte(d.speed))
	default:
		page, ok := d.pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(page))
	}
}

func (d *fakeDevice) set(fn func(d *fakeDevice)) {
	d.mu.Lock()
	fn(d)
	d.mu.Unlock()
}

func (d *fakeDevice) seen(path string) []*url.URL {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*url.URL
	for _, u := range d.requests {
		if u.Path == path {
			out = append(out, u)
		}
	}
	return out
}

type panelFixture struct {
	dev    *fakeDevice
	req    *Requester
	panel  *Panel
	doc    *Document
	cancel context.CancelFunc
}

// newFixture starts a fake device and a panel whose document already shows
// the I/O page, so the state regions exist.
func newFixture(t *testing.T, opts ...Option) *panelFixture {
	t.Helper()
	dev := newFakeDevice()
	srv := httptest.NewServer(dev)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	req, err := NewRequester(ctx, srv.URL, srv.Client(), nil)
	if err != nil {
		t.Fatalf("NewRequester: %v", err)
	}
	doc, err := NewDocument(web.Index())
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	doc.SetInnerHTML(ContentID, dev.pages["/io_http.htm"])

	return &panelFixture{
		dev:    dev,
		req:    req,
		panel:  New(ctx, doc, req, opts...),
		doc:    doc,
		cancel: cancel,
	}
}

func (f *panelFixture) html(t *testing.T, id string) string {
	t.Helper()
	f.req.Wait()
	v, ok := f.doc.InnerHTML(id)
	if !ok {
		t.Fatalf("region %q missing", id)
	}
	return v
}
