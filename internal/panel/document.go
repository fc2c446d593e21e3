package panel

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"
)

// Region ids the panel reads and writes.
const (
	ContentID      = "content"
	LEDStateID     = "ledstate"
	CurrentSpeedID = "current_speed"
	SpeedRangeID   = "reference_range"
	AboutID        = "about"
	OverviewID     = "overview"
	BlockID        = "block"
	IOHTTPID       = "io_http"
	ToggleLEDID    = "toggle_led"
	SetSpeedID     = "set_speed"
)

type ChangeKind string

const (
	ChangeHTML  ChangeKind = "html"
	ChangeValue ChangeKind = "value"
)

// Change describes one applied write.
type Change struct {
	ID    string     `json:"id"`
	Kind  ChangeKind `json:"kind"`
	Value string     `json:"value"`
	At    time.Time  `json:"at"`
}

// Write is a pending document mutation, see Apply.
type Write struct {
	ID    string
	Kind  ChangeKind
	Value string
}

func SetHTML(id, markup string) Write { return Write{ID: id, Kind: ChangeHTML, Value: markup} }
func SetValue(id, value string) Write { return Write{ID: id, Kind: ChangeValue, Value: value} }

// Document is an HTML tree with id-addressed regions. It is safe for
// concurrent use. Writes to ids not present in the tree are dropped.
type Document struct {
	mu   sync.RWMutex
	root *html.Node

	subMu sync.RWMutex
	subs  []func(Change)
}

// NewDocument parses the shell page the panel starts from.
func NewDocument(shell string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(shell))
	if err != nil {
		return nil, fmt.Errorf("parse shell: %w", err)
	}
	return &Document{root: root}, nil
}

// Subscribe registers fn to be called after every applied write.
func (d *Document) Subscribe(fn func(Change)) {
	d.subMu.Lock()
	d.subs = append(d.subs, fn)
	d.subMu.Unlock()
}

// Apply performs writes as one step: readers never observe a partial batch.
// It returns how many writes found their element.
func (d *Document) Apply(writes ...Write) int {
	now := time.Now().UTC()
	changes := make([]Change, 0, len(writes))

	d.mu.Lock()
	for _, w := range writes {
		el := findByID(d.root, w.ID)
		if el == nil {
			continue
		}
		switch w.Kind {
		case ChangeHTML:
			nodes, err := html.ParseFragment(strings.NewReader(w.Value), el)
			if err != nil {
				continue
			}
			replaceChildren(el, nodes)
			changes = append(changes, Change{ID: w.ID, Kind: w.Kind, Value: renderChildren(el), At: now})
		case ChangeValue:
			setAttr(el, "value", w.Value)
			changes = append(changes, Change{ID: w.ID, Kind: w.Kind, Value: w.Value, At: now})
		}
	}
	d.mu.Unlock()

	d.notify(changes)
	return len(changes)
}

// SetInnerHTML replaces the children of id with markup parsed in context.
func (d *Document) SetInnerHTML(id, markup string) bool {
	return d.Apply(SetHTML(id, markup)) == 1
}

// SetValue sets the value of a form control.
func (d *Document) SetValue(id, value string) bool {
	return d.Apply(SetValue(id, value)) == 1
}

// InnerHTML renders the children of id.
func (d *Document) InnerHTML(id string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	el := findByID(d.root, id)
	if el == nil {
		return "", false
	}
	return renderChildren(el), true
}

// Value returns the value of a form control.
func (d *Document) Value(id string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	el := findByID(d.root, id)
	if el == nil {
		return "", false
	}
	v, _ := getAttr(el, "value")
	return v, true
}

func (d *Document) Has(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return findByID(d.root, id) != nil
}

// Render serialises the whole document.
func (d *Document) Render() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var buf bytes.Buffer
	_ = html.Render(&buf, d.root)
	return buf.String()
}

func (d *Document) notify(changes []Change) {
	if len(changes) == 0 {
		return
	}
	d.subMu.RLock()
	subs := slices.Clone(d.subs)
	d.subMu.RUnlock()
	for _, c := range changes {
		for _, fn := range subs {
			fn(c)
		}
	}
}

// findByID returns the first element in document order carrying id.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		if v, ok := getAttr(n, "id"); ok && v == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func replaceChildren(el *html.Node, nodes []*html.Node) {
	for c := el.FirstChild; c != nil; {
		next := c.NextSibling
		el.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		el.AppendChild(n)
	}
}

func renderChildren(el *html.Node) string {
	var buf bytes.Buffer
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
