package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"enet_panel/internal/panel"
)

const consoleHelp = `commands:
  click <id>      run the click handler of element id
  toggle          toggle the LED
  speed [value]   send value, or the range control's value when omitted
  range <value>   move the range control
  get             read the speed
  led             read the LED state
  refresh         start the periodic speed refresh
  page <name>     load a page into the content region
  show [id]       print an element's inner HTML, or the whole document
  quit            exit`

// console maps text commands onto panel operations. Results arrive
// asynchronously and are reported by the document subscriber, not here.
type console struct {
	p   *panel.Panel
	out io.Writer
}

// run reads commands until EOF, quit, or ctx is done.
func (c *console) run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errc:
			return err
		case line := <-lines:
			if !c.exec(line) {
				return nil
			}
		}
	}
}

// exec runs one command line and reports whether to keep reading.
func (c *console) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	cmd, args := fields[0], fields[1:]
	doc := c.p.Document()

	switch cmd {
	case "quit", "exit":
		return false
	case "help", "?":
		fmt.Fprintln(c.out, consoleHelp)
	case "click":
		if len(args) != 1 {
			fmt.Fprintln(c.out, "usage: click <id>")
			break
		}
		if !c.p.Click(args[0]) {
			fmt.Fprintf(c.out, "no click handler for %q\n", args[0])
		}
	case "toggle":
		c.p.ToggleLED()
	case "speed":
		if len(args) == 0 {
			c.p.SpeedRangeSet()
			break
		}
		c.p.SpeedSet(args[0])
	case "range":
		if len(args) != 1 {
			fmt.Fprintln(c.out, "usage: range <value>")
			break
		}
		if !doc.SetValue(panel.SpeedRangeID, args[0]) {
			fmt.Fprintln(c.out, "range control is not on this page")
		}
	case "get":
		c.p.SpeedGet()
	case "led":
		c.p.LEDStateGet()
	case "refresh":
		if !c.p.StartSpeedRefresh() {
			fmt.Fprintln(c.out, "refresh already running")
		}
	case "page":
		if len(args) != 1 {
			fmt.Fprintln(c.out, "usage: page <name>")
			break
		}
		c.p.LoadPage(pageName(args[0]))
	case "show":
		if len(args) == 0 {
			fmt.Fprintln(c.out, doc.Render())
			break
		}
		markup, ok := doc.InnerHTML(args[0])
		if !ok {
			fmt.Fprintf(c.out, "no element %q\n", args[0])
			break
		}
		if v, _ := doc.Value(args[0]); v != "" {
			fmt.Fprintf(c.out, "%s (value=%s)\n", markup, v)
			break
		}
		fmt.Fprintln(c.out, markup)
	default:
		fmt.Fprintf(c.out, "unknown command %q, try help\n", cmd)
	}
	return true
}

// pageName lets "about" stand for "about.htm".
func pageName(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return name + ".htm"
}
