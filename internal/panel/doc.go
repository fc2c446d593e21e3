// Package panel is a headless control panel for the Ethernet I/O controller.
//
// A Panel keeps a Document (the page the operator sees) in sync with the
// device by issuing fire-and-forget GET requests. Each request writes its
// response into one or two named regions when it succeeds with status 200.
// Failed requests leave the document untouched. Nothing orders overlapping
// requests, so the last response to arrive wins for its region.
package panel
