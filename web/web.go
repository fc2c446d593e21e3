// Package web holds the HTML shell and fragments served by the device.
package web

import (
	"embed"
	"io/fs"
)

//go:embed *.htm
var files embed.FS

// IndexPage is the shell page both the device and the panel start from.
const IndexPage = "index.htm"

// FS returns the embedded pages.
func FS() fs.FS { return files }

// Index returns the shell page markup.
func Index() string {
	b, err := files.ReadFile(IndexPage)
	if err != nil {
		panic("web: embedded index missing: " + err.Error())
	}
	return string(b)
}

// Fragments lists the embedded page names other than the shell.
func Fragments() []string {
	names, _ := fs.Glob(files, "*.htm")
	out := names[:0]
	for _, n := range names {
		if n != IndexPage {
			out = append(out, n)
		}
	}
	return out
}
