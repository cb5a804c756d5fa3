package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/term"

	"github.com/alnah/go-socialtext/internal/yamlutil"
)

const (
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
	ellipsis           = "…"
)

// record is the output of one command for one message. Records are
// marshaled as-is for json and yaml; writeText renders the text format.
type record interface {
	writeText(w io.Writer, width int) error
}

// printer renders command results to the environment's streams.
type printer struct {
	out    io.Writer
	errOut io.Writer
	format string
	color  bool
	width  int
	multi  bool // several inputs: text gets headers, json and yaml get a list
}

func newPrinter(env *Environment, s *settings, multi bool) *printer {
	return &printer{
		out:    env.Stdout,
		errOut: env.Stderr,
		format: s.format,
		color:  s.color,
		width:  s.width,
		multi:  multi,
	}
}

// printResults writes the successful records, then reports failures.
// With several inputs each failure is listed and the returned error wraps
// the first one, so its exit code is kept.
func (p *printer) printResults(results []result) error {
	var (
		recs   []record
		names  []string
		failed []result
	)
	for _, r := range results {
		if r.err != nil {
			failed = append(failed, r)
			continue
		}
		recs = append(recs, r.rec)
		names = append(names, r.source.name)
	}

	if len(recs) > 0 {
		if err := p.printRecords(recs, names); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if len(failed) == 0 {
		return nil
	}
	if !p.multi {
		return failed[0].err
	}
	for _, r := range failed {
		fmt.Fprintf(p.errOut, "FAILED %s: %v\n", r.source.name, r.err)
	}
	return fmt.Errorf("%d of %d inputs failed: %w", len(failed), len(results), failed[0].err)
}

func (p *printer) printRecords(recs []record, names []string) error {
	var v any = recs
	if !p.multi {
		v = recs[0]
	}

	switch p.format {
	case "json":
		data, err := marshalJSON(v)
		if err != nil {
			return err
		}
		return p.writeStructured(data, "json")
	case "yaml":
		data, err := yamlutil.Marshal(v)
		if err != nil {
			return err
		}
		return p.writeStructured(data, "yaml")
	default:
		for i, rec := range recs {
			if p.multi {
				if i > 0 {
					fmt.Fprintln(p.out)
				}
				fmt.Fprintf(p.out, "==> %s <==\n", names[i])
			}
			if err := rec.writeText(p.out, p.width); err != nil {
				return err
			}
		}
		return nil
	}
}

// writeStructured writes json or yaml, highlighted when color is on.
func (p *printer) writeStructured(data []byte, lexer string) error {
	if !p.color {
		_, err := p.out.Write(data)
		return err
	}
	return quick.Highlight(p.out, string(data), lexer, highlightFormatter, highlightStyle)
}

// printDocument writes a single YAML document in the configured format.
func (p *printer) printDocument(yamlData []byte) error {
	if p.format != "json" {
		return p.writeStructured(yamlData, "yaml")
	}
	data, err := yamlutil.ToJSON(yamlData)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	return p.writeStructured(buf.Bytes(), "json")
}

// marshalJSON encodes v as indented JSON without HTML escaping, so message
// text and URLs print as written.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fit truncates s to width terminal cells, ending cut text with an ellipsis.
// A non-positive width leaves s unchanged.
func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), ellipsis) // #nosec G115 -- width > 0
}

// fitColumn fits s into what remains of width after used cells.
func fitColumn(s string, width, used int) string {
	if width <= 0 {
		return s
	}
	return fit(s, max(width-used, 1))
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}

// resolveWidth returns the text line width: the flag when positive, none
// when negative, else the terminal width of w if it has one.
func resolveWidth(width int, w io.Writer) int {
	if width != 0 {
		return max(width, 0)
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || !isTerminal(w) {
		return 0
	}
	cols, _, err := term.GetSize(int(f.Fd())) // #nosec G115 -- fd fits in int
	if err != nil {
		return 0
	}
	return cols
}
