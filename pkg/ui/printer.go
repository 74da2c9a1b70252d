package ui

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/pacdec/pkg/errors"
)

// Printer writes user-facing output. In text format styles are not applied.
type Printer struct {
	out    io.Writer
	format Format
	styles Styles
}

// NewPrinter creates a printer. FormatAuto is resolved against out.
func NewPrinter(out io.Writer, format Format) *Printer {
	if format == FormatAuto {
		format = DetectFormat(out)
	}
	return &Printer{out: out, format: format, styles: DefaultStyles()}
}

// Format returns the resolved output format.
func (p *Printer) Format() Format {
	return p.format
}

// Style renders text with the named style.
func (p *Printer) Style(name, text string) string {
	if p.format != FormatTerminal {
		return text
	}
	return p.styles.Get(name).Render(text)
}

// Println writes one line.
func (p *Printer) Println(text string) {
	_, _ = fmt.Fprintln(p.out, text)
}

// Print writes text unchanged.
func (p *Printer) Print(text string) {
	_, _ = io.WriteString(p.out, text)
}

func (p *Printer) Header(text string)  { p.Println(p.Style("Header", text)) }
func (p *Printer) Success(text string) { p.Println(p.Style("Success", text)) }
func (p *Printer) Info(text string)    { p.Println(p.Style("Info", text)) }

// Warning prints text with a warning marker.
func (p *Printer) Warning(text string) {
	p.Println(p.Style("Warning", "warning: "+text))
}

// Error prints err. Structured errors print their message without the code.
func (p *Printer) Error(err error) {
	msg := err.Error()
	var pErr *errors.PacdecError
	if stderrors.As(err, &pErr) {
		msg = pErr.Message
		if pErr.Wrapped != nil {
			msg += ": " + pErr.Wrapped.Error()
		}
	}
	p.Println(p.Style("Error", "error: "+msg))
}

// PackageList prints a titled, counted list. style names the style for the
// items, e.g. Added or Removed.
func (p *Printer) PackageList(title string, names []string, style string) {
	if len(names) == 0 {
		return
	}
	p.Println(fmt.Sprintf("%s %s:", p.Style("Header", title), p.Style("Count", fmt.Sprint(len(names)))))
	styled := make([]string, len(names))
	for i, n := range names {
		styled[i] = p.Style(style, n)
	}
	p.Println(strings.Join(styled, " "))
}

// Lines prints one item per line, or a JSON array in JSON format.
func (p *Printer) Lines(items []string) error {
	if p.format == FormatJSON {
		return p.JSON(items)
	}
	for _, item := range items {
		p.Println(item)
	}
	return nil
}

// JSON writes v as indented JSON.
func (p *Printer) JSON(v interface{}) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode output")
	}
	return nil
}
