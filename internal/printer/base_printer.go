package printer

import (
	"fmt"
	"io"

	"github.com/baseconv/baseconv/internal/cmd/output"
	"github.com/baseconv/baseconv/internal/domain"
)

var _ output.Printer[BaseInfo] = (*BaseListPrinter)(nil)

// BaseInfo describes a supported base for the 'bases' command.
type BaseInfo struct {
	Name     string `json:"name"     yaml:"name"`
	Radix    int    `json:"radix"    yaml:"radix"`
	Alphabet string `json:"alphabet" yaml:"alphabet"`
	Example  string `json:"example"  yaml:"example"`
}

// NewBaseInfo describes b.
func NewBaseInfo(b domain.Base) BaseInfo {
	return BaseInfo{
		Name:     b.String(),
		Radix:    b.Radix(),
		Alphabet: b.Alphabet(),
		Example:  b.Example(),
	}
}

const (
	nameColumnWidth  = 13
	radixColumnWidth = 7
)

// BaseListPrinter prints supported bases as an aligned table.
type BaseListPrinter struct {
	headerFunc output.WriteFunc[BaseInfo]
	footerFunc output.WriteFunc[BaseInfo]
}

// Header prints the column headings unless a custom header has been set.
func (p *BaseListPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
		return
	}

	s := newStyles(w)
	_, _ = fmt.Fprintf(
		w,
		"%s%s%s\n",
		s.heading.Width(nameColumnWidth).Render("NAME"),
		s.heading.Width(radixColumnWidth).Render("RADIX"),
		s.heading.Render("EXAMPLE"),
	)
}

func (p *BaseListPrinter) SetHeader(fn output.WriteFunc[BaseInfo]) {
	p.headerFunc = fn
}

func (p *BaseListPrinter) Item(w io.Writer, b BaseInfo) error {
	s := newStyles(w)

	_, _ = fmt.Fprintf(
		w,
		"%s%s%s  %s\n",
		s.title.Width(nameColumnWidth).Render(b.Name),
		s.muted.Width(radixColumnWidth).Render(fmt.Sprintf("%d", b.Radix)),
		b.Example,
		s.muted.Render(fmt.Sprintf("[%s]", b.Alphabet)),
	)

	return nil
}

// Footer prints the number of bases unless a custom footer has been set.
func (p *BaseListPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
		return
	}

	_, _ = fmt.Fprintf(w, "\n%d bases supported\n", count)
}

func (p *BaseListPrinter) SetFooter(fn output.WriteFunc[BaseInfo]) {
	p.footerFunc = fn
}
