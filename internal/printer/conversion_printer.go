package printer

import (
	"fmt"
	"io"

	"github.com/baseconv/baseconv/internal/cmd/output"
	"github.com/baseconv/baseconv/internal/domain"
)

var _ output.Printer[domain.Conversion] = (*ConversionPrinter)(nil)

// ConversionPrinter prints a conversion result, followed by its explanation when one is attached.
type ConversionPrinter struct {
	headerFunc output.WriteFunc[domain.Conversion]
	footerFunc output.WriteFunc[domain.Conversion]
}

func (p *ConversionPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *ConversionPrinter) SetHeader(fn output.WriteFunc[domain.Conversion]) {
	p.headerFunc = fn
}

// Item prints e.g. "(1010)₂ = (10)₁₀  binary → decimal".
func (p *ConversionPrinter) Item(w io.Writer, conv domain.Conversion) error {
	s := newStyles(w)

	_, _ = fmt.Fprintf(
		w,
		"(%s)%s = %s  %s\n",
		conv.Input,
		conv.From.Subscript(),
		s.result.Render(fmt.Sprintf("(%s)%s", conv.Result, conv.To.Subscript())),
		s.muted.Render(fmt.Sprintf("%s → %s", conv.From, conv.To)),
	)

	for _, step := range conv.Steps {
		_, _ = fmt.Fprintf(w, "\n%s\n", s.title.Render(step.Title))
		_, _ = fmt.Fprintf(w, "  %s\n", step.Summary)
		for _, line := range step.Lines {
			_, _ = fmt.Fprintf(w, "    %s\n", line)
		}
	}

	return nil
}

func (p *ConversionPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *ConversionPrinter) SetFooter(fn output.WriteFunc[domain.Conversion]) {
	p.footerFunc = fn
}
