package pagesnap

import "github.com/chromedp/cdproto/page"

// PageSize is a paper size in centimeters.
type PageSize struct {
	Width  float64
	Height float64
}

// Paper sizes accepted by the snapshot requester.
var (
	A4     = PageSize{Width: 21.0, Height: 29.7}
	A5     = PageSize{Width: 14.8, Height: 21.0}
	Letter = PageSize{Width: 21.59, Height: 27.94}
	Legal  = PageSize{Width: 21.59, Height: 35.56}
)

// PageSizeByName maps lower-case names used in configuration to sizes.
var PageSizeByName = map[string]PageSize{
	"a4":     A4,
	"a5":     A5,
	"letter": Letter,
	"legal":  Legal,
}

// Orientation of the printed page.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

// Margin holds page margins in centimeters.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargin returns a Margin with the same value on all sides.
func UniformMargin(cm float64) Margin {
	return Margin{Top: cm, Right: cm, Bottom: cm, Left: cm}
}

// PageConfig describes how the rendered page is laid out in the snapshot.
// Zero fields fall back to [DefaultPageConfig].
type PageConfig struct {
	Size        PageSize
	Orientation Orientation
	Margin      Margin

	// Scale is the rendering scale, between 0.1 and 2.0.
	Scale float64

	// PrintBackground includes background colors and images.
	PrintBackground bool

	// PreferCSSPageSize lets an @page rule in the document win over Size.
	PreferCSSPageSize bool
}

// DefaultPageConfig is A4 portrait, 1 cm margins, scale 1, backgrounds on.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Size:            A4,
		Orientation:     Portrait,
		Margin:          UniformMargin(1.0),
		Scale:           1.0,
		PrintBackground: true,
	}
}

// withDefaults fills zero fields. A nil receiver yields the defaults.
func (p *PageConfig) withDefaults() PageConfig {
	d := DefaultPageConfig()
	if p == nil {
		return d
	}
	r := *p
	if r.Size == (PageSize{}) {
		r.Size = d.Size
	}
	if r.Margin == (Margin{}) {
		r.Margin = d.Margin
	}
	switch {
	case r.Scale <= 0:
		r.Scale = d.Scale
	case r.Scale < 0.1:
		r.Scale = 0.1
	case r.Scale > 2:
		r.Scale = 2
	}
	return r
}

func cmToInches(cm float64) float64 {
	return cm / 2.54
}

// paperInches returns the printed width and height in inches after orientation.
func (p PageConfig) paperInches() (width, height float64) {
	w, h := cmToInches(p.Size.Width), cmToInches(p.Size.Height)
	if p.Orientation == Landscape {
		return h, w
	}
	return w, h
}

// printParams builds the Page.printToPDF call for this layout.
func (p *PageConfig) printParams() *page.PrintToPDFParams {
	r := p.withDefaults()
	// Chrome swaps the paper axes itself when landscape is set.
	return page.PrintToPDF().
		WithPaperWidth(cmToInches(r.Size.Width)).
		WithPaperHeight(cmToInches(r.Size.Height)).
		WithMarginTop(cmToInches(r.Margin.Top)).
		WithMarginRight(cmToInches(r.Margin.Right)).
		WithMarginBottom(cmToInches(r.Margin.Bottom)).
		WithMarginLeft(cmToInches(r.Margin.Left)).
		WithScale(r.Scale).
		WithPrintBackground(r.PrintBackground).
		WithLandscape(r.Orientation == Landscape).
		WithPreferCSSPageSize(r.PreferCSSPageSize)
}
