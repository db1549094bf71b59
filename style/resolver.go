package style

import "time"

// Context describes one cell to the resolution policy. SheetRow is the
// 1-based sheet row including the header offset — this is what the
// alternating-fill stripe keys on, so the first data row of a headed sheet
// is row 2.
type Context struct {
	SheetRow int
	Column   int
	Field    string
	Value    any
	IsHeader bool
}

// Selector is the custom style callback. When configured it takes
// precedence over every built-in rule; returning nil means "this cell gets
// no style" regardless of header or stripe options.
type Selector func(Context) *CellStyle

// Options configures the built-in resolution rules.
type Options struct {
	// Header styling (applies when Context.IsHeader).
	HeaderBold        bool
	HeaderFontName    string
	HeaderFontColor   string
	HeaderFontSize    float64
	HeaderFillColor   string
	HeaderBorderColor string

	// AlternateFillColors zebra-stripes data rows:
	// colors[SheetRow mod len(colors)].
	AlternateFillColors []string

	// Per-type number format defaults, each with a hardcoded fallback.
	DateFormat    string
	DecimalFormat string
	IntegerFormat string

	// Selector, when set, overrides all of the above.
	Selector Selector
}

// Resolver applies the style policy and feeds resulting definitions to a
// Builder.
type Resolver struct {
	opts    Options
	builder *Builder
}

// NewResolver returns a resolver feeding b.
func NewResolver(opts Options, b *Builder) *Resolver {
	return &Resolver{opts: opts, builder: b}
}

// Builder exposes the underlying builder for emission.
func (r *Resolver) Builder() *Builder {
	return r.builder
}

// Resolve runs the precedence chain: selector, header style, zebra stripe.
// A nil result means the cell carries no style request.
func (r *Resolver) Resolve(ctx Context) *CellStyle {
	if r.opts.Selector != nil {
		return r.opts.Selector(ctx)
	}

	if ctx.IsHeader {
		if !r.opts.HeaderBold && r.opts.HeaderFontName == "" && r.opts.HeaderFontColor == "" &&
			r.opts.HeaderFontSize == 0 && r.opts.HeaderFillColor == "" && r.opts.HeaderBorderColor == "" {
			return nil
		}
		return &CellStyle{
			FontName:    r.opts.HeaderFontName,
			FontColor:   r.opts.HeaderFontColor,
			FontSize:    r.opts.HeaderFontSize,
			Bold:        r.opts.HeaderBold,
			FillColor:   r.opts.HeaderFillColor,
			BorderColor: r.opts.HeaderBorderColor,
		}
	}

	if len(r.opts.AlternateFillColors) > 0 {
		color := r.opts.AlternateFillColors[ctx.SheetRow%len(r.opts.AlternateFillColors)]
		if color != "" {
			return &CellStyle{FillColor: color}
		}
	}

	return nil
}

// CellIndex resolves the style for ctx, applies the per-type number format,
// registers the definition, and returns the value to write in the cell's s
// attribute: builder index + 1. ok is false when the cell gets no style.
func (r *Resolver) CellIndex(ctx Context) (index int, ok bool) {
	cs := r.Resolve(ctx)
	numFmt := r.numberFormat(cs, ctx.Value)

	if cs == nil {
		if numFmt == "" {
			return 0, false
		}
		// A date with no visual styling still needs a format so third
		// party readers display it as a date rather than a serial.
		cs = &CellStyle{}
	}

	def := cs.Definition(numFmt)
	if def == (Definition{}) {
		return 0, false
	}
	return r.builder.GetOrAdd(def) + 1, true
}

// numberFormat picks the format code for the value's type, walking the
// fallback chain: cell style, options, hardcoded default. Only date values
// force a format in the absence of a style request.
func (r *Resolver) numberFormat(cs *CellStyle, value any) string {
	switch value.(type) {
	case time.Time, *time.Time:
		return firstOf(styleField(cs, func(s *CellStyle) string { return s.DateFormat }), r.opts.DateFormat, DefaultDateFormat)
	case float32, float64:
		if cs == nil && r.opts.DecimalFormat == "" {
			return ""
		}
		return firstOf(styleField(cs, func(s *CellStyle) string { return s.DecimalFormat }), r.opts.DecimalFormat,
			styleField(cs, func(s *CellStyle) string { return s.IntegerFormat }), r.opts.IntegerFormat, DefaultDecimalFormat)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		if cs == nil && r.opts.IntegerFormat == "" {
			return ""
		}
		return firstOf(styleField(cs, func(s *CellStyle) string { return s.IntegerFormat }), r.opts.IntegerFormat, DefaultIntegerFormat)
	default:
		return ""
	}
}

func styleField(cs *CellStyle, get func(*CellStyle) string) string {
	if cs == nil {
		return ""
	}
	return get(cs)
}

func firstOf(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
