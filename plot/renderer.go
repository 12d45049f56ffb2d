package plot

import (
	"errors"
	"fmt"
	"io"

	"github.com/pivolan/churn_chart/domain/models"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Renderer hands a chart config to an external charting library and writes the result.
// Nothing is written to w when rendering fails.
type Renderer interface {
	Render(w io.Writer, cfg models.ChartConfig) error
}

type Options struct {
	ElementID  string
	PageTitle  string
	Page       *HostPage // chartjs only, nil means the embedded page
	ScriptSrc  string    // chartjs library URL
	AssetsHost string    // echarts assets
	Width      int
	Height     int
}

func NewRenderer(format string, o Options) (Renderer, error) {
	switch format {
	case "chartjs":
		return &ChartJSRenderer{Page: o.Page, ElementID: o.ElementID, ScriptSrc: o.ScriptSrc}, nil
	case "echarts":
		return &EChartsRenderer{
			ElementID:  o.ElementID,
			PageTitle:  o.PageTitle,
			AssetsHost: o.AssetsHost,
			Width:      o.Width,
			Height:     o.Height,
		}, nil
	case "png", "svg":
		return &ImageRenderer{Format: format, Width: o.Width, Height: o.Height}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Extension returns the file extension for a format's output.
func Extension(format string) string {
	switch format {
	case "png":
		return ".png"
	case "svg":
		return ".svg"
	default:
		return ".html"
	}
}
