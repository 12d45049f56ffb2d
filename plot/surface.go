package plot

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pivolan/churn_chart/domain/models"
)

var (
	ErrElementNotFound  = errors.New("page element not found")
	ErrNoDrawingContext = errors.New("page element does not provide a 2d drawing context")
	ErrSurfaceInUse     = errors.New("surface is already owned by a chart")
)

//go:embed templates/host.html
var defaultHostPage []byte

// HostPage is a parsed HTML document charts are drawn into.
type HostPage struct {
	doc     *html.Node
	scripts map[string]bool
	owned   map[string]bool
}

// Surface is a 2D drawing context bound to a canvas element of a HostPage.
type Surface struct {
	page *HostPage
	node *html.Node
	id   string
}

func LoadHostPage(r io.Reader) (*HostPage, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse host page: %w", err)
	}
	p := &HostPage{doc: doc, scripts: map[string]bool{}, owned: map[string]bool{}}
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script {
			if src := attr(n, "src"); src != "" {
				p.scripts[src] = true
			}
		}
		return false
	})
	return p, nil
}

// DefaultHostPage returns the embedded dashboard page with a churnChart canvas.
func DefaultHostPage() (*HostPage, error) {
	return LoadHostPage(bytes.NewReader(defaultHostPage))
}

// Surface looks the element up by id and returns its 2D drawing surface.
func (p *HostPage) Surface(id string) (*Surface, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrElementNotFound)
	}
	var found *html.Node
	walk(p.doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return true
		}
		return false
	})
	if found == nil {
		return nil, fmt.Errorf("%w: #%s", ErrElementNotFound, id)
	}
	if found.DataAtom != atom.Canvas {
		return nil, fmt.Errorf("%w: #%s is <%s>", ErrNoDrawingContext, id, found.Data)
	}
	return &Surface{page: p, node: found, id: id}, nil
}

func (s *Surface) ID() string {
	return s.id
}

// Draw hands the config to Chart.js for this surface. The library script is
// added once per page; after a successful call the surface belongs to the chart.
func (s *Surface) Draw(cfg models.ChartConfig, scriptSrc string) error {
	if s.page.owned[s.id] {
		return fmt.Errorf("%w: #%s", ErrSurfaceInUse, s.id)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("chart config: %w", err)
	}
	initScript, err := chartJSInitScript(s.id, cfg)
	if err != nil {
		return err
	}

	body := s.page.body()
	if scriptSrc != "" && !s.page.scripts[scriptSrc] {
		body.AppendChild(scriptNode(scriptSrc, ""))
		s.page.scripts[scriptSrc] = true
	}
	body.AppendChild(scriptNode("", initScript))
	s.page.owned[s.id] = true
	return nil
}

func (p *HostPage) Render(w io.Writer) error {
	return html.Render(w, p.doc)
}

// body returns the <body> element; html.Parse always synthesizes one.
func (p *HostPage) body() *html.Node {
	var body *html.Node
	walk(p.doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
			return true
		}
		return false
	})
	if body == nil {
		body = p.doc
	}
	return body
}

func scriptNode(src, code string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: "script", DataAtom: atom.Script}
	if src != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "src", Val: src})
	}
	if code != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: code})
	}
	return n
}

// walk visits nodes depth-first until visit returns true.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if visit(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walk(c, visit) {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
