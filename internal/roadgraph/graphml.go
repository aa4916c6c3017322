package roadgraph

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/routeviz/routeviz/internal/geo"
)

type gmlKey struct {
	ID   string `xml:"id,attr"`
	For  string `xml:"for,attr"`
	Name string `xml:"attr.name,attr"`
}

type gmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

type gmlNode struct {
	ID   string    `xml:"id,attr"`
	Data []gmlData `xml:"data"`
}

type gmlEdge struct {
	Source string    `xml:"source,attr"`
	Target string    `xml:"target,attr"`
	Data   []gmlData `xml:"data"`
}

// graphMLReader maps GraphML key ids to attribute names while streaming.
type graphMLReader struct {
	nodeKeys map[string]string
	edgeKeys map[string]string
	b        *Builder
	opts     []Option
}

// LoadGraphML reads a road graph in the GraphML layout written by OSMnx:
// nodes carry "x" (lon) and "y" (lat), edges carry "length" in meters.
func LoadGraphML(r io.Reader, opts ...Option) (*Graph, error) {
	gr := &graphMLReader{
		nodeKeys: make(map[string]string),
		edgeKeys: make(map[string]string),
		opts:     opts,
	}

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading graphml: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if err := gr.element(dec, start); err != nil {
			return nil, err
		}
	}

	if gr.b == nil {
		return nil, errors.New("graphml: no <graph> element")
	}

	return gr.b.Build()
}

func (gr *graphMLReader) element(dec *xml.Decoder, start xml.StartElement) error {
	switch start.Name.Local {
	case "key":
		var k gmlKey
		if err := dec.DecodeElement(&k, &start); err != nil {
			return fmt.Errorf("decoding graphml key: %w", err)
		}

		switch k.For {
		case "node":
			gr.nodeKeys[k.ID] = k.Name
		case "edge":
			gr.edgeKeys[k.ID] = k.Name
		}
	case "graph":
		if gr.b != nil {
			return errors.New("graphml: multiple <graph> elements")
		}

		opts := gr.opts
		for _, a := range start.Attr {
			if a.Name.Local == "edgedefault" && a.Value == "undirected" {
				opts = append(append([]Option{}, opts...), WithUndirected())
			}
		}

		gr.b = NewBuilder(opts...)
	case "node":
		var n gmlNode
		if err := dec.DecodeElement(&n, &start); err != nil {
			return fmt.Errorf("decoding graphml node: %w", err)
		}

		return gr.node(n)
	case "edge":
		var e gmlEdge
		if err := dec.DecodeElement(&e, &start); err != nil {
			return fmt.Errorf("decoding graphml edge: %w", err)
		}

		return gr.edge(e)
	}

	return nil
}

func (gr *graphMLReader) node(n gmlNode) error {
	if gr.b == nil {
		return errors.New("graphml: node outside <graph>")
	}

	id, err := strconv.ParseInt(n.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("graphml node id %q: %w", n.ID, err)
	}

	var (
		p            geo.Point
		haveX, haveY bool
	)

	for _, d := range n.Data {
		switch gr.nodeKeys[d.Key] {
		case "x":
			if p.Lon, err = strconv.ParseFloat(strings.TrimSpace(d.Value), 64); err != nil {
				return fmt.Errorf("graphml node %d x: %w", id, err)
			}

			haveX = true
		case "y":
			if p.Lat, err = strconv.ParseFloat(strings.TrimSpace(d.Value), 64); err != nil {
				return fmt.Errorf("graphml node %d y: %w", id, err)
			}

			haveY = true
		}
	}

	if !haveX || !haveY {
		return fmt.Errorf("graphml node %d: missing x or y", id)
	}

	gr.b.AddNode(id, p)

	return nil
}

func (gr *graphMLReader) edge(ge gmlEdge) error {
	if gr.b == nil {
		return errors.New("graphml: edge outside <graph>")
	}

	from, err := strconv.ParseInt(ge.Source, 10, 64)
	if err != nil {
		return fmt.Errorf("graphml edge source %q: %w", ge.Source, err)
	}

	to, err := strconv.ParseInt(ge.Target, 10, 64)
	if err != nil {
		return fmt.Errorf("graphml edge target %q: %w", ge.Target, err)
	}

	e := Edge{From: from, To: to, Missing: true}

	for _, d := range ge.Data {
		v := strings.TrimSpace(d.Value)

		switch gr.edgeKeys[d.Key] {
		case "length":
			e.Missing = false

			l, perr := strconv.ParseFloat(v, 64)
			if perr != nil {
				e.Blocked = true
				continue
			}

			e.Length = l
		case "name":
			e.Name = v
		case "highway":
			e.Highway = v
		}
	}

	return gr.b.AddEdge(e)
}
