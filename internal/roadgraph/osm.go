package roadgraph

import (
	"context"
	"fmt"
	"io"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"

	"github.com/routeviz/routeviz/internal/geo"
)

// drivable lists the highway values kept by LoadOSM.
var drivable = map[string]bool{
	"motorway": true, "motorway_link": true,
	"trunk": true, "trunk_link": true,
	"primary": true, "primary_link": true,
	"secondary": true, "secondary_link": true,
	"tertiary": true, "tertiary_link": true,
	"unclassified": true, "residential": true,
	"living_street": true, "service": true, "road": true,
}

// LoadOSM reads an OSM XML extract and builds a drivable road graph.
// Each consecutive pair of way nodes becomes an edge whose length is the
// haversine distance between them. Oneway tags are honored.
func LoadOSM(ctx context.Context, r io.Reader, opts ...Option) (*Graph, error) {
	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	coords := make(map[osm.NodeID]geo.Point)

	var ways []*osm.Way

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			coords[o.ID] = geo.Point{Lat: o.Lat, Lon: o.Lon}
		case *osm.Way:
			if drivable[o.Tags.Find("highway")] && len(o.Nodes) > 1 {
				ways = append(ways, o)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning osm: %w", err)
	}

	b := NewBuilder(opts...)

	for _, w := range ways {
		if err := addWay(b, w, coords); err != nil {
			return nil, err
		}
	}

	return b.Build()
}

func addWay(b *Builder, w *osm.Way, coords map[osm.NodeID]geo.Point) error {
	forward, backward := wayDirections(w.Tags)
	name := w.Tags.Find("name")
	highway := w.Tags.Find("highway")

	for i := 1; i < len(w.Nodes); i++ {
		a, z := w.Nodes[i-1].ID, w.Nodes[i].ID

		pa, okA := coords[a]
		pz, okZ := coords[z]

		if !okA || !okZ {
			// Extracts clipped at a bounding box reference nodes they do not contain.
			continue
		}

		b.AddNode(int64(a), pa)
		b.AddNode(int64(z), pz)

		e := Edge{From: int64(a), To: int64(z), Length: pa.DistanceTo(pz), Name: name, Highway: highway}

		if forward {
			if err := b.AddEdge(e); err != nil {
				return fmt.Errorf("way %d: %w", w.ID, err)
			}
		}

		if backward {
			e.From, e.To = e.To, e.From
			if err := b.AddEdge(e); err != nil {
				return fmt.Errorf("way %d: %w", w.ID, err)
			}
		}
	}

	return nil
}

func wayDirections(tags osm.Tags) (forward, backward bool) {
	switch tags.Find("oneway") {
	case "yes", "true", "1":
		return true, false
	case "-1", "reverse":
		return false, true
	}

	if tags.Find("junction") == "roundabout" || tags.Find("highway") == "motorway" {
		return true, false
	}

	return true, true
}
