package server

import "fmt"

// ID identifies one of the configured backend servers.
type ID string

const (
	Modern  ID = "MODERN"
	Classic ID = "CLASSIC"
)

type Server struct {
	ID           ID
	Label        string
	RconAddr     string
	RconPassword string
	StatusURL    string
}

// Registry holds the closed set of configured servers.
type Registry struct {
	byID  map[ID]Server
	order []ID
}

func NewRegistry(servers []Server) *Registry {
	r := &Registry{byID: make(map[ID]Server, len(servers))}
	for _, s := range servers {
		if _, ok := r.byID[s.ID]; !ok {
			r.order = append(r.order, s.ID)
		}
		r.byID[s.ID] = s
	}
	return r
}

func (r *Registry) Get(id ID) (Server, error) {
	s, ok := r.byID[id]
	if !ok {
		return Server{}, fmt.Errorf("unknown server id: %s", id)
	}
	return s, nil
}

// All returns the servers in configuration order.
func (r *Registry) All() []Server {
	out := make([]Server, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
