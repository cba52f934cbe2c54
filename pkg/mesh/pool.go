package mesh

// Pool creates geometries and tracks the ones that have not been released.
// A Pool is owned by a single character and is not safe for concurrent use.
type Pool struct {
	next     uint64
	live     map[uint64]*Geometry
	created  int
	released int
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{live: make(map[uint64]*Geometry)}
}

// Build validates spec and creates a new live geometry.
func (p *Pool) Build(spec Spec) (*Geometry, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	g := build(spec)
	p.next++
	g.id = p.next
	g.pool = p
	p.live[g.id] = g
	p.created++
	return g, nil
}

// MustBuild is like Build but panics on an invalid spec. It is meant for the
// fixed part tables whose specs are compile-time constants.
func (p *Pool) MustBuild(spec Spec) *Geometry {
	g, err := p.Build(spec)
	if err != nil {
		panic(err)
	}
	return g
}

// Live returns the number of geometries that have not been released.
func (p *Pool) Live() int { return len(p.live) }

// Stats returns the total number of geometries created and released.
func (p *Pool) Stats() (created, released int) { return p.created, p.released }

// ReleaseAll releases every live geometry.
func (p *Pool) ReleaseAll() {
	for _, g := range p.live {
		g.Release()
	}
}

func (p *Pool) forget(g *Geometry) {
	if _, ok := p.live[g.id]; ok {
		delete(p.live, g.id)
		p.released++
	}
}
