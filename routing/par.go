package routing

// reevaluate revises the path of a packet that left its source router on a
// minimal path and is still in the source group. The UGAL choice is made
// again from router cur with an exact minimal candidate, and the new path
// replaces the old one after the source router. The packet is recorded in
// the statistics with its revised path. It returns true if the minimal path
// was kept.
func (r *Router) reevaluate(cur int, dst int, st *State) (bool, error) {
	st.Reevaluate = false

	c, err := r.ugal(cur, dst, true)
	if err != nil {
		return false, err
	}

	src := st.Path[0]
	p := make([]int, 0, len(c.path)+1)
	p = append(p, src)
	st.Path = append(p, c.path...)

	r.stats.addPath(r.name, st.Path.Hops(), c.minimal, r.net.SameGroup(src, dst))
	return c.minimal, nil
}
