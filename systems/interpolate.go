package systems

// Interpolate moves every targeted particle a fixed fraction of the way to
// its target, then syncs the render buffer. Untargeted particles hold still.
func Interpolate(s *ParticleStore, lerp float32) {
	query := s.filter.Query()
	for query.Next() {
		pos, target, _ := query.Get()
		if !target.Set {
			continue
		}
		pos.X += (target.X - pos.X) * lerp
		pos.Y += (target.Y - pos.Y) * lerp
		pos.Z += (target.Z - pos.Z) * lerp
	}
	s.SyncBuffer()
}
