package costmatrix

// Set resolves a vehicle's routing profile name to the Matrix it travels
// on, generalising the single-matrix oracle of §2 to the multi-profile
// fleets allowed by the input (§6.1: "matrices per profile").
type Set struct {
	byProfile map[string]Matrix
}

// NewSet builds a Set from a profile-name -> Matrix mapping. The caller
// retains ownership of the map; Set copies the entries.
func NewSet(matrices map[string]Matrix) *Set {
	s := &Set{byProfile: make(map[string]Matrix, len(matrices))}
	for k, v := range matrices {
		s.byProfile[k] = v
	}

	return s
}

// For returns the Matrix registered for profile, or ErrUnknownProfile.
func (s *Set) For(profile string) (Matrix, error) {
	m, ok := s.byProfile[profile]
	if !ok {
		return nil, ErrUnknownProfile
	}

	return m, nil
}

// Profiles returns the set of registered profile names.
func (s *Set) Profiles() []string {
	out := make([]string, 0, len(s.byProfile))
	for k := range s.byProfile {
		out = append(out, k)
	}

	return out
}
