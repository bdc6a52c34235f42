package search

// Materialize resolves ids against snap in the given order and returns their
// bodies. It fails on the first id the snapshot does not hold: ids ranked
// against an earlier snapshot must be re-ranked after a reload, never silently
// dropped.
func Materialize(snap *Snapshot, ids []string) ([]Material, error) {
	out := make([]Material, 0, len(ids))
	for _, id := range ids {
		d, err := snap.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, Material{
			ID:   d.id,
			Kind: d.kind,
			Name: d.name,
			Body: d.body,
		})
	}
	return out, nil
}
