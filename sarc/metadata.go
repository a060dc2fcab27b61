package sarc

// Listing returns every member name in an Archive in the order its SFAT
// nodes were stored (ascending hash order for any archive this package
// wrote, and whatever order the source container used otherwise).
func (a *Archive) Listing() []string {
	names := make([]string, len(a.Files))
	for i, f := range a.Files {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the member named name, if present.
func (a *Archive) Lookup(name string) (File, bool) {
	for _, f := range a.Files {
		if f.Name == name {
			return f, true
		}
	}
	return File{}, false
}
