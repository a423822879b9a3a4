package config

// DefaultManifestName is the manifest looked up when none is given.
const DefaultManifestName = "builder.json"

// defaultManifest returns an empty manifest rooted at its own directory.
func defaultManifest() *Manifest {
	return &Manifest{
		Root:    ".",
		Defines: map[string]interface{}{},
	}
}

// mergeDefaults fills fields a manifest file left unset.
func mergeDefaults(m *Manifest) {
	def := defaultManifest()
	if m.Root == "" {
		m.Root = def.Root
	}
	if m.Defines == nil {
		m.Defines = def.Defines
	}
}
