package catalog

// FallbackDocument is the minimal built-in catalog used in degraded mode.
// It is only ever used when explicitly enabled in the configuration.
func FallbackDocument() *Document {
	targets := DefaultTargets
	return &Document{
		Version:     "1.0.0",
		LastUpdated: "2024-01-01",
		Exercises: []Exercise{
			{
				ID:          "bench_press",
				Name:        "bench press",
				DisplayName: "Bench Press",
				Aliases:     []string{"bench", "flat bench", "bb bench"},
				MuscleGroups: map[string]float64{
					MuscleChest:      1.0,
					MuscleTriceps:    0.5,
					MuscleFrontDelts: 0.5,
				},
				Category:    CategoryPush,
				Description: "Barbell press lying on a flat bench",
				DefaultSets: 3,
				DefaultReps: 8,
			},
		},
		Categories:     DefaultCategoryDescriptions,
		MuscleGroups:   MuscleGroups,
		DefaultTargets: &targets,
		WindowOptions:  DefaultWindowOptions,
	}
}

// Fallback builds the degraded-mode catalog.
func Fallback(opts ...Option) *Catalog {
	c, err := New(FallbackDocument(), opts...)
	if err != nil {
		// the built-in document is static, failing here is a programming error
		panic(err)
	}
	return c
}
