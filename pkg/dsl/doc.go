/*
Package dsl builds photosphere configurations in Go.

It produces the same document a YAML file would hold, validated against
config.Schema, so programs and tests can describe a run without writing a
file first.

Example usage:

	cfg, err := dsl.New("atoms.yaml").
		MARCS("sun.mod.gz").
		Gzipped().
		FinalAtomicNumber(26).
		Composition(0.28, 0.02).
		End().
		DisableMicroturbulence().
		Build()
	if err != nil {
		return err
	}
	res, err := photosphere.New().RunConfiguration(ctx, cfg, nil)
*/
package dsl
