/*
Package photosphere is the input-ingestion layer of a stellar atmosphere
radiative-transfer code.

It turns a YAML configuration into the three objects the transfer engine
consumes: the validated Configuration, the prepared AtomData and a
normalized StellarModel.

# Pipeline

A run is a fixed sequence of stages. Each stage consumes the output of the
previous one and any failure aborts the run with a *StageError naming the
stage:

  - load_config: read and validate the YAML document, defaults applied.
  - merge_overrides: apply caller overrides and validate again.
  - load_atom_data: read the atom data file or document directory,
    through an optional cache.
  - read_model: dispatch on input_model.type to the MARCS or MESA reader.
    MESA profiles are truncated here.
  - normalize: convert the raw model to the canonical StellarModel.
  - microturbulence: zero the microturbulence profile when disabled.
  - prepare_atom_data: restrict the atom data to the elements the model
    carries, bounded by final_atomic_number.
  - rescale_nuclides: overwrite the nuclide mass fractions named in
    nuclide_rescaling_dict.

# Usage

	res, err := photosphere.Run(ctx, "config.yml", map[string]any{
		"input_model.truncate_to_shell": 10,
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Model.NoOfShells())

Use New with options to attach a logger, lifecycle hooks (see
pkg/observability) or an atom data cache.
*/
package photosphere
