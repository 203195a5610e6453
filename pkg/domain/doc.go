/*
Package domain contains the canonical stellar-model types shared by every
stage of the photosphere ingestion pipeline.

It is kept free of I/O: readers, atomic data stores and caches live in other
packages and produce or consume these types.

# Key Entities

  - ModelFormat: closed sum type of supported model formats (MARCS, MESA).
  - StellarModel: depth-resolved profiles plus a Composition, all sharing one shell count.
  - Composition: elemental and nuclide mass-fraction Tables (shells x species).
  - Nuclide: atomic number and mass number, parsed from identifiers like "Ni56".
  - LifecycleHooks: per-stage callbacks used for logging and metrics.
*/
package domain
