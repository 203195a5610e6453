/*
Package ports defines the driven ports (interfaces) of the photosphere pipeline.

These interfaces decouple atom data loading from its storage backends, so the
pipeline works with a plain file, a Loam document directory, and optional
in-memory or Redis caches.

# Key Interfaces

  - AtomDataSource: yields element records from a backing store (e.g., Loam).
  - AtomDataCache: stores decoded element records keyed by source identity.
*/
package ports
