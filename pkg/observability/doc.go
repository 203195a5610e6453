/*
Package observability exports pipeline lifecycle events as Prometheus metrics.

Metrics.Hooks returns domain.LifecycleHooks that can be passed to
photosphere.WithLifecycleHooks; WriteText dumps the registry in the text
exposition format for one-shot CLI runs where nothing scrapes an endpoint.
*/
package observability
