/*
Package ports defines the driven ports (interfaces) of the markov module.

  - ModelStore: persists trained models by name (file, memory or redis backed).

RunModelStoreContract is the shared test suite every ModelStore adapter runs.
*/
package ports
