/*
Package ports defines the driven ports (interfaces) for the matching engine.

These interfaces decouple the core packages from external implementations,
allowing built automatons to be persisted to and restored from various
storage backends.

# Key Interfaces

  - RecordStore: Responsible for persisting and loading automaton records
    (e.g., to the filesystem or Redis).
*/
package ports
