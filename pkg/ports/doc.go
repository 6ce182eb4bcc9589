/*
Package ports defines the driven ports (interfaces) for the Canvass engine.

These interfaces decouple the engine core from external collaborators,
allowing it to work with various definition transports, resume storages,
and submission backends.

# Key Interfaces

  - DefinitionSource: Fetches the raw survey definition (HTTP, file, memory).
  - ResumeStore: Persists the two resume slots (step index, response map).
  - Submitter: Receives the final submission payload.
  - IdentityProvider: Supplies optional identity claims for submissions.
*/
package ports
