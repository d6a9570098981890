// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Backend: The remote document question-answering service. Two
//     implementations exist: the real HTTP client and a local simulator
//     used when no backend is configured.
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Inspector: Local PDF pre-flight (validation, page count). Without it,
//     files are uploaded unchecked and the backend does the rejecting.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
