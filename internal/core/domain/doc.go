// Package domain defines the core business entities for paperchat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A PDF known to the client and its upload lifecycle
//   - Message: An entry in the UI-facing chat transcript
//   - Turn: A role-tagged entry of the conversational context sent upstream
//   - ProcessingMethod: The backend extraction strategy for a PDF
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
