// Package domain defines the core business entities for bumpbook.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies beyond uuid and defines the fundamental types:
//
//   - KnowledgeDocument: The structured pregnancy knowledge tree
//   - Section: A retrievable natural-language slice of the document
//   - Retrieval: Ranked sections plus the outcome of the retrieval path
//   - ChatMessage: One turn of the assistant conversation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, github.com/google/uuid
//   - Cannot Import: Any internal/ package
package domain
