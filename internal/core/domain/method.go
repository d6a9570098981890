package domain

// ProcessingMethod is the backend strategy for extracting and chunking a
// PDF's text. It affects downstream answer quality, not the client contract.
type ProcessingMethod string

// Available processing methods.
const (
	// MethodStandard is basic text extraction with character-based chunking.
	MethodStandard ProcessingMethod = "standard"

	// MethodSemantic is structure-aware extraction with semantic chunking.
	MethodSemantic ProcessingMethod = "semantic"

	// MethodLayout is layout detection with OCR and visual analysis.
	MethodLayout ProcessingMethod = "layout"
)

// DefaultMethod is used when no method has been configured.
const DefaultMethod = MethodStandard

// IsValid returns true if the method is recognised.
func (m ProcessingMethod) IsValid() bool {
	switch m {
	case MethodStandard, MethodSemantic, MethodLayout:
		return true
	default:
		return false
	}
}

// Available returns true if the method can currently be selected.
// Semantic processing is gated on backend support and stays disabled
// in the selector until that lands.
func (m ProcessingMethod) Available() bool {
	return m == MethodStandard || m == MethodLayout
}

// String returns the string representation.
func (m ProcessingMethod) String() string {
	return string(m)
}

// Description returns a human-readable description of the method.
func (m ProcessingMethod) Description() string {
	switch m {
	case MethodStandard:
		return "Basic text extraction and character-based chunking"
	case MethodSemantic:
		return "Structure-aware extraction with semantic chunking"
	case MethodLayout:
		return "Advanced layout detection with OCR and visual analysis"
	default:
		return "Unknown"
	}
}

// Methods returns all processing methods in selector order.
func Methods() []ProcessingMethod {
	return []ProcessingMethod{MethodStandard, MethodSemantic, MethodLayout}
}
