package valueobjects

// Method records which path produced a try-on image.
type Method string

const (
	MethodHuggingFace     Method = "huggingface_api"
	MethodGemini          Method = "gemini_api"
	MethodFallbackOverlay Method = "fallback_overlay"
)
