package model

import "fmt"

// HuggingFaceRequest is the body posted to a Hugging Face inference endpoint
type HuggingFaceRequest struct {
	Inputs HuggingFaceInputs `json:"inputs"`
}

// HuggingFaceInputs carries the subject image and the text prompts
type HuggingFaceInputs struct {
	// base64 JPEG, no data URL prefix
	Image          string `json:"image"`
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
}

// HuggingFaceErrorResponse is the JSON body returned with a non-200 status.
// A successful response is raw image bytes instead.
type HuggingFaceErrorResponse struct {
	Error string `json:"error"`
	// 503 while the model is still loading
	EstimatedTime float64  `json:"estimated_time,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

func (r *HuggingFaceErrorResponse) String() string {
	if r.EstimatedTime > 0 {
		return fmt.Sprintf("%s (estimated time %.0fs)", r.Error, r.EstimatedTime)
	}
	return r.Error
}

func (r *HuggingFaceErrorResponse) IsLoading() bool {
	return r.EstimatedTime > 0
}
