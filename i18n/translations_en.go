package i18n

var englishTranslations = map[string]string{
	// Deck tools
	"tool.presentation_created": "Created new presentation: '%s'",
	"tool.presentation_exists":  "Presentation already exists. Continue adding slides.",
	"tool.slide_added":          "Added slide %d with background %s",
	"tool.current_slide_set":    "Current slide set to %d",
	"tool.slide_out_of_range":   "Error: slide_num %d out of range. Have %d slides.",
	"tool.no_slide":             "Error: No slide available. Call add_slide first (or set_current_slide).",
	"tool.title_added":          "Added title: '%s'",
	"tool.body_added":           "Added body text: '%s'",
	"tool.slide_number_added":   "Added slide number: %d",
	"tool.metric_card_added":    "Added metric card: %s = %s (%s)",
	"tool.subtitle_added":       "Added subtitle: '%s'",
	"tool.finalized":            "Presentation finalized: %d slides, %d bytes",
	"tool.empty_deck":           "Error: No slides added to presentation.",
	"tool.already_finalized":    "Error: Presentation already finalized. Call create_presentation to start a new one.",
	"tool.failed":               "Error: %s",

	// HTTP API
	"api.invalid_request":    "Invalid request format",
	"api.invalid_base64":     "Invalid base64 payload",
	"api.session_not_found":  "Session not found",
	"api.tool_not_found":     "Unknown tool: %s",
	"api.slide_out_of_range": "Slide %d out of range",
	"api.internal_error":     "Server internal error",
	"api.preview_too_large":  "Preview exceeds %d pixels",
}
