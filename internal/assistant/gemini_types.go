package assistant

type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

// schema is the OpenAPI subset accepted by responseSchema.
type schema struct {
	Type       string             `json:"type"`
	Enum       []string           `json:"enum,omitempty"`
	Items      *schema            `json:"items,omitempty"`
	Properties map[string]*schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

var recommendationsSchema = &schema{
	Type: "ARRAY",
	Items: &schema{
		Type: "OBJECT",
		Properties: map[string]*schema{
			"title":       {Type: "STRING"},
			"description": {Type: "STRING"},
			"type":        {Type: "STRING", Enum: []string{"LOAN", "SCHEME", "LAW"}},
			"link":        {Type: "STRING"},
		},
		Required: []string{"title", "description", "type", "link"},
	},
}

var commandSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"action":   {Type: "STRING"},
		"feedback": {Type: "STRING"},
	},
	Required: []string{"action", "feedback"},
}
