package analysis

import "github.com/google/generative-ai-go/genai"

// analysisResponseSchema constrains the Gemini response for a single audit.
func analysisResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"seniority":  {Type: genai.TypeString, Description: "Junior, Mid, Senior, Lead, or Architect"},
			"summary":    {Type: genai.TypeString, Description: "A high-level technical summary of the candidate"},
			"strengths":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"weaknesses": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"techStack":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"skillMatrix": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"skill": {Type: genai.TypeString},
						"score": {Type: genai.TypeNumber},
					},
					Required: []string{"skill", "score"},
				},
			},
			"personalityTraits": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"recommendation":    {Type: genai.TypeString, Description: "Hiring recommendation"},
		},
		Required: []string{
			"seniority", "summary", "strengths", "weaknesses",
			"techStack", "skillMatrix", "personalityTraits", "recommendation",
		},
	}
}

// comparisonResponseSchema constrains the Gemini response for a head-to-head comparison.
func comparisonResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"winner":            {Type: genai.TypeString, Description: "Username of the person who is a better fit"},
			"rationale":         {Type: genai.TypeString, Description: "Detailed reasoning for the choice"},
			"suitabilityScore1": {Type: genai.TypeNumber, Description: "0-100 score for user 1"},
			"suitabilityScore2": {Type: genai.TypeNumber, Description: "0-100 score for user 2"},
			"comparisonPoints": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"category":    {Type: genai.TypeString},
						"user1Status": {Type: genai.TypeString},
						"user2Status": {Type: genai.TypeString},
					},
					Required: []string{"category", "user1Status", "user2Status"},
				},
			},
		},
		Required: []string{"winner", "rationale", "suitabilityScore1", "suitabilityScore2", "comparisonPoints"},
	}
}

// interviewQuestionsResponseSchema constrains the Gemini response for generated
// interview questions.
func interviewQuestionsResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"questions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"question":   {Type: genai.TypeString},
						"topic":      {Type: genai.TypeString},
						"difficulty": {Type: genai.TypeString, Description: "Easy, Medium, or Hard"},
					},
					Required: []string{"question", "topic", "difficulty"},
				},
			},
		},
		Required: []string{"questions"},
	}
}

// resumeScoreResponseSchema constrains the Gemini response for a resume score.
func resumeScoreResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score":   {Type: genai.TypeNumber, Description: "0-100 fit score"},
			"summary": {Type: genai.TypeString, Description: "One-paragraph assessment of the fit"},
			"pros":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"cons":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"score", "summary", "pros", "cons"},
	}
}

// analysisJSONSchema validates the decoded audit payload at the trust boundary.
const analysisJSONSchema = `{
	"type": "object",
	"properties": {
		"seniority": {"type": "string", "minLength": 1},
		"summary": {"type": "string"},
		"strengths": {"type": "array", "items": {"type": "string"}},
		"weaknesses": {"type": "array", "items": {"type": "string"}},
		"techStack": {"type": "array", "items": {"type": "string"}},
		"skillMatrix": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"skill": {"type": "string"},
					"score": {"type": "number", "minimum": 0, "maximum": 100}
				},
				"required": ["skill", "score"]
			}
		},
		"personalityTraits": {"type": "array", "items": {"type": "string"}},
		"recommendation": {"type": "string"}
	},
	"required": ["seniority", "summary", "strengths", "weaknesses", "techStack", "skillMatrix", "personalityTraits", "recommendation"]
}`

// comparisonJSONSchema validates the decoded comparison payload.
const comparisonJSONSchema = `{
	"type": "object",
	"properties": {
		"winner": {"type": "string", "minLength": 1},
		"rationale": {"type": "string"},
		"suitabilityScore1": {"type": "number", "minimum": 0, "maximum": 100},
		"suitabilityScore2": {"type": "number", "minimum": 0, "maximum": 100},
		"comparisonPoints": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"category": {"type": "string"},
					"user1Status": {"type": "string"},
					"user2Status": {"type": "string"}
				},
				"required": ["category", "user1Status", "user2Status"]
			}
		}
	},
	"required": ["winner", "rationale", "suitabilityScore1", "suitabilityScore2", "comparisonPoints"]
}`

// interviewQuestionsJSONSchema validates the decoded question list.
const interviewQuestionsJSONSchema = `{
	"type": "object",
	"properties": {
		"questions": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"question": {"type": "string", "minLength": 1},
					"topic": {"type": "string"},
					"difficulty": {"type": "string"}
				},
				"required": ["question", "topic", "difficulty"]
			}
		}
	},
	"required": ["questions"]
}`

// resumeScoreJSONSchema validates the decoded resume score.
const resumeScoreJSONSchema = `{
	"type": "object",
	"properties": {
		"score": {"type": "number", "minimum": 0, "maximum": 100},
		"summary": {"type": "string"},
		"pros": {"type": "array", "items": {"type": "string"}},
		"cons": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["score", "summary", "pros", "cons"]
}`
