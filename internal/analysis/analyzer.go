package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/devlens/devlens/internal/llm"
	"github.com/devlens/devlens/internal/schemas"
)

// Analyzer produces structured audits of GitHub profiles via an LLM
type Analyzer struct {
	client llm.Client
}

// NewAnalyzer creates an Analyzer backed by the given LLM client
func NewAnalyzer(client llm.Client) *Analyzer {
	return &Analyzer{client: client}
}

// AnalyzeProfile performs a deep technical audit of a single GitHub user
func (a *Analyzer) AnalyzeProfile(ctx context.Context, username string) (*Analysis, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	prompt := fmt.Sprintf(`Analyze the GitHub profile of user %q. Assume you have accessed their repositories and contribution history. Provide a deep technical audit of their coding style, consistency, stack specialization, and seniority level.`, username)

	raw, err := a.client.GenerateJSON(ctx, prompt, analysisResponseSchema(), llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze profile: %w", err)
	}

	if err := schemas.ValidateJSONString(analysisJSONSchema, raw); err != nil {
		return nil, &MalformedResponseError{Cause: err}
	}

	var result Analysis
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &MalformedResponseError{Cause: err}
	}

	return &result, nil
}

// CompareProfiles performs a head-to-head audit of two GitHub users.
// jobDescription is optional; when set, fitness is judged against it.
func (a *Analyzer) CompareProfiles(ctx context.Context, user1, user2, jobDescription string) (*Comparison, error) {
	if user1 == "" || user2 == "" {
		return nil, fmt.Errorf("two usernames are required")
	}

	var prompt string
	if jobDescription != "" {
		prompt = fmt.Sprintf(`Compare GitHub users %q and %q specifically for the following job description: %q. Determine who is the better fit based on their public work and skills.`, user1, user2, jobDescription)
	} else {
		prompt = fmt.Sprintf(`Compare GitHub users %q and %q. Who is the more senior/versatile engineer? Analyze their strengths relative to each other.`, user1, user2)
	}

	raw, err := a.client.GenerateJSON(ctx, prompt, comparisonResponseSchema(), llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to compare profiles: %w", err)
	}

	if err := schemas.ValidateJSONString(comparisonJSONSchema, raw); err != nil {
		return nil, &MalformedResponseError{Cause: err}
	}

	var result Comparison
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &MalformedResponseError{Cause: err}
	}

	return &result, nil
}

// GenerateInterviewQuestions produces interview questions tailored to a
// candidate's public work and a job description.
func (a *Analyzer) GenerateInterviewQuestions(ctx context.Context, username, jobDescription string) (*InterviewQuestions, error) {
	if username == "" || jobDescription == "" {
		return nil, fmt.Errorf("username and job description are required")
	}

	prompt := fmt.Sprintf(`Generate technical interview questions for GitHub user %q applying to the following job description: %q. Base the questions on their likely stack and experience level. For each question include its topic and a difficulty of Easy, Medium, or Hard.`, username, jobDescription)

	raw, err := a.client.GenerateJSON(ctx, prompt, interviewQuestionsResponseSchema(), llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to generate interview questions: %w", err)
	}

	if err := schemas.ValidateJSONString(interviewQuestionsJSONSchema, raw); err != nil {
		return nil, &MalformedResponseError{Cause: err}
	}

	var result InterviewQuestions
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &MalformedResponseError{Cause: err}
	}

	return &result, nil
}

// ScoreResume rates a pasted resume against a job description on a 0-100
// scale with pros and cons.
func (a *Analyzer) ScoreResume(ctx context.Context, resumeText, jobDescription string) (*ResumeScore, error) {
	if resumeText == "" || jobDescription == "" {
		return nil, fmt.Errorf("resume text and job description are required")
	}

	prompt := fmt.Sprintf(`Score the following resume against this job description on a 0-100 scale. Summarize the fit and list the concrete pros and cons.

Job description: %q

Resume:
%s`, jobDescription, resumeText)

	raw, err := a.client.GenerateJSON(ctx, prompt, resumeScoreResponseSchema(), llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to score resume: %w", err)
	}

	if err := schemas.ValidateJSONString(resumeScoreJSONSchema, raw); err != nil {
		return nil, &MalformedResponseError{Cause: err}
	}

	var result ResumeScore
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &MalformedResponseError{Cause: err}
	}

	return &result, nil
}

// ChatAboutProfile answers a free-form question about a previously audited
// profile. chatContext carries the audit summary so the model can ground
// its answer without re-fetching anything.
func (a *Analyzer) ChatAboutProfile(ctx context.Context, username, question, chatContext string) (string, error) {
	if username == "" || question == "" {
		return "", fmt.Errorf("username and question are required")
	}

	prompt := fmt.Sprintf(`The user is asking about GitHub profile @%s.
Context: %s
Question: %s

Answer concisely as a technical recruiter/lead engineer.`, username, chatContext, question)

	answer, err := a.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", fmt.Errorf("failed to answer question: %w", err)
	}
	if answer == "" {
		return "", &MalformedResponseError{Cause: fmt.Errorf("empty response")}
	}

	return answer, nil
}
