package analysis

// Seniority labels the LLM may assign to a profile.
const (
	SeniorityJunior    = "Junior"
	SeniorityMid       = "Mid"
	SenioritySenior    = "Senior"
	SeniorityLead      = "Lead"
	SeniorityArchitect = "Architect"
)

// SkillScore is a single 0-100 rating in the skill matrix.
type SkillScore struct {
	Skill string  `json:"skill"`
	Score float64 `json:"score"`
}

// Analysis is the technical audit of a single GitHub profile.
type Analysis struct {
	Seniority         string       `json:"seniority"`
	Summary           string       `json:"summary"`
	Strengths         []string     `json:"strengths"`
	Weaknesses        []string     `json:"weaknesses"`
	TechStack         []string     `json:"techStack"`
	SkillMatrix       []SkillScore `json:"skillMatrix"`
	PersonalityTraits []string     `json:"personalityTraits"`
	Recommendation    string       `json:"recommendation"`
}

// InterviewQuestion is a single generated question with its topic and
// difficulty label.
type InterviewQuestion struct {
	Question   string `json:"question"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
}

// InterviewQuestions is a set of questions tailored to a candidate and a
// job description.
type InterviewQuestions struct {
	Questions []InterviewQuestion `json:"questions"`
}

// ResumeScore rates a pasted resume against a job description.
type ResumeScore struct {
	Score   float64  `json:"score"`
	Summary string   `json:"summary"`
	Pros    []string `json:"pros"`
	Cons    []string `json:"cons"`
}

// ComparisonPoint is one row of the head-to-head category table.
type ComparisonPoint struct {
	Category    string `json:"category"`
	User1Status string `json:"user1Status"`
	User2Status string `json:"user2Status"`
}

// Comparison is the head-to-head assessment of two GitHub profiles.
type Comparison struct {
	Winner            string            `json:"winner"`
	Rationale         string            `json:"rationale"`
	SuitabilityScore1 float64           `json:"suitabilityScore1"`
	SuitabilityScore2 float64           `json:"suitabilityScore2"`
	ComparisonPoints  []ComparisonPoint `json:"comparisonPoints"`
}
