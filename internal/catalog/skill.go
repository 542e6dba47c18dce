package catalog

// Category groups skills for browsing.
type Category string

const (
	CategoryTechnical  Category = "Technical"
	CategorySoftSkills Category = "SoftSkills"
	CategoryLanguage   Category = "Language"
	CategoryLeadership Category = "Leadership"
	CategoryStrategic  Category = "Strategic"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryTechnical,
		CategorySoftSkills,
		CategoryLanguage,
		CategoryLeadership,
		CategoryStrategic,
	}
}

// DisplayName returns a human-readable name for a category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryTechnical:
		return "Technical"
	case CategorySoftSkills:
		return "Soft Skills"
	case CategoryLanguage:
		return "Language"
	case CategoryLeadership:
		return "Leadership"
	case CategoryStrategic:
		return "Strategic"
	default:
		return string(c)
	}
}

// StepType is the authored kind of a step. It is a label only: every step
// runs the same teach-then-quiz loop.
type StepType string

const (
	StepLesson    StepType = "LESSON"
	StepQuiz      StepType = "QUIZ"
	StepChallenge StepType = "CHALLENGE"
	StepTreasure  StepType = "TREASURE"
)

// BlockType identifies how a slide's content is rendered.
type BlockType string

const (
	BlockText  BlockType = "TEXT"
	BlockImage BlockType = "IMAGE"
	BlockVideo BlockType = "VIDEO"
	BlockPDF   BlockType = "PDF"
)

// QuestionType identifies the assessment format of a question.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionMatching       QuestionType = "MATCHING" // declared in content, not runnable
)

// ContentBlock is one teaching slide. Content holds inline text for TEXT
// blocks and a URL for every other type.
type ContentBlock struct {
	Type        BlockType `json:"type"`
	Content     string    `json:"content"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
}

// SkillQuestion is one assessment item within a step's quiz.
type SkillQuestion struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correctAnswer"`
	Explanation   string       `json:"explanation,omitempty"`
}

// CorrectIndex returns the position of the correct answer in Options, or -1.
func (q SkillQuestion) CorrectIndex() int {
	for i, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return i
		}
	}
	return -1
}

// SkillStep is the smallest masterable item: teaching slides followed by a quiz.
type SkillStep struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Teaser string   `json:"teaser,omitempty"`
	Icon   string   `json:"icon,omitempty"`
	Type   StepType `json:"type"`

	// DeclaredStatus is the authored default status. It is never trusted;
	// the unlock package computes the real status from progress.
	DeclaredStatus string `json:"status,omitempty"`

	Slides    []ContentBlock  `json:"slides"`
	Questions []SkillQuestion `json:"questions"`
	XPReward  int             `json:"xpReward"`
}

// SkillUnit is a themed grouping of steps within a skill.
type SkillUnit struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Color       string      `json:"color,omitempty"`
	Steps       []SkillStep `json:"steps"`
}

// SkillMaster is a top-level mastery topic composed of ordered units.
type SkillMaster struct {
	ID          string      `json:"id"`
	Domain      string      `json:"domain"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Category    Category    `json:"category"`
	Image       string      `json:"image,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Units       []SkillUnit `json:"units"`
}

// FlattenSteps returns the canonical step order of a skill: units in
// declaration order, steps in declaration order within each unit.
func FlattenSteps(skill SkillMaster) []SkillStep {
	n := 0
	for _, u := range skill.Units {
		n += len(u.Steps)
	}
	steps := make([]SkillStep, 0, n)
	for _, u := range skill.Units {
		steps = append(steps, u.Steps...)
	}
	return steps
}

// HasTag reports whether the skill carries the given tag.
func (s SkillMaster) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
