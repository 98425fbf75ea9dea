package model

// Profile is a candidate's structured résumé data as stored by the backend.
// Profiles are read-only snapshots; the client never writes them back.
type Profile struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Surname     string  `json:"surname"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	LinkedinURL *string `json:"linkedin_url"`
	GithubURL   *string `json:"github_url"`
	Description *string `json:"description"`
	AISummary   *string `json:"ai_summary"`
	CVFilepath  *string `json:"cv_filepath"`

	// Populated only on search results.
	MatchScore *float64 `json:"match_score,omitempty"`
	Reasoning  *string  `json:"reasoning,omitempty"`

	Skills           []Skill          `json:"skills"`
	WorkExperiences  []WorkExperience `json:"work_experiences"`
	EducationHistory []Education      `json:"education_history"`
	Projects         []Project        `json:"projects"`
	Languages        []Language       `json:"languages"`
	Publications     []Publication    `json:"publications"`
	Certifications   []Certification  `json:"certifications"`
	OtherData        []OtherData      `json:"other_data"`
}

type Skill struct {
	Name string `json:"name"`
}

type WorkExperience struct {
	Position    string  `json:"position"`
	Company     string  `json:"company"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description"`
}

type Education struct {
	Institution string  `json:"institution"`
	Degree      *string `json:"degree"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

type Project struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type Language struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type Publication struct {
	Title  string  `json:"title"`
	Outlet *string `json:"outlet"`
	Date   *string `json:"date"`
}

type Certification struct {
	Name                string  `json:"name"`
	IssuingOrganization *string `json:"issuing_organization"`
	DateIssued          *string `json:"date_issued"`
}

type OtherData struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// FullName returns "Name Surname".
func (p Profile) FullName() string {
	return p.Name + " " + p.Surname
}

// Initials returns the first rune of the name and surname, e.g. "JK".
func (p Profile) Initials() string {
	var out []rune
	if r := []rune(p.Name); len(r) > 0 {
		out = append(out, r[0])
	}
	if r := []rune(p.Surname); len(r) > 0 {
		out = append(out, r[0])
	}
	return string(out)
}

// TopSkills returns up to n leading skill names.
func (p Profile) TopSkills(n int) []string {
	if n > len(p.Skills) {
		n = len(p.Skills)
	}
	names := make([]string, 0, n)
	for _, s := range p.Skills[:n] {
		names = append(names, s.Name)
	}
	return names
}

// Score returns the match score, or 0 when absent.
func (p Profile) Score() float64 {
	if p.MatchScore == nil {
		return 0
	}
	return *p.MatchScore
}
