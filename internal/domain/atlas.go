package domain

// Topic is a root category of the Atlas with its sub categories.
type Topic struct {
	Root          string   `json:"root_category"`
	SubCategories []string `json:"sub_categories"`
}

// Atlas is the fixed topic set used for classification, in display order.
var Atlas = []Topic{
	{Root: "Formal Sciences", SubCategories: []string{"Logic", "Mathematics", "Computer Science", "Systems Theory", "Statistics"}},
	{Root: "Natural Sciences", SubCategories: []string{"Physics", "Chemistry", "Biology", "Earth Science", "Astronomy"}},
	{Root: "Social Sciences", SubCategories: []string{"Economics", "Psychology", "Sociology", "Political Science", "Anthropology"}},
	{Root: "Humanities", SubCategories: []string{"Philosophy", "History", "Literature", "Theology", "Arts"}},
	{Root: "Applied Sciences", SubCategories: []string{"Engineering", "Medicine", "Agriculture", "Architecture", "Business"}},
	{Root: "Practical Arts", SubCategories: []string{"Education", "Journalism", "Law", "Media", "Military Science"}},
}

// RootCategories returns the Atlas root labels in order.
func RootCategories() []string {
	roots := make([]string, len(Atlas))
	for i, t := range Atlas {
		roots[i] = t.Root
	}
	return roots
}

// IsRootCategory reports whether label is one of the Atlas roots.
func IsRootCategory(label string) bool {
	for _, t := range Atlas {
		if t.Root == label {
			return true
		}
	}
	return false
}
