// Package docs holds the static project documents served next to the live data.
package docs

type BRDSection struct {
	Title        string   `json:"title" toml:"title"`
	Content      string   `json:"content,omitempty" toml:"content,omitempty"`
	Requirements []string `json:"requirements,omitempty" toml:"requirements,omitempty"`
}

type BusinessRequirements struct {
	Title    string       `json:"title" toml:"title"`
	Version  string       `json:"version" toml:"version"`
	Date     string       `json:"date" toml:"date"`
	Project  string       `json:"project" toml:"project"`
	Sections []BRDSection `json:"sections" toml:"sections"`
}

type UseCase struct {
	ID              string `json:"id" toml:"id"`
	Title           string `json:"title" toml:"title"`
	Actor           string `json:"actor" toml:"actor"`
	Precondition    string `json:"precondition" toml:"precondition"`
	Scenario        string `json:"scenario" toml:"scenario"`
	Postcondition   string `json:"postcondition" toml:"postcondition"`
	SuccessCriteria string `json:"success_criteria" toml:"success_criteria"`
}

type UseCaseList struct {
	UseCases []UseCase `json:"use_cases" toml:"use_cases"`
}
