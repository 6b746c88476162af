package tui

type Category struct {
	ID          string
	Name        string
	Description string
}

var Categories = []Category{
	{ID: "scan", Name: "Scan", Description: "Archive extension, excluded suffixes and ordering"},
	{ID: "extract", Name: "Extract", Description: "Archive fields holding frame rate and poses"},
	{ID: "manifest", Name: "Manifest", Description: "Identifier extension and collision policy"},
	{ID: "output", Name: "Output", Description: "Default manifest path, run report and progress"},
	{ID: "cache", Name: "Cache", Description: "Metadata cache location and TTL"},
	{ID: "logging", Name: "Logging", Description: "Log level and format"},
}

func GetCategoryByID(id string) *Category {
	for i := range Categories {
		if Categories[i].ID == id {
			return &Categories[i]
		}
	}
	return nil
}

func GetCategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = c.Name
	}
	return names
}
