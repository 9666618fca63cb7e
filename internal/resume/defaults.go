package resume

import "github.com/google/uuid"

// DefaultResumeTitle 为新建简历的默认标题。
const DefaultResumeTitle = "My Resume"

// Default 返回一份空白简历：全部内置板块已注册但没有条目，布局为单页双栏。
func Default() *Data {
	d := &Data{
		Basics: Basics{
			CustomFields: []CustomField{},
		},
		Picture: Picture{
			Size:        80,
			AspectRatio: 1,
		},
		Summary: Summary{
			Title:   DefaultTitle(SectionSummary),
			Columns: 1,
		},
		Sections:       make(map[string]Section, len(BuiltinSections)),
		CustomSections: []CustomSection{},
		Metadata: Metadata{
			Template: "onyx",
			Layout: Layout{
				SidebarWidth: 35,
				Pages: []PageLayout{{
					FullWidth: false,
					Main: []string{
						SectionProfiles,
						SectionSummary,
						SectionEducation,
						SectionExperience,
						SectionProjects,
						SectionVolunteer,
						SectionReferences,
					},
					Sidebar: []string{
						SectionSkills,
						SectionCertifications,
						SectionAwards,
						SectionLanguages,
						SectionInterests,
						SectionPublications,
					},
				}},
			},
			Page: Page{Format: "a4", Locale: "en-US", MarginX: 14, MarginY: 12},
			Design: Design{
				Colors: Colors{Primary: "#dc2626", Text: "#000000", Background: "#ffffff"},
				Level:  Level{Icon: "star", Type: "circle"},
			},
			Typography: Typography{
				Body:    Font{Family: "IBM Plex Serif", Weights: []string{"400", "500"}, Size: 10, LineHeight: 1.5},
				Heading: Font{Family: "IBM Plex Serif", Weights: []string{"600"}, Size: 14, LineHeight: 1.5},
			},
		},
	}
	for _, id := range BuiltinSections {
		d.Sections[id] = Section{
			ID:      id,
			Title:   DefaultTitle(id),
			Columns: 1,
			Items:   []Item{},
		}
	}
	return d
}

// NewItem 生成指定板块类型的空白条目，所有字段置零值。
func NewItem(sectionType string) Item {
	item := Item{"id": uuid.NewString(), "hidden": false}
	for _, field := range itemFields[sectionType] {
		switch field {
		case "keywords":
			item[field] = []any{}
		case "level":
			item[field] = float64(0)
		case "website":
			item[field] = map[string]any{"label": "", "href": ""}
		default:
			item[field] = ""
		}
	}
	return item
}

// Sample 返回带有示例内容的简历，用于演示与新用户引导。
func Sample() *Data {
	d := Default()
	d.Basics.Name = "John Doe"
	d.Basics.Headline = "Software Engineer"
	d.Basics.Email = "john.doe@example.com"
	d.Basics.Phone = "+1 (555) 010-0000"
	d.Basics.Location = "San Francisco, CA"
	d.Basics.Website = URL{Label: "johndoe.dev", Href: "https://johndoe.dev"}
	d.Summary.Content = "<p>Backend engineer focused on distributed systems and developer tooling.</p>"

	withFields := func(sectionType string, fields map[string]any) Item {
		item := NewItem(sectionType)
		for k, v := range fields {
			item[k] = v
		}
		return item
	}

	setItems := func(id string, items ...Item) {
		section := d.Sections[id]
		section.Items = items
		d.Sections[id] = section
	}

	setItems(SectionProfiles,
		withFields(SectionProfiles, map[string]any{"network": "GitHub", "username": "johndoe", "icon": "github"}),
	)
	setItems(SectionExperience,
		withFields(SectionExperience, map[string]any{
			"company":     "Acme Corp",
			"position":    "Senior Engineer",
			"location":    "Remote",
			"period":      "2021 - Present",
			"description": "<p>Led the migration of the billing pipeline to an event-driven design.</p>",
		}),
		withFields(SectionExperience, map[string]any{
			"company":  "Initech",
			"position": "Software Engineer",
			"period":   "2017 - 2021",
		}),
	)
	setItems(SectionEducation,
		withFields(SectionEducation, map[string]any{
			"school": "State University",
			"degree": "B.Sc.",
			"area":   "Computer Science",
			"period": "2013 - 2017",
		}),
	)
	setItems(SectionSkills,
		withFields(SectionSkills, map[string]any{"name": "Go", "proficiency": "Advanced", "level": float64(4), "keywords": []any{"gin", "gorm"}}),
		withFields(SectionSkills, map[string]any{"name": "PostgreSQL", "proficiency": "Intermediate", "level": float64(3)}),
	)
	setItems(SectionLanguages,
		withFields(SectionLanguages, map[string]any{"language": "English", "fluency": "Native", "level": float64(5)}),
	)

	talks := CustomSection{
		ID:      uuid.NewString(),
		Type:    SectionPublications,
		Title:   "Talks",
		Columns: 1,
		Items: []Item{
			withFields(SectionPublications, map[string]any{"title": "Debouncing at scale", "publisher": "GopherCon", "date": "2023"}),
		},
	}
	d.CustomSections = append(d.CustomSections, talks)
	page := &d.Metadata.Layout.Pages[0]
	page.Main = append(page.Main, talks.ID)
	return d
}
