package resume

import (
	"slices"
	"sort"
)

// 内置板块类型，同时也是 sections 中的键与布局中的板块 ID。
const (
	SectionSummary        = "summary"
	SectionProfiles       = "profiles"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionProjects       = "projects"
	SectionSkills         = "skills"
	SectionLanguages      = "languages"
	SectionInterests      = "interests"
	SectionAwards         = "awards"
	SectionCertifications = "certifications"
	SectionPublications   = "publications"
	SectionVolunteer      = "volunteer"
	SectionReferences     = "references"
)

// BuiltinSections 按默认展示顺序列出全部内置板块（不含 summary）。
var BuiltinSections = []string{
	SectionProfiles,
	SectionExperience,
	SectionEducation,
	SectionProjects,
	SectionSkills,
	SectionLanguages,
	SectionInterests,
	SectionAwards,
	SectionCertifications,
	SectionPublications,
	SectionVolunteer,
	SectionReferences,
}

var builtinTitles = map[string]string{
	SectionSummary:        "Summary",
	SectionProfiles:       "Profiles",
	SectionExperience:     "Experience",
	SectionEducation:      "Education",
	SectionProjects:       "Projects",
	SectionSkills:         "Skills",
	SectionLanguages:      "Languages",
	SectionInterests:      "Interests",
	SectionAwards:         "Awards",
	SectionCertifications: "Certifications",
	SectionPublications:   "Publications",
	SectionVolunteer:      "Volunteering",
	SectionReferences:     "References",
}

// itemFields 为每种板块类型声明条目字段（id/hidden 为公共字段，不在此列出）。
var itemFields = map[string][]string{
	SectionSummary:        {"content"},
	SectionProfiles:       {"network", "username", "icon", "url"},
	SectionExperience:     {"company", "position", "location", "period", "website", "description"},
	SectionEducation:      {"school", "degree", "area", "grade", "location", "period", "website", "description"},
	SectionProjects:       {"name", "period", "website", "description"},
	SectionSkills:         {"name", "proficiency", "level", "keywords", "icon"},
	SectionLanguages:      {"language", "fluency", "level"},
	SectionInterests:      {"name", "keywords", "icon"},
	SectionAwards:         {"title", "awarder", "date", "website", "description"},
	SectionCertifications: {"title", "issuer", "date", "website", "description"},
	SectionPublications:   {"title", "publisher", "date", "website", "description"},
	SectionVolunteer:      {"organization", "location", "period", "website", "description"},
	SectionReferences:     {"name", "position", "phone", "website", "description"},
}

// IsSectionType reports whether t names a known item shape.
func IsSectionType(t string) bool {
	_, ok := itemFields[t]
	return ok
}

// IsBuiltinSection reports whether id is one of the fixed built-in sections.
func IsBuiltinSection(id string) bool {
	return slices.Contains(BuiltinSections, id)
}

// DefaultTitle 返回板块类型的默认标题。
func DefaultTitle(sectionType string) string {
	return builtinTitles[sectionType]
}

// ItemFields 返回板块类型的条目字段（已排序），未知类型返回 nil。
func ItemFields(sectionType string) []string {
	fields, ok := itemFields[sectionType]
	if !ok {
		return nil
	}
	out := append([]string{"hidden", "id"}, fields...)
	sort.Strings(out)
	return out
}

// SameItemShape reports whether items of the two section types match field for field.
func SameItemShape(a, b string) bool {
	fa, fb := ItemFields(a), ItemFields(b)
	if fa == nil || fb == nil {
		return false
	}
	return slices.Equal(fa, fb)
}

// SectionIDs 返回文档中当前存在的全部板块 ID：summary、已注册的内置板块与所有自定义板块。
func (d *Data) SectionIDs() []string {
	ids := []string{SectionSummary}
	for _, id := range BuiltinSections {
		if _, ok := d.Sections[id]; ok {
			ids = append(ids, id)
		}
	}
	for _, cs := range d.CustomSections {
		ids = append(ids, cs.ID)
	}
	return ids
}

// SectionType 返回板块 ID 对应的条目类型；自定义板块取其 Type。
func (d *Data) SectionType(id string) (string, bool) {
	if id == SectionSummary {
		return SectionSummary, true
	}
	if _, ok := d.Sections[id]; ok {
		return id, true
	}
	if i := d.CustomSectionIndex(id); i >= 0 {
		return d.CustomSections[i].Type, true
	}
	return "", false
}

// CustomSectionIndex 返回自定义板块的下标，不存在时返回 -1。
func (d *Data) CustomSectionIndex(id string) int {
	return slices.IndexFunc(d.CustomSections, func(cs CustomSection) bool { return cs.ID == id })
}
