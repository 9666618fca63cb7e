package resume

// Resume 是数据库中的一份简历记录，Data 为编辑器操作的文档本体。
type Resume struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Locked bool   `json:"isLocked"`
	Data   *Data  `json:"data"`
}

// Data 是简历文档的根聚合。
type Data struct {
	Basics         Basics             `json:"basics"`
	Picture        Picture            `json:"picture"`
	Summary        Summary            `json:"summary"`
	Sections       map[string]Section `json:"sections" validate:"dive"`
	CustomSections []CustomSection    `json:"customSections" validate:"dive"`
	Metadata       Metadata           `json:"metadata"`
}

type Basics struct {
	Name         string        `json:"name"`
	Headline     string        `json:"headline"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Location     string        `json:"location"`
	Website      URL           `json:"website"`
	CustomFields []CustomField `json:"customFields" validate:"dive"`
}

type URL struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type CustomField struct {
	ID   string `json:"id" validate:"required"`
	Icon string `json:"icon"`
	Text string `json:"text"`
	Link string `json:"link"`
}

type Picture struct {
	Hidden       bool    `json:"hidden"`
	URL          string  `json:"url"`
	Size         float64 `json:"size"`
	Rotation     float64 `json:"rotation"`
	AspectRatio  float64 `json:"aspectRatio"`
	BorderRadius float64 `json:"borderRadius"`
}

type Summary struct {
	Title   string `json:"title"`
	Columns int    `json:"columns" validate:"gte=1,lte=6"`
	Hidden  bool   `json:"hidden"`
	Content string `json:"content"`
}

// Section 是内置板块（工作经历、教育经历、技能……），每种类型一个实例。
type Section struct {
	ID      string `json:"id" validate:"required"`
	Title   string `json:"title"`
	Columns int    `json:"columns" validate:"gte=1,lte=6"`
	Hidden  bool   `json:"hidden"`
	Items   []Item `json:"items" validate:"dive,item"`
}

// CustomSection 是用户自定义板块，Type 决定条目的字段形状。
type CustomSection struct {
	ID      string `json:"id" validate:"required"`
	Type    string `json:"type" validate:"required,sectiontype"`
	Title   string `json:"title"`
	Columns int    `json:"columns" validate:"gte=1,lte=6"`
	Hidden  bool   `json:"hidden"`
	Items   []Item `json:"items" validate:"dive,item"`
}

// Item 是板块中的单个条目。字段集合由所在板块类型决定，见 ItemFields。
type Item map[string]any

// ID returns the item's identifier, or "" when missing.
func (i Item) ID() string {
	id, _ := i["id"].(string)
	return id
}

// Hidden reports whether the item is hidden from the rendered resume.
func (i Item) Hidden() bool {
	hidden, _ := i["hidden"].(bool)
	return hidden
}

type Metadata struct {
	Template   string     `json:"template"`
	Layout     Layout     `json:"layout"`
	CSS        CSS        `json:"css"`
	Page       Page       `json:"page"`
	Design     Design     `json:"design"`
	Typography Typography `json:"typography"`
	Notes      string     `json:"notes"`
}

// Layout 描述板块在各页面、各栏中的排布。
type Layout struct {
	SidebarWidth float64      `json:"sidebarWidth"`
	Pages        []PageLayout `json:"pages" validate:"min=1"`
}

type PageLayout struct {
	FullWidth bool     `json:"fullWidth"`
	Main      []string `json:"main"`
	Sidebar   []string `json:"sidebar"`
}

type CSS struct {
	Enabled bool   `json:"enabled"`
	Value   string `json:"value"`
}

type Page struct {
	Format  string  `json:"format" validate:"oneof=a4 letter"`
	Locale  string  `json:"locale"`
	MarginX float64 `json:"marginX"`
	MarginY float64 `json:"marginY"`
}

type Design struct {
	Colors Colors `json:"colors"`
	Level  Level  `json:"level"`
}

type Colors struct {
	Primary    string `json:"primary"`
	Text       string `json:"text"`
	Background string `json:"background"`
}

type Level struct {
	Icon string `json:"icon"`
	Type string `json:"type"`
}

type Typography struct {
	Body    Font `json:"body"`
	Heading Font `json:"heading"`
}

type Font struct {
	Family     string   `json:"fontFamily"`
	Weights    []string `json:"fontWeights"`
	Size       float64  `json:"fontSize"`
	LineHeight float64  `json:"lineHeight"`
}
