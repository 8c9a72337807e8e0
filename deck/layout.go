package deck

// PlaceholderType is the OOXML placeholder type (the ph@type attribute).
type PlaceholderType string

const (
	PhTitle       PlaceholderType = "title"
	PhCenterTitle PlaceholderType = "ctrTitle"
	PhSubtitle    PlaceholderType = "subTitle"
	PhBody        PlaceholderType = "body"
	PhObject      PlaceholderType = "obj"
	PhDate        PlaceholderType = "dt"
	PhFooter      PlaceholderType = "ftr"
	PhSlideNumber PlaceholderType = "sldNum"
	PhPicture     PlaceholderType = "pic"
)

// Role is the capability a placeholder provides. Callers address
// placeholders by role rather than by position in the layout.
type Role string

const (
	RoleTitle       Role = "title"
	RoleSubtitle    Role = "subtitle"
	RoleBody        Role = "body"
	RoleDate        Role = "date"
	RoleFooter      Role = "footer"
	RoleSlideNumber Role = "slide number"
	RolePicture     Role = "picture"
)

// Role maps the placeholder type to its role. Unknown types (chart, tbl,
// media and friends) behave like content placeholders.
func (t PlaceholderType) Role() Role {
	switch t {
	case PhTitle, PhCenterTitle:
		return RoleTitle
	case PhSubtitle:
		return RoleSubtitle
	case PhDate:
		return RoleDate
	case PhFooter:
		return RoleFooter
	case PhSlideNumber:
		return RoleSlideNumber
	case PhPicture:
		return RolePicture
	default:
		return RoleBody
	}
}

// LayoutType is the OOXML slide layout type (sldLayout@type).
type LayoutType string

const (
	LayoutTitle              LayoutType = "title"
	LayoutTitleAndContent    LayoutType = "obj"
	LayoutSectionHeader      LayoutType = "secHead"
	LayoutTwoContent         LayoutType = "twoObj"
	LayoutComparison         LayoutType = "twoTxTwoObj"
	LayoutTitleOnly          LayoutType = "titleOnly"
	LayoutBlank              LayoutType = "blank"
	LayoutContentWithCaption LayoutType = "objTx"
	LayoutPictureWithCaption LayoutType = "picTx"
	LayoutTitleVerticalText  LayoutType = "vertTx"
	LayoutVerticalTitleText  LayoutType = "vertTitleAndTx"
	LayoutCustom             LayoutType = "cust"
)

// PlaceholderSpec is one slot of a layout.
type PlaceholderSpec struct {
	Type     PlaceholderType
	Idx      uint32
	Name     string
	Bounds   Rect
	Vertical bool
}

// Role returns the capability of the slot.
func (p PlaceholderSpec) Role() Role { return p.Type.Role() }

// Layout is a named slide template.
type Layout struct {
	Name         string
	Type         LayoutType
	Placeholders []PlaceholderSpec
}

// Placeholder returns the first slot providing role.
func (l *Layout) Placeholder(role Role) (PlaceholderSpec, error) {
	for _, ph := range l.Placeholders {
		if ph.Role() == role {
			return ph, nil
		}
	}
	return PlaceholderSpec{}, &LayoutMissingError{Layout: l.Name, Role: role}
}

// Has reports whether the layout provides every listed role.
func (l *Layout) Has(roles ...Role) bool {
	for _, r := range roles {
		if _, err := l.Placeholder(r); err != nil {
			return false
		}
	}
	return true
}

// Default slide size: 10in x 7.5in (4:3).
const (
	DefaultWidth  Length = 9144000
	DefaultHeight Length = 6858000
)

// DefaultLayouts returns the standard eleven Office layouts with placeholder
// geometry scaled to a width x height slide.
func DefaultLayouts(width, height Length) []*Layout {
	box := scaler(width, height)
	title := PlaceholderSpec{Type: PhTitle, Name: "Title 1", Bounds: box(457200, 274638, 8229600, 1143000)}
	content := PlaceholderSpec{Type: PhObject, Idx: 1, Name: "Content Placeholder 2", Bounds: box(457200, 1600200, 8229600, 4525963)}
	footers := footerPlaceholders(box, 10)
	with := func(specs ...PlaceholderSpec) []PlaceholderSpec {
		return append(specs, footers...)
	}

	return []*Layout{
		{Name: "Title Slide", Type: LayoutTitle, Placeholders: with(
			PlaceholderSpec{Type: PhCenterTitle, Name: "Title 1", Bounds: box(685800, 2130425, 7772400, 1470025)},
			PlaceholderSpec{Type: PhSubtitle, Idx: 1, Name: "Subtitle 2", Bounds: box(1371600, 3886200, 6400800, 1752600)},
		)},
		{Name: "Title and Content", Type: LayoutTitleAndContent, Placeholders: with(title, content)},
		{Name: "Section Header", Type: LayoutSectionHeader, Placeholders: with(
			PlaceholderSpec{Type: PhTitle, Name: "Title 1", Bounds: box(722313, 4406900, 7772400, 1362075)},
			PlaceholderSpec{Type: PhBody, Idx: 1, Name: "Text Placeholder 2", Bounds: box(722313, 2906713, 7772400, 1500187)},
		)},
		{Name: "Two Content", Type: LayoutTwoContent, Placeholders: with(
			title,
			PlaceholderSpec{Type: PhObject, Idx: 1, Name: "Content Placeholder 2", Bounds: box(457200, 1600200, 4038600, 4525963)},
			PlaceholderSpec{Type: PhObject, Idx: 2, Name: "Content Placeholder 3", Bounds: box(4648200, 1600200, 4038600, 4525963)},
		)},
		{Name: "Comparison", Type: LayoutComparison, Placeholders: with(
			title,
			PlaceholderSpec{Type: PhBody, Idx: 1, Name: "Text Placeholder 2", Bounds: box(457200, 1535113, 4040188, 639762)},
			PlaceholderSpec{Type: PhObject, Idx: 2, Name: "Content Placeholder 3", Bounds: box(457200, 2174875, 4040188, 3951288)},
			PlaceholderSpec{Type: PhBody, Idx: 3, Name: "Text Placeholder 4", Bounds: box(4645025, 1535113, 4041775, 639762)},
			PlaceholderSpec{Type: PhObject, Idx: 4, Name: "Content Placeholder 5", Bounds: box(4645025, 2174875, 4041775, 3951288)},
		)},
		{Name: "Title Only", Type: LayoutTitleOnly, Placeholders: with(title)},
		{Name: "Blank", Type: LayoutBlank, Placeholders: with()},
		{Name: "Content with Caption", Type: LayoutContentWithCaption, Placeholders: with(
			PlaceholderSpec{Type: PhTitle, Name: "Title 1", Bounds: box(457200, 273050, 3008313, 1162050)},
			PlaceholderSpec{Type: PhObject, Idx: 1, Name: "Content Placeholder 2", Bounds: box(3575050, 273050, 5111750, 5853113)},
			PlaceholderSpec{Type: PhBody, Idx: 2, Name: "Text Placeholder 3", Bounds: box(457200, 1435100, 3008313, 4691063)},
		)},
		{Name: "Picture with Caption", Type: LayoutPictureWithCaption, Placeholders: with(
			PlaceholderSpec{Type: PhTitle, Name: "Title 1", Bounds: box(1792288, 4800600, 5486400, 566738)},
			PlaceholderSpec{Type: PhPicture, Idx: 1, Name: "Picture Placeholder 2", Bounds: box(1792288, 612775, 5486400, 4114800)},
			PlaceholderSpec{Type: PhBody, Idx: 2, Name: "Text Placeholder 3", Bounds: box(1792288, 5367338, 5486400, 804862)},
		)},
		{Name: "Title and Vertical Text", Type: LayoutTitleVerticalText, Placeholders: with(
			title,
			PlaceholderSpec{Type: PhBody, Idx: 1, Name: "Vertical Text Placeholder 2", Bounds: content.Bounds, Vertical: true},
		)},
		{Name: "Vertical Title and Text", Type: LayoutVerticalTitleText, Placeholders: with(
			PlaceholderSpec{Type: PhTitle, Name: "Vertical Title 1", Bounds: box(6629400, 274638, 2057400, 5851525), Vertical: true},
			PlaceholderSpec{Type: PhBody, Idx: 1, Name: "Vertical Text Placeholder 2", Bounds: box(457200, 274638, 6019800, 5851525), Vertical: true},
		)},
	}
}

// MasterPlaceholders returns the slide master's own slots: title, body and
// the three footer fields.
func MasterPlaceholders(width, height Length) []PlaceholderSpec {
	box := scaler(width, height)
	return append([]PlaceholderSpec{
		{Type: PhTitle, Name: "Title Placeholder 1", Bounds: box(457200, 274638, 8229600, 1143000)},
		{Type: PhBody, Idx: 1, Name: "Text Placeholder 2", Bounds: box(457200, 1600200, 8229600, 4525963)},
	}, footerPlaceholders(box, 2)...)
}

func footerPlaceholders(box func(x, y, cx, cy int64) Rect, firstIdx uint32) []PlaceholderSpec {
	return []PlaceholderSpec{
		{Type: PhDate, Idx: firstIdx, Name: "Date Placeholder", Bounds: box(457200, 6356350, 2133600, 365125)},
		{Type: PhFooter, Idx: firstIdx + 1, Name: "Footer Placeholder", Bounds: box(3124200, 6356350, 2895600, 365125)},
		{Type: PhSlideNumber, Idx: firstIdx + 2, Name: "Slide Number Placeholder", Bounds: box(6553200, 6356350, 2133600, 365125)},
	}
}

// scaler maps geometry authored for the default 10in x 7.5in slide onto a
// width x height slide.
func scaler(width, height Length) func(x, y, cx, cy int64) Rect {
	sx := float64(width) / float64(DefaultWidth)
	sy := float64(height) / float64(DefaultHeight)
	return func(x, y, cx, cy int64) Rect {
		return Rect{
			Left:   Length(float64(x) * sx),
			Top:    Length(float64(y) * sy),
			Width:  Length(float64(cx) * sx),
			Height: Length(float64(cy) * sy),
		}
	}
}
