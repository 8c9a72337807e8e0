package i18n

var englishTranslations = map[string]string{
	// Demonstration deck
	"demo.title":              "Slide Composer Demo",
	"demo.subtitle":           "Building presentations with slidecomposer",
	"demo.overview.title":     "Project Overview",
	"demo.overview.point1":    "Point one: the main features of the project",
	"demo.overview.point2":    "Point two: supports many functions",
	"demo.overview.point3":    "Point three: easy to use and extend",
	"demo.custom.title":       "Custom Content Slide",
	"demo.custom.body":        "This is a custom text box with its own styles and formatting.",
	"demo.custom.more":        "Multiple paragraphs are supported",
	"demo.table.title":        "Data Table Example",
	"demo.table.item":         "Item",
	"demo.table.value":        "Value",
	"demo.table.note":         "Notes",
	"demo.table.feature_a":    "Feature A",
	"demo.table.feature_b":    "Feature B",
	"demo.table.feature_c":    "Feature C",
	"demo.table.done":         "Done",
	"demo.table.in_progress":  "In progress",
	"demo.table.planned":      "Planned",
	"demo.shapes.title":       "Shapes Example",
	"demo.shapes.rectangle":   "Rectangle",
	"demo.shapes.oval":        "Circle",
	"demo.shapes.arrow":       "Arrow",
	"demo.image.title":        "Image Example",
	"demo.list.title":         "Item List Example",
	"demo.list.heading":       "Main features",
	"demo.list.module_a":      "Module A",
	"demo.list.sub_a1":        "Sub-feature A1",
	"demo.list.sub_a2":        "Sub-feature A2",
	"demo.list.module_b":      "Module B",
	"demo.list.module_c":      "Module C",
	"demo.background.text":    "Custom Background Slide",
	"demo.styled.heading":     "Richly Styled Text",
	"demo.styled.body":        "This is plain body text with its own size and colour.",
	"demo.styled.italic":      "This is italic text.",
	"demo.styled.underline":   "This is underlined text.",
	"demo.chart.title":        "Chart Example",
	"demo.chart.note":         "Note: charts are not drawn natively.",
	"demo.chart.options":      "For complex charts, consider:",
	"demo.chart.option_image": "1. Render the chart to an image and insert it",
	"demo.chart.option_lib":   "2. Use a dedicated charting tool",

	// Modify flow
	"modify.title":      "Modified Title",
	"modify.slide":      "Newly Added Slide",
	"modify.slide_body": "This content was added in code",

	// Progress and errors
	"progress.slide":       "Created slide %d: %s",
	"progress.saved":       "Presentation saved: %s",
	"progress.modified":    "Modified presentation saved: %s",
	"progress.layouts":     "Available slide layouts:",
	"progress.built":       "Built %d slides from %s",
	"progress.rendered":    "Rendered %d slides",
	"progress.exported":    "Exported %d tables to %s",
	"progress.no_tables":   "The deck has no tables to export",
	"progress.config":      "Configuration written: %s",
	"error.file_not_found": "File not found: %s",
	"warning.skipped":      "%d shapes cannot be kept and will be missing from the saved deck",
}
