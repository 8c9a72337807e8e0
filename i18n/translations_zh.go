package i18n

var chineseTranslations = map[string]string{
	// 演示文稿
	"demo.title":              "PPT Agent 演示",
	"demo.subtitle":           "使用 slidecomposer 创建演示文稿",
	"demo.overview.title":     "项目概述",
	"demo.overview.point1":    "第一点：这是项目的主要特点",
	"demo.overview.point2":    "第二点：支持多种功能",
	"demo.overview.point3":    "第三点：易于使用和扩展",
	"demo.custom.title":       "自定义内容幻灯片",
	"demo.custom.body":        "这是一个自定义的文本框，可以设置各种样式和格式。",
	"demo.custom.more":        "支持多段落文本",
	"demo.table.title":        "数据表格示例",
	"demo.table.item":         "项目",
	"demo.table.value":        "数值",
	"demo.table.note":         "备注",
	"demo.table.feature_a":    "功能A",
	"demo.table.feature_b":    "功能B",
	"demo.table.feature_c":    "功能C",
	"demo.table.done":         "已完成",
	"demo.table.in_progress":  "进行中",
	"demo.table.planned":      "计划中",
	"demo.shapes.title":       "形状和图形示例",
	"demo.shapes.rectangle":   "矩形",
	"demo.shapes.oval":        "圆形",
	"demo.shapes.arrow":       "箭头",
	"demo.image.title":        "图片示例",
	"demo.list.title":         "项目列表示例",
	"demo.list.heading":       "主要功能",
	"demo.list.module_a":      "功能模块A",
	"demo.list.sub_a1":        "子功能A1",
	"demo.list.sub_a2":        "子功能A2",
	"demo.list.module_b":      "功能模块B",
	"demo.list.module_c":      "功能模块C",
	"demo.background.text":    "自定义背景幻灯片",
	"demo.styled.heading":     "样式丰富的文本",
	"demo.styled.body":        "这是普通正文，可以设置字体大小、颜色等属性。",
	"demo.styled.italic":      "这是斜体文本。",
	"demo.styled.underline":   "这是带下划线的文本。",
	"demo.chart.title":        "图表示例",
	"demo.chart.note":         "注意：图表不会直接绘制。",
	"demo.chart.options":      "如需复杂图表，可以考虑：",
	"demo.chart.option_image": "1. 生成图表图片后插入",
	"demo.chart.option_lib":   "2. 使用专门的图表工具",

	// 修改流程
	"modify.title":      "修改后的标题",
	"modify.slide":      "新添加的幻灯片",
	"modify.slide_body": "这是通过代码添加的内容",

	// 进度与错误
	"progress.slide":       "已创建第 %d 张幻灯片：%s",
	"progress.saved":       "演示文稿已保存：%s",
	"progress.modified":    "修改后的演示文稿已保存：%s",
	"progress.layouts":     "可用的幻灯片布局：",
	"progress.built":       "已从 %[2]s 生成 %[1]d 张幻灯片",
	"progress.rendered":    "已渲染 %d 张幻灯片",
	"progress.exported":    "已将 %d 个表格导出到 %s",
	"progress.no_tables":   "演示文稿中没有可导出的表格",
	"progress.config":      "配置已写入：%s",
	"error.file_not_found": "文件不存在: %s",
	"warning.skipped":      "%d 个形状无法保留，保存后的演示文稿中将缺少这些形状",
}
