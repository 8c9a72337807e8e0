package pptx

import "strings"

// Content types.
const (
	ctRels         = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML          = "application/xml"
	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctPresProps    = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	ctViewProps    = "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"
	ctTableStyles  = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	ctCore         = "application/vnd.openxmlformats-package.core-properties+xml"
	ctApp          = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

// Relationship types.
const (
	relOfficeDocument = nsRelationships + "/officeDocument"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relAppProps       = nsRelationships + "/extended-properties"
	relSlideMaster    = nsRelationships + "/slideMaster"
	relSlideLayout    = nsRelationships + "/slideLayout"
	relSlide          = nsRelationships + "/slide"
	relTheme          = nsRelationships + "/theme"
	relPresProps      = nsRelationships + "/presProps"
	relViewProps      = nsRelationships + "/viewProps"
	relTableStyles    = nsRelationships + "/tableStyles"
)

const presPropsXML = xmlHeader +
	`<p:presentationPr xmlns:a="` + nsDrawingML + `" xmlns:r="` + nsRelationships + `" xmlns:p="` + nsPresentation + `"/>`

const viewPropsXML = xmlHeader +
	`<p:viewPr xmlns:a="` + nsDrawingML + `" xmlns:r="` + nsRelationships + `" xmlns:p="` + nsPresentation + `">` +
	`<p:normalViewPr><p:restoredLeft sz="15620"/><p:restoredTop sz="94660"/></p:normalViewPr>` +
	`<p:gridSpacing cx="76200" cy="76200"/></p:viewPr>`

const tableStylesXML = xmlHeader +
	`<a:tblStyleLst xmlns:a="` + nsDrawingML + `" def="` + defaultTableStyle + `"/>`

const masterClrMap = `<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" ` +
	`accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`

const masterClrMapping = `<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`

const masterBackground = `<p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg>`

const themeXML = xmlHeader +
	`<a:theme xmlns:a="` + nsDrawingML + `" name="Office Theme"><a:themeElements>` +
	`<a:clrScheme name="Office">` +
	`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
	`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="1F497D"/></a:dk2>` +
	`<a:lt2><a:srgbClr val="EEECE1"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="4F81BD"/></a:accent1>` +
	`<a:accent2><a:srgbClr val="C0504D"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="9BBB59"/></a:accent3>` +
	`<a:accent4><a:srgbClr val="8064A2"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="4BACC6"/></a:accent5>` +
	`<a:accent6><a:srgbClr val="F79646"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0000FF"/></a:hlink>` +
	`<a:folHlink><a:srgbClr val="800080"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Office">` +
	`<a:majorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="Office">` +
	`<a:fillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"><a:tint val="50000"/></a:schemeClr></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"><a:shade val="80000"/></a:schemeClr></a:solidFill>` +
	`</a:fillStyleLst>` +
	`<a:lnStyleLst>` +
	`<a:ln w="9525"><a:solidFill><a:schemeClr val="phClr"><a:shade val="95000"/></a:schemeClr></a:solidFill></a:ln>` +
	`<a:ln w="25400"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`<a:ln w="38100"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`</a:lnStyleLst>` +
	`<a:effectStyleLst>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`</a:effectStyleLst>` +
	`<a:bgFillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"><a:tint val="95000"/></a:schemeClr></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"><a:shade val="90000"/></a:schemeClr></a:solidFill>` +
	`</a:bgFillStyleLst>` +
	`</a:fmtScheme></a:themeElements><a:objectDefaults/><a:extraClrSchemeLst/></a:theme>`

// Body text levels: left margin, hanging indent, bullet and size in
// hundredths of a point, indexed by level.
var bodyLevels = []struct {
	marL, indent string
	bullet       string
	size         string
}{
	{"342900", "-342900", "•", "3200"},
	{"742950", "-285750", "–", "2800"},
	{"1143000", "-228600", "•", "2400"},
	{"1600200", "-228600", "–", "2000"},
	{"2057400", "-228600", "»", "2000"},
	{"2514600", "-228600", "•", "2000"},
	{"2971800", "-228600", "•", "2000"},
	{"3429000", "-228600", "•", "2000"},
	{"3886200", "-228600", "•", "2000"},
}

const defaultRunProps = `<a:solidFill><a:schemeClr val="tx1"/></a:solidFill>` +
	`<a:latin typeface="+mn-lt"/><a:ea typeface="+mn-ea"/><a:cs typeface="+mn-cs"/>`

// masterTextStyles renders p:txStyles: title, the nine body levels and the
// style for other text.
func masterTextStyles() string {
	var sb strings.Builder
	sb.WriteString(`<p:txStyles>`)
	sb.WriteString(`<p:titleStyle><a:lvl1pPr algn="ctr" rtl="0" eaLnBrk="1" latinLnBrk="0" hangingPunct="1">` +
		`<a:spcBef><a:spcPct val="0"/></a:spcBef><a:buNone/>` +
		`<a:defRPr sz="4400" kern="1200"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill>` +
		`<a:latin typeface="+mj-lt"/><a:ea typeface="+mj-ea"/><a:cs typeface="+mj-cs"/></a:defRPr>` +
		`</a:lvl1pPr></p:titleStyle>`)
	sb.WriteString(`<p:bodyStyle>`)
	for i, lv := range bodyLevels {
		tag := "a:lvl" + itoa(i+1) + "pPr"
		sb.WriteString(`<` + tag + ` marL="` + lv.marL + `" indent="` + lv.indent + `" algn="l" rtl="0" eaLnBrk="1" latinLnBrk="0" hangingPunct="1">`)
		sb.WriteString(`<a:spcBef><a:spcPct val="20000"/></a:spcBef><a:buFont typeface="Arial"/><a:buChar char="` + lv.bullet + `"/>`)
		sb.WriteString(`<a:defRPr sz="` + lv.size + `" kern="1200">` + defaultRunProps + `</a:defRPr>`)
		sb.WriteString(`</` + tag + `>`)
	}
	sb.WriteString(`</p:bodyStyle>`)
	sb.WriteString(`<p:otherStyle><a:defPPr><a:defRPr lang="en-US"/></a:defPPr>` +
		`<a:lvl1pPr marL="0" algn="l" rtl="0" eaLnBrk="1" latinLnBrk="0" hangingPunct="1">` +
		`<a:defRPr sz="1800" kern="1200">` + defaultRunProps + `</a:defRPr></a:lvl1pPr></p:otherStyle>`)
	sb.WriteString(`</p:txStyles>`)
	return sb.String()
}
