package pptx

import "encoding/xml"

// Reader-side part structures. Tags use local names only, so the prefixes a
// producer picked do not matter.

type idRefXML struct {
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type presentationXMLDoc struct {
	XMLName xml.Name   `xml:"presentation"`
	Masters []idRefXML `xml:"sldMasterIdLst>sldMasterId"`
	Slides  []idRefXML `xml:"sldIdLst>sldId"`
	SlideSz *extXML    `xml:"sldSz"`
}

type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type contentTypesDoc struct {
	Defaults []struct {
		Extension   string `xml:"Extension,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Default"`
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

type corePropertiesXML struct {
	XMLName  xml.Name `xml:"coreProperties"`
	Title    string   `xml:"title"`
	Subject  string   `xml:"subject"`
	Creator  string   `xml:"creator"`
	Keywords string   `xml:"keywords"`
	Modified string   `xml:"modified"`
}

// sldXML covers slides, layouts and masters; each has a cSld.
type sldXML struct {
	Type    string     `xml:"type,attr"`
	CSld    cSldXML    `xml:"cSld"`
	Layouts []idRefXML `xml:"sldLayoutIdLst>sldLayoutId"`
}

type cSldXML struct {
	Name   string    `xml:"name,attr"`
	Bg     *bgXML    `xml:"bg"`
	SpTree spTreeXML `xml:"spTree"`
}

type bgXML struct {
	BgPr *struct {
		SolidFill *solidFillXML `xml:"solidFill"`
	} `xml:"bgPr"`
}

// spTreeXML keeps shapes in document order, which is their z-order.
type spTreeXML struct {
	Items []treeItem
}

type treeItem struct {
	Sp    *spXML
	Frame *graphicFrameXML
	// Other names an element the model does not represent; Start and End
	// are its byte offsets in the part.
	Other      string
	Start, End int64
}

func (t *spTreeXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		off := d.InputOffset()
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "sp":
				sp := &spXML{}
				if err := d.DecodeElement(sp, &el); err != nil {
					return err
				}
				t.Items = append(t.Items, treeItem{Sp: sp})
			case "graphicFrame":
				gf := &graphicFrameXML{}
				if err := d.DecodeElement(gf, &el); err != nil {
					return err
				}
				item := treeItem{Frame: gf, Start: off, End: d.InputOffset()}
				if gf.Graphic.GraphicData.Tbl == nil {
					item.Other = el.Name.Local
				}
				t.Items = append(t.Items, item)
			case "pic", "grpSp", "cxnSp", "contentPart", "AlternateContent":
				if err := d.Skip(); err != nil {
					return err
				}
				t.Items = append(t.Items, treeItem{Other: el.Name.Local, Start: off, End: d.InputOffset()})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type spXML struct {
	NvSpPr struct {
		CNvPr   cNvPrXML `xml:"cNvPr"`
		CNvSpPr struct {
			TxBox string `xml:"txBox,attr"`
		} `xml:"cNvSpPr"`
		NvPr struct {
			Ph *phXML `xml:"ph"`
		} `xml:"nvPr"`
	} `xml:"nvSpPr"`
	SpPr   spPrXML    `xml:"spPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type phXML struct {
	Type   string `xml:"type,attr"`
	Idx    uint32 `xml:"idx,attr"`
	Orient string `xml:"orient,attr"`
}

type spPrXML struct {
	Xfrm     *xfrmXML `xml:"xfrm"`
	PrstGeom *struct {
		Prst string `xml:"prst,attr"`
	} `xml:"prstGeom"`
	NoFill    *struct{}     `xml:"noFill"`
	SolidFill *solidFillXML `xml:"solidFill"`
	Ln        *lnXML        `xml:"ln"`
}

type xfrmXML struct {
	Off struct {
		X int64 `xml:"x,attr"`
		Y int64 `xml:"y,attr"`
	} `xml:"off"`
	Ext extXML `xml:"ext"`
}

type extXML struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

type lnXML struct {
	W         int64         `xml:"w,attr"`
	NoFill    *struct{}     `xml:"noFill"`
	SolidFill *solidFillXML `xml:"solidFill"`
}

type solidFillXML struct {
	SrgbClr *struct {
		Val string `xml:"val,attr"`
	} `xml:"srgbClr"`
	SchemeClr *struct {
		Val  string `xml:"val,attr"`
		Mods []struct {
			XMLName xml.Name
			Val     string `xml:"val,attr"`
		} `xml:",any"`
	} `xml:"schemeClr"`
}

type txBodyXML struct {
	BodyPr bodyPrXML `xml:"bodyPr"`
	P      []pXML    `xml:"p"`
}

type bodyPrXML struct {
	Wrap   string `xml:"wrap,attr"`
	Anchor string `xml:"anchor,attr"`
	Vert   string `xml:"vert,attr"`
	LIns   *int64 `xml:"lIns,attr"`
	TIns   *int64 `xml:"tIns,attr"`
	RIns   *int64 `xml:"rIns,attr"`
	BIns   *int64 `xml:"bIns,attr"`
}

// pXML keeps runs, fields and breaks in document order.
type pXML struct {
	PPr        *pPrXML
	Runs       []runXML
	EndParaRPr *rPrXML
}

type runXML struct {
	RPr   *rPrXML
	Text  string
	Break bool
}

type textRunXML struct {
	RPr *rPrXML `xml:"rPr"`
	T   string  `xml:"t"`
}

func (p *pXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "pPr":
				p.PPr = &pPrXML{}
				if err := d.DecodeElement(p.PPr, &el); err != nil {
					return err
				}
			case "r", "fld":
				var r textRunXML
				if err := d.DecodeElement(&r, &el); err != nil {
					return err
				}
				p.Runs = append(p.Runs, runXML{RPr: r.RPr, Text: r.T})
			case "br":
				var r textRunXML
				if err := d.DecodeElement(&r, &el); err != nil {
					return err
				}
				p.Runs = append(p.Runs, runXML{RPr: r.RPr, Break: true})
			case "endParaRPr":
				p.EndParaRPr = &rPrXML{}
				if err := d.DecodeElement(p.EndParaRPr, &el); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

type pPrXML struct {
	Lvl    int         `xml:"lvl,attr"`
	Algn   string      `xml:"algn,attr"`
	SpcBef *spacingXML `xml:"spcBef"`
	SpcAft *spacingXML `xml:"spcAft"`
}

type spacingXML struct {
	SpcPts *struct {
		Val int `xml:"val,attr"`
	} `xml:"spcPts"`
}

type rPrXML struct {
	Sz        int           `xml:"sz,attr"`
	B         string        `xml:"b,attr"`
	I         string        `xml:"i,attr"`
	U         string        `xml:"u,attr"`
	SolidFill *solidFillXML `xml:"solidFill"`
	Latin     *struct {
		Typeface string `xml:"typeface,attr"`
	} `xml:"latin"`
}

type graphicFrameXML struct {
	NvGraphicFramePr struct {
		CNvPr cNvPrXML `xml:"cNvPr"`
	} `xml:"nvGraphicFramePr"`
	Xfrm    *xfrmXML `xml:"xfrm"`
	Graphic struct {
		GraphicData struct {
			URI string  `xml:"uri,attr"`
			Tbl *tblXML `xml:"tbl"`
		} `xml:"graphicData"`
	} `xml:"graphic"`
}

type tblXML struct {
	TblPr struct {
		FirstRow string `xml:"firstRow,attr"`
		BandRow  string `xml:"bandRow,attr"`
	} `xml:"tblPr"`
	GridCols []struct {
		W int64 `xml:"w,attr"`
	} `xml:"tblGrid>gridCol"`
	Tr []trXML `xml:"tr"`
}

type trXML struct {
	H  int64   `xml:"h,attr"`
	Tc []tcXML `xml:"tc"`
}

type tcXML struct {
	TxBody *txBodyXML `xml:"txBody"`
	TcPr   *tcPrXML   `xml:"tcPr"`
}

type tcPrXML struct {
	MarL      *int64        `xml:"marL,attr"`
	MarR      *int64        `xml:"marR,attr"`
	MarT      *int64        `xml:"marT,attr"`
	MarB      *int64        `xml:"marB,attr"`
	Anchor    string        `xml:"anchor,attr"`
	NoFill    *struct{}     `xml:"noFill"`
	SolidFill *solidFillXML `xml:"solidFill"`
}
