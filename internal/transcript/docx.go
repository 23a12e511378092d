package transcript

import (
	"strings"

	"github.com/gomutex/godocx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// WriteDocx exports the transcript as a styled docx document: the title,
// then one bold timestamp header and one text paragraph per fragment.
// Fragments without headers (whole-file transcription) get plain text
// paragraphs only.
func WriteDocx(title string, fragments []Fragment, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	doc.AddParagraph("").AddText(title).Font(fontName).Size(16).Color("000000").Bold(true)
	doc.AddParagraph("")

	for _, f := range fragments {
		if f.EndMs > 0 {
			p := doc.AddParagraph("")
			p.AddText(f.Header()).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}
		p := doc.AddParagraph("")
		p.AddText(text).Font(fontName).Size(fontSize).Color("000000")
	}

	return doc.SaveTo(outputPath)
}
