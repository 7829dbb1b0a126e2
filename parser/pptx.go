package parser

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glasslab/rfqspec/model"
)

// PPTXParser extracts per-slide text from PPTX files by reading the a:t
// text runs of each slide's XML.
type PPTXParser struct{}

func (p *PPTXParser) SupportedFormats() []string { return []string{"pptx"} }

func (p *PPTXParser) Parse(ctx context.Context, path string) (*model.Document, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening PPTX: %w", err)
	}
	defer r.Close()

	// Collect slide files (ppt/slides/slide1.xml, slide2.xml, ...)
	slideFiles := make(map[int]*zip.File)
	for _, f := range r.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			if num := slideNumber(f.Name); num > 0 {
				slideFiles[num] = f
			}
		}
	}

	nums := make([]int, 0, len(slideFiles))
	for n := range slideFiles {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	doc := &model.Document{
		Path: path,
		Name: filepath.Base(path),
		Type: "pptx",
	}

	for _, num := range nums {
		f := slideFiles[num]
		rc, err := f.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}

		text := slideText(data)
		if text == "" {
			continue
		}

		doc.Pages = append(doc.Pages, &model.Page{
			Number: num,
			Label:  fmt.Sprintf("Slide %d", num),
			Text:   text,
		})
	}

	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("no text found in PPTX")
	}
	return doc, nil
}

type pptxSlide struct {
	CSld struct {
		SpTree struct {
			SPs []pptxSP `xml:"sp"`
		} `xml:"spTree"`
	} `xml:"cSld"`
}

type pptxSP struct {
	TxBody *pptxTxBody `xml:"txBody"`
}

type pptxTxBody struct {
	Paras []pptxPara `xml:"p"`
}

type pptxPara struct {
	Runs []pptxRun `xml:"r"`
}

type pptxRun struct {
	Text string `xml:"t"`
}

func slideText(data []byte) string {
	var slide pptxSlide
	if err := xml.Unmarshal(data, &slide); err != nil {
		return ""
	}

	var parts []string
	for _, sp := range slide.CSld.SpTree.SPs {
		if sp.TxBody == nil {
			continue
		}
		for _, para := range sp.TxBody.Paras {
			var line strings.Builder
			for _, run := range para.Runs {
				line.WriteString(run.Text)
			}
			if t := strings.TrimSpace(line.String()); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, "\n")
}

func slideNumber(name string) int {
	// Extract number from "ppt/slides/slide1.xml"
	name = strings.TrimPrefix(name, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	var num int
	fmt.Sscanf(name, "%d", &num)
	return num
}
