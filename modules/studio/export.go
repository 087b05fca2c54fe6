package studio

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/errs"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/model"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/storage"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/utils"
)

// Format - 내보내기 형식
type Format string

const (
	FormatPNG      Format = "png"
	FormatJPEG     Format = "jpeg"
	FormatWebP     Format = "webp"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
)

// Export - 내려받을 파일
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ParseFormat - 빈 값이면 항목 종류에 맞는 기본 형식 (이미지 png, 텍스트 md)
func ParseFormat(s string, t model.ItemType) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		if t == model.TypeImage {
			return FormatPNG, nil
		}
		return FormatMarkdown, nil
	case FormatPNG:
		return FormatPNG, nil
	case FormatJPEG, "jpg":
		return FormatJPEG, nil
	case FormatWebP:
		return FormatWebP, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatMarkdown, "markdown":
		return FormatMarkdown, nil
	}
	return "", errs.Preconditionf("studio.ParseFormat", "unsupported export format %q", s)
}

// ExportItem - 히스토리 항목을 파일로
func ExportItem(item model.HistoryItem, format Format) (Export, error) {
	const op = "studio.ExportItem"

	if item.Type == model.TypeImage {
		img, err := utils.ParseDataURI(item.Result)
		if err != nil {
			return Export{}, errs.Preconditionf(op, "stored image is not a valid data URI: %v", err)
		}
		var data []byte
		var mimeType string
		switch format {
		case FormatPNG:
			mimeType = "image/png"
			data, err = utils.Reencode(img.Data, mimeType)
		case FormatJPEG:
			mimeType = "image/jpeg"
			data, err = utils.Reencode(img.Data, mimeType)
		case FormatWebP:
			mimeType = "image/webp"
			data, err = utils.ConvertToWebP(img.Data, storage.WebPQuality)
		default:
			return Export{}, errs.Preconditionf(op, "format %q is not available for images", format)
		}
		if err != nil {
			return Export{}, errs.Preconditionf(op, "failed to convert image: %v", err)
		}
		return Export{
			Filename:    fmt.Sprintf("lumina-image-%d.%s", item.Timestamp, format),
			ContentType: mimeType,
			Data:        data,
		}, nil
	}

	switch format {
	case FormatMarkdown:
		return Export{
			Filename:    fmt.Sprintf("lumina-content-%d.md", item.Timestamp),
			ContentType: "text/markdown; charset=utf-8",
			Data:        []byte(item.Result),
		}, nil
	case FormatHTML:
		data, err := renderHTML(item)
		if err != nil {
			return Export{}, errs.Preconditionf(op, "failed to render markdown: %v", err)
		}
		return Export{
			Filename:    fmt.Sprintf("lumina-content-%d.html", item.Timestamp),
			ContentType: "text/html; charset=utf-8",
			Data:        data,
		}, nil
	}
	return Export{}, errs.Preconditionf(op, "format %q is not available for text", format)
}

// renderHTML - 마크다운 본문을 독립 HTML 문서로
func renderHTML(item model.HistoryItem) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(item.Result), &body); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	out.WriteString(html.EscapeString(item.Prompt))
	out.WriteString("</title>\n</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}
