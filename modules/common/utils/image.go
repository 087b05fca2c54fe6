package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // GIF 디코더 등록
	_ "image/jpeg" // JPEG 디코더 등록
	_ "image/png"  // PNG 디코더 등록
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	_ "github.com/kolesa-team/go-webp/decoder" // WebP 디코더 등록
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// DefaultMIMEType - 응답에 MIME 타입이 없을 때
const DefaultMIMEType = "image/png"

// InlineImage - 요청/응답에 인라인으로 실리는 이미지
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// ParseDataURI - "data:image/png;base64,...." 를 바이너리로 변환
func ParseDataURI(uri string) (InlineImage, error) {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, "data:") {
		return InlineImage{}, fmt.Errorf("not a data URI")
	}
	header, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return InlineImage{}, fmt.Errorf("malformed data URI")
	}
	meta := strings.TrimPrefix(header, "data:")
	mimeType, params, _ := strings.Cut(meta, ";")
	if !strings.Contains(params, "base64") {
		return InlineImage{}, fmt.Errorf("data URI is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return InlineImage{}, fmt.Errorf("failed to decode data URI: %w", err)
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return InlineImage{MIMEType: mimeType, Data: data}, nil
}

// DataURI - 바이너리를 data URI 로 변환
func (img InlineImage) DataURI() string {
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = DefaultMIMEType
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// FitWithin - 긴 변이 maxEdge 를 넘으면 비율 유지하며 줄인다. 넘지 않으면 원본 그대로
func FitWithin(img InlineImage, maxEdge int) (InlineImage, error) {
	if maxEdge <= 0 {
		return img, nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		// 디코딩 못하는 형식은 모델에 그대로 넘긴다
		return img, nil
	}
	if cfg.Width <= maxEdge && cfg.Height <= maxEdge {
		return img, nil
	}

	src, err := imaging.Decode(bytes.NewReader(img.Data), imaging.AutoOrientation(true))
	if err != nil {
		return img, fmt.Errorf("failed to decode image: %w", err)
	}
	resized := imaging.Fit(src, maxEdge, maxEdge, imaging.Lanczos)

	format, mimeType := imaging.PNG, "image/png"
	if img.MIMEType == "image/jpeg" {
		format, mimeType = imaging.JPEG, "image/jpeg"
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return img, fmt.Errorf("failed to encode resized image: %w", err)
	}
	return InlineImage{MIMEType: mimeType, Data: buf.Bytes()}, nil
}

// ConvertToWebP - PNG/JPEG/GIF/WebP 바이너리를 WebP로 변환
func ConvertToWebP(data []byte, quality float32) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to create WebP encoder options: %w", err)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, options); err != nil {
		return nil, fmt.Errorf("failed to encode WebP: %w", err)
	}
	return buf.Bytes(), nil
}

// Reencode - png 또는 jpeg 로 다시 인코딩
func Reencode(data []byte, mimeType string) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var format imaging.Format
	switch mimeType {
	case "image/png":
		format = imaging.PNG
	case "image/jpeg":
		format = imaging.JPEG
	default:
		return nil, fmt.Errorf("unsupported target format: %s", mimeType)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(92)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
