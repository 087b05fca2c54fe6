package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/config"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/utils"
)

// WebPQuality - 업로드 시 WebP 품질
const WebPQuality = 90.0

type Client struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
	log        logger.Logger
}

// Upload - 업로드 결과
type Upload struct {
	Path      string `json:"path"`
	PublicURL string `json:"publicUrl"`
	Size      int64  `json:"size"`
}

// NewClient - Storage 클라이언트 생성
func NewClient(cfg *config.Config, log logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.SupabaseURL, "/"),
		serviceKey: cfg.SupabaseServiceKey,
		bucket:     cfg.SupabaseStorageBucket,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        log,
	}
}

// Enabled - Supabase 설정이 있는지
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != "" && c.serviceKey != ""
}

// UploadImage - Supabase Storage에 이미지 업로드 (WebP 변환 포함)
func (c *Client) UploadImage(ctx context.Context, imageData []byte, ownerID string) (Upload, error) {
	webpData, err := utils.ConvertToWebP(imageData, WebPQuality)
	if err != nil {
		return Upload{}, fmt.Errorf("failed to convert image to WebP: %w", err)
	}

	fileName := fmt.Sprintf("lumina_%d_%s.webp", time.Now().UnixMilli(), shortuuid.New())
	filePath := fmt.Sprintf("published/owner-%s/%s", ownerID, fileName)

	c.log.Info().Str("path", filePath).Msg("📤 Uploading WebP image to storage")

	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, filePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(webpData))
	if err != nil {
		return Upload{}, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "image/webp")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Upload{}, fmt.Errorf("failed to upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		c.log.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("❌ Upload failed")
		return Upload{}, fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(body))
	}

	size := int64(len(webpData))
	c.log.Info().Str("path", filePath).Int64("bytes", size).Msg("✅ WebP image uploaded successfully")
	return Upload{
		Path:      filePath,
		PublicURL: fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, filePath),
		Size:      size,
	}, nil
}
