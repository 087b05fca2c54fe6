package generation

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/errs"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/utils"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/prompt"
)

// prepareAttachments - data URI 파싱 + 축소를 병렬로. 입력 순서 유지
func (c *Client) prepareAttachments(ctx context.Context, op string, uris []string) ([]prompt.Attachment, error) {
	var kept []string
	for _, u := range uris {
		if strings.TrimSpace(u) != "" {
			kept = append(kept, u)
		}
	}
	if len(kept) == 0 {
		return nil, nil
	}

	out := make([]prompt.Attachment, len(kept))
	g, _ := errgroup.WithContext(ctx)
	for i, uri := range kept {
		g.Go(func() error {
			img, err := utils.ParseDataURI(uri)
			if err != nil {
				return errs.Preconditionf(op, "Invalid image attachment #%d: %v", i+1, err)
			}
			fitted, err := utils.FitWithin(img, c.maxEdge)
			if err != nil {
				c.log.Warn().Err(err).Int("index", i).Msg("⚠️ [Generation] Resize failed, forwarding original")
				fitted = img
			}
			out[i] = fitted
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// prepareOne - 단일 이미지. 비어 있으면 nil
func (c *Client) prepareOne(ctx context.Context, op, uri string) (*prompt.Attachment, error) {
	list, err := c.prepareAttachments(ctx, op, []string{uri})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}
