package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/yeremiapane/kitchenlog/export"
	"github.com/yeremiapane/kitchenlog/utils"
)

// LogoSource supplies the image drawn on exported documents. A nil asset
// means the document is drawn without one.
type LogoSource interface {
	Load(ctx context.Context) *export.Asset
}

// AssetLoader reads the logo from a file path or an http(s) URL. Loads are
// bounded by Timeout; on any failure the export goes ahead without a logo.
// The first successful load is reused.
type AssetLoader struct {
	Source  string
	Timeout time.Duration

	client *resty.Client
	mu     sync.Mutex
	cached *export.Asset
}

func NewAssetLoader(source string, timeout time.Duration) *AssetLoader {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AssetLoader{
		Source:  source,
		Timeout: timeout,
		client:  resty.New().SetTimeout(timeout),
	}
}

func (l *AssetLoader) Load(ctx context.Context) *export.Asset {
	if l == nil || l.Source == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cached != nil {
		return l.cached
	}

	ctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()

	data, err := l.fetch(ctx)
	if err != nil {
		utils.ErrorLogger.Warnf("Logo %s unavailable, exporting without it: %v", l.Source, err)
		return nil
	}
	kind, err := imageType(data)
	if err != nil {
		utils.ErrorLogger.Warnf("Logo %s unusable, exporting without it: %v", l.Source, err)
		return nil
	}

	l.cached = &export.Asset{Name: filepath.Base(l.Source), ImageType: kind, Data: data}
	return l.cached
}

func (l *AssetLoader) fetch(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(l.Source, "http://") || strings.HasPrefix(l.Source, "https://") {
		resp, err := l.client.R().SetContext(ctx).Get(l.Source)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode())
		}
		return resp.Body(), nil
	}
	return os.ReadFile(l.Source)
}

func imageType(data []byte) (string, error) {
	switch ct := http.DetectContentType(data); ct {
	case "image/png":
		return "PNG", nil
	case "image/jpeg":
		return "JPG", nil
	case "image/gif":
		return "GIF", nil
	default:
		return "", fmt.Errorf("unsupported image type %s", ct)
	}
}
