package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	web2pdf "github.com/alnah/go-web2pdf"
	"github.com/alnah/go-web2pdf/internal/config"
	"github.com/alnah/go-web2pdf/internal/cookiejar"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"browser launch", web2pdf.ErrBrowserLaunch, ExitBrowser},
		{"wrapped browser launch", fmt.Errorf("starting: %w", web2pdf.ErrBrowserLaunch), ExitBrowser},
		{"file not found", os.ErrNotExist, ExitIO},
		{"permission denied", fmt.Errorf("cookie jar: %w", os.ErrPermission), ExitIO},
		{"no work items", web2pdf.ErrNoWorkItems, ExitUsage},
		{"odd pair count", web2pdf.ErrOddPairCount, ExitUsage},
		{"invalid scale", web2pdf.ErrInvalidScale, ExitUsage},
		{"invalid margin", web2pdf.ErrInvalidMargin, ExitUsage},
		{"invalid paper size", web2pdf.ErrInvalidPaperSize, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},
		{"invalid config", config.ErrInvalidConfig, ExitUsage},
		{"cookie field count", fmt.Errorf("cookie file x: %w", cookiejar.ErrFieldCount), ExitUsage},
		{"cookie expiry", cookiejar.ErrBadExpiry, ExitUsage},
		{"anything else", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
