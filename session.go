package web2pdf

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-web2pdf/internal/cookiejar"
)

// Default viewport: A4 paper minus default margins at 96 DPI
// (8.268-2*0.4 x 11.693-2*0.4 inches).
const (
	defaultViewportWidth  = 717
	defaultViewportHeight = 1046

	defaultPageLoadTimeout = 30 * time.Second
)

// PageRenderer is the per-page capability set the batch orchestrator
// consumes. Implemented by Page; faked in tests.
type PageRenderer interface {
	// EmulateScreenMedia switches CSS @media matching from "print"
	// (the default for new pages) to "screen".
	EmulateScreenMedia() error

	// LayoutMetrics measures the loaded page's CSS content box.
	LayoutMetrics() (ContentSize, error)

	// PDF renders the page with the given options.
	PDF(opts *PrintOptions) ([]byte, error)

	// Close releases the page.
	Close() error
}

// PageOpener creates pages on demand. Implemented by Session; faked in
// tests so the orchestrator can run without a browser.
type PageOpener interface {
	NewPage(location string) (PageRenderer, error)
}

// Compile-time interface implementation checks.
var (
	_ PageOpener   = (*Session)(nil)
	_ PageRenderer = (*Page)(nil)
)

// SessionConfig configures the shared browser session.
type SessionConfig struct {
	// BrowserBin is a Chromium executable path; empty lets rod find or
	// download one.
	BrowserBin string

	// NoSandbox disables the Chrome sandbox, required in most
	// containerized environments.
	NoSandbox bool

	// DeviceScaleFactor overrides the viewport scale; 0 means 1.0.
	DeviceScaleFactor float64

	// ViewportWidth and ViewportHeight override the default viewport,
	// in pixels; 0 keeps the default.
	ViewportWidth  int
	ViewportHeight int

	// PageLoadTimeout bounds the per-page load wait; 0 means 30s.
	PageLoadTimeout time.Duration
}

// Session wraps a rod browser and exposes only the operations the
// batch orchestrator needs. One session serves all work items; each
// item opens its own page.
type Session struct {
	browser *rod.Browser
	cfg     SessionConfig
}

// Launch starts a browser session from cfg.
func Launch(cfg SessionConfig) (*Session, error) {
	l := launcher.New()

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}

	// NoSandbox required for CI and containerized environments
	if cfg.NoSandbox || os.Getenv("CI") == "true" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	if cfg.PageLoadTimeout <= 0 {
		cfg.PageLoadTimeout = defaultPageLoadTimeout
	}
	return &Session{browser: browser, cfg: cfg}, nil
}

// ClearCookies removes any cookies the browser accumulated before this
// run, so only the loaded jar affects page rendering.
func (s *Session) ClearCookies() error {
	return proto.StorageClearCookies{}.Call(s.browser)
}

// SetCookies installs parsed cookie records into the browser.
func (s *Session) SetCookies(records []cookiejar.Record) error {
	if err := s.browser.SetCookies(cookieParams(records)); err != nil {
		return fmt.Errorf("%w: %v", ErrCookieInstall, err)
	}
	return nil
}

// cookieParams maps parsed records onto CDP cookie parameters. The
// source port is pinned to -1 (unspecified) so the cookie applies
// regardless of the originating port.
func cookieParams(records []cookiejar.Record) []*proto.NetworkCookieParam {
	params := make([]*proto.NetworkCookieParam, 0, len(records))
	for _, r := range records {
		sameSite := proto.NetworkCookieSameSiteLax
		if r.SameSite == cookiejar.SameSiteStrict {
			sameSite = proto.NetworkCookieSameSiteStrict
		}
		sourcePort := -1
		params = append(params, &proto.NetworkCookieParam{
			Name:       r.Name,
			Value:      r.Value,
			Domain:     r.Domain,
			Path:       r.Path,
			HTTPOnly:   r.HTTPOnly,
			SameSite:   sameSite,
			Expires:    proto.TimeSinceEpoch(r.Expires),
			SourcePort: &sourcePort,
		})
	}
	return params
}

// LoadCookieFile reads a Netscape-format cookie jar and installs every
// record. All-or-nothing: a parse failure installs nothing, since
// partial cookie state is unsafe for every subsequent page.
func (s *Session) LoadCookieFile(path string) error {
	contents, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("reading cookie file %s: %w", path, err)
	}

	records, err := cookiejar.Parse(string(contents))
	if err != nil {
		return fmt.Errorf("cookie file %s: %w", path, err)
	}

	return s.SetCookies(records)
}

// NewPage opens a page at location, applies the session viewport,
// waits for the load event, and emulates "print" media so print CSS
// applies by default.
func (s *Session) NewPage(location string) (PageRenderer, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{URL: location})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if err := page.SetViewport(s.viewport()); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	if err := page.Timeout(s.cfg.PageLoadTimeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	p := &Page{page: page}
	if err := p.emulateMedia("print"); err != nil {
		return nil, err
	}
	return p, nil
}

// viewport builds the device metrics override from the session config.
func (s *Session) viewport() *proto.EmulationSetDeviceMetricsOverride {
	width := s.cfg.ViewportWidth
	if width <= 0 {
		width = defaultViewportWidth
	}
	height := s.cfg.ViewportHeight
	if height <= 0 {
		height = defaultViewportHeight
	}
	scale := s.cfg.DeviceScaleFactor
	if scale <= 0 {
		scale = 1.0
	}
	return &proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: scale,
		Mobile:            false,
	}
}

// Close shuts the browser down and waits for it to terminate. Call
// only after every task has finished; pages left open by failed tasks
// are cleaned up here.
func (s *Session) Close() error {
	if s.browser == nil {
		return nil
	}
	err := s.browser.Close()
	s.browser = nil
	return err
}

// Page wraps a rod page with the operations a rendering task performs.
type Page struct {
	page *rod.Page
}

// EmulateScreenMedia switches media emulation to "screen" so standard
// CSS applies instead of print CSS.
func (p *Page) EmulateScreenMedia() error {
	return p.emulateMedia("screen")
}

func (p *Page) emulateMedia(media string) error {
	if err := (proto.EmulationSetEmulatedMedia{Media: media}).Call(p.page); err != nil {
		return fmt.Errorf("emulating %s media: %w", media, err)
	}
	return nil
}

// LayoutMetrics measures the CSS content box of the loaded page, in
// device pixels at 96 DPI. Mono sizing depends on this running after
// the load event.
func (p *Page) LayoutMetrics() (ContentSize, error) {
	metrics, err := proto.PageGetLayoutMetrics{}.Call(p.page)
	if err != nil {
		return ContentSize{}, fmt.Errorf("measuring layout: %w", err)
	}
	return ContentSize{
		Width:  metrics.CSSContentSize.Width,
		Height: metrics.CSSContentSize.Height,
	}, nil
}

// PDF renders the page to PDF bytes with the given options.
func (p *Page) PDF(opts *PrintOptions) ([]byte, error) {
	reader, err := p.page.PDF(opts.proto())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return buf, nil
}

// Close releases the page target.
func (p *Page) Close() error {
	return p.page.Close()
}

// proto maps PrintOptions onto the CDP print call.
func (o *PrintOptions) proto() *proto.PagePrintToPDF {
	params := &proto.PagePrintToPDF{
		Landscape:           o.Landscape,
		DisplayHeaderFooter: o.DisplayHeaderFooter,
		PrintBackground:     o.PrintBackground,
		PreferCSSPageSize:   o.PreferCSSPageSize,
		HeaderTemplate:      o.HeaderTemplate,
		FooterTemplate:      o.FooterTemplate,
		PageRanges:          o.PageRanges,
		MarginTop:           cloneFloat(o.MarginTop),
		MarginBottom:        cloneFloat(o.MarginBottom),
		MarginLeft:          cloneFloat(o.MarginLeft),
		MarginRight:         cloneFloat(o.MarginRight),
		PaperWidth:          cloneFloat(o.PaperWidth),
		PaperHeight:         cloneFloat(o.PaperHeight),
		Scale:               cloneFloat(o.Scale),
	}
	if o.GenerateTaggedPDF != nil {
		params.GenerateTaggedPDF = *o.GenerateTaggedPDF
	}
	return params
}
