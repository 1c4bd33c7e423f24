package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across runs.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// modeFlags holds rendering mode flags.
type modeFlags struct {
	mono   bool
	screen bool
}

// printFlags holds Chrome print parameter flags.
type printFlags struct {
	landscape           bool
	disableBackgrounds  bool
	paperWidth          float64
	paperHeight         float64
	marginTop           float64
	marginBottom        float64
	marginLeft          float64
	marginRight         float64
	pageRanges          string
	displayHeaderFooter bool
	headerTemplate      string
	footerTemplate      string
	disablePreferCSS    bool
	generateTaggedPDF   bool
	scale               float64
}

// sessionFlags holds browser session flags.
type sessionFlags struct {
	browserPath string
	noSandbox   bool
	timeout     string
}

// cookieFlags holds cookie jar flags.
type cookieFlags struct {
	jar string
}

// postFlags holds post-render processing flags.
type postFlags struct {
	validate  bool
	mergeInto string
}

// cliFlags holds all parsed flags.
type cliFlags struct {
	common  commonFlags
	mode    modeFlags
	print   printFlags
	session sessionFlags
	cookies cookieFlags
	post    postFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and work item IDs")
}

// addModeFlags adds rendering mode flags to a FlagSet.
func addModeFlags(fs *flag.FlagSet, f *modeFlags) {
	fs.BoolVarP(&f.mono, "mono", "M", false, "single page PDF sized to the content (overrides paper size, scale, orientation)")
	fs.BoolVarP(&f.screen, "screen", "S", false, "emulate screen media type (standard CSS instead of print CSS)")
}

// addPrintFlags adds Chrome print parameter flags to a FlagSet.
func addPrintFlags(fs *flag.FlagSet, f *printFlags) {
	fs.BoolVar(&f.landscape, "landscape", false, "landscape paper orientation")
	fs.BoolVar(&f.disableBackgrounds, "disable-backgrounds", false, "disable printing of background graphics")
	fs.Float64Var(&f.paperWidth, "paper-width", 0, "paper width in inches (default 8.5)")
	fs.Float64Var(&f.paperHeight, "paper-height", 0, "paper height in inches (default 11)")
	fs.Float64Var(&f.marginTop, "margin-top", defaultMarginInches, "top margin in inches")
	fs.Float64Var(&f.marginBottom, "margin-bottom", defaultMarginInches, "bottom margin in inches")
	fs.Float64Var(&f.marginLeft, "margin-left", defaultMarginInches, "left margin in inches")
	fs.Float64Var(&f.marginRight, "margin-right", defaultMarginInches, "right margin in inches")
	fs.StringVar(&f.pageRanges, "page-ranges", "", "pages to print, e.g. '1-5, 8, 11-13'")
	fs.BoolVar(&f.displayHeaderFooter, "display-header-footer", false, "display header and footer")
	fs.StringVar(&f.headerTemplate, "header-template", "", "HTML template for the print header")
	fs.StringVar(&f.footerTemplate, "footer-template", "", "HTML template for the print footer")
	fs.BoolVar(&f.disablePreferCSS, "disable-prefer-css-page-size", false, "disable preferring the page size defined by CSS")
	fs.BoolVar(&f.generateTaggedPDF, "generate-tagged-pdf", false, "generate tagged (accessible) PDF")
	fs.Float64Var(&f.scale, "scale", 0, "rendering scale, 0.1 to 2 (ignored with --mono)")
}

// addSessionFlags adds browser session flags to a FlagSet.
func addSessionFlags(fs *flag.FlagSet, f *sessionFlags) {
	fs.StringVar(&f.browserPath, "browser-path", "", "path to a Chromium browser executable")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox (containers, CI)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout (e.g. 30s, 2m)")
}

// addCookieFlags adds cookie jar flags to a FlagSet.
func addCookieFlags(fs *flag.FlagSet, f *cookieFlags) {
	fs.StringVar(&f.jar, "cookie-jar", "", "Netscape-format cookie file to load into the browser")
}

// addPostFlags adds post-render processing flags to a FlagSet.
func addPostFlags(fs *flag.FlagSet, f *postFlags) {
	fs.BoolVar(&f.validate, "validate", false, "validate produced PDFs")
	fs.StringVar(&f.mergeInto, "merge-into", "", "merge all produced PDFs into one file")
}

// parseFlags parses CLI flags and returns the flat URL/PATH pair list
// as positional arguments.
func parseFlags(args []string) (*cliFlags, *flag.FlagSet, []string, error) {
	fs := flag.NewFlagSet("web2pdf", flag.ContinueOnError)
	f := &cliFlags{}

	addCommonFlags(fs, &f.common)
	addModeFlags(fs, &f.mode)
	addPrintFlags(fs, &f.print)
	addSessionFlags(fs, &f.session)
	addCookieFlags(fs, &f.cookies)
	addPostFlags(fs, &f.post)

	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, err
	}

	return f, fs, fs.Args(), nil
}

// printUsage writes the usage text.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprint(w, `web2pdf converts web pages to PDFs with headless Chrome.

Usage:
  web2pdf [flags] URL PATH [URL PATH ...]

Arguments come in pairs: a URL (or local file path) followed by the
destination PDF path. The exit code equals the number of PDFs that
could not be generated.

Flags:
`)
	fmt.Fprint(w, fs.FlagUsages())
}
