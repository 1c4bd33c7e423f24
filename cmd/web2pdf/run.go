package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	flag "github.com/spf13/pflag"

	web2pdf "github.com/alnah/go-web2pdf"
	"github.com/alnah/go-web2pdf/internal/config"
)

// defaultMarginInches is 1cm, the flag default for each margin.
const defaultMarginInches = web2pdf.DefaultMargin

// run executes a full conversion run and returns the number of failed
// work items. A non-nil error is a fatal startup failure: nothing was
// rendered and the error class decides the exit code.
func run(flags *cliFlags, fs *flag.FlagSet, args []string, env *Environment) (int, error) {
	items, err := web2pdf.PairWorkItems(args)
	if err != nil {
		return 0, err
	}

	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return 0, fmt.Errorf("loading config: %w", err)
		}
	}

	opts, err := buildPrintOptions(flags, fs, cfg)
	if err != nil {
		return 0, err
	}

	// Rewrite local file paths to file:// URLs once, before any task.
	web2pdf.NormalizeLocations(items)

	sc, err := buildSessionConfig(flags, cfg, opts)
	if err != nil {
		return 0, err
	}
	session, err := web2pdf.Launch(sc)
	if err != nil {
		return 0, err
	}

	// Cookie state affects every subsequent page, so any failure here
	// is fatal to the whole run.
	if err := bootstrapCookies(session, flags, cfg); err != nil {
		closeSession(session, env)
		return 0, err
	}

	printer := &progressPrinter{env: env, quiet: flags.common.quiet, verbose: flags.common.verbose}
	outcomes := web2pdf.RunBatch(context.Background(), session, items, opts, web2pdf.BatchOptions{
		Mono:        flags.mode.mono,
		ScreenMedia: flags.mode.screen,
		Progress:    printer.report,
	})

	// All tasks have joined; the session is exclusively ours again.
	closeSession(session, env)

	outcomes = postProcess(outcomes, flags, cfg, env)

	summary := web2pdf.Summarize(outcomes)
	if !flags.common.quiet && len(outcomes) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}
	return summary.Failed, nil
}

// bootstrapCookies clears browser cookie state and installs the jar,
// if one was configured.
func bootstrapCookies(session *web2pdf.Session, flags *cliFlags, cfg *config.Config) error {
	if err := session.ClearCookies(); err != nil {
		return fmt.Errorf("clearing cookies: %w", err)
	}

	jar := flags.cookies.jar
	if jar == "" {
		jar = cfg.Cookies.Jar
	}
	if jar == "" {
		return nil
	}
	return session.LoadCookieFile(jar)
}

// closeSession closes the browser, logging rather than failing the
// run; the PDFs are already on disk at this point.
func closeSession(session *web2pdf.Session, env *Environment) {
	if err := session.Close(); err != nil {
		fmt.Fprintf(env.Stderr, "closing browser: %v\n", err)
	}
}

// buildPrintOptions assembles the per-run options template from
// defaults, config, and flags. CLI values win over config values, which
// win over defaults; fs.Changed distinguishes an explicit flag from its
// default.
func buildPrintOptions(flags *cliFlags, fs *flag.FlagSet, cfg *config.Config) (*web2pdf.PrintOptions, error) {
	o := web2pdf.DefaultPrintOptions()

	// Config layer
	if cfg.Print.Landscape != nil {
		o.Landscape = *cfg.Print.Landscape
	}
	if cfg.Print.Background != nil {
		o.PrintBackground = *cfg.Print.Background
	}
	if cfg.Print.DisplayHeaderFooter != nil {
		o.DisplayHeaderFooter = *cfg.Print.DisplayHeaderFooter
	}
	if cfg.Print.HeaderTemplate != "" {
		o.HeaderTemplate = cfg.Print.HeaderTemplate
	}
	if cfg.Print.FooterTemplate != "" {
		o.FooterTemplate = cfg.Print.FooterTemplate
	}
	if cfg.Print.MarginTop != nil {
		o.MarginTop = web2pdf.Float(*cfg.Print.MarginTop)
	}
	if cfg.Print.MarginBottom != nil {
		o.MarginBottom = web2pdf.Float(*cfg.Print.MarginBottom)
	}
	if cfg.Print.MarginLeft != nil {
		o.MarginLeft = web2pdf.Float(*cfg.Print.MarginLeft)
	}
	if cfg.Print.MarginRight != nil {
		o.MarginRight = web2pdf.Float(*cfg.Print.MarginRight)
	}
	if cfg.Print.PaperWidth != nil {
		o.PaperWidth = web2pdf.Float(*cfg.Print.PaperWidth)
	}
	if cfg.Print.PaperHeight != nil {
		o.PaperHeight = web2pdf.Float(*cfg.Print.PaperHeight)
	}
	if cfg.Print.Scale != nil {
		o.Scale = web2pdf.Float(*cfg.Print.Scale)
	}
	if cfg.Print.PageRanges != "" {
		o.PageRanges = cfg.Print.PageRanges
	}
	if cfg.Print.PreferCSSPageSize != nil {
		o.PreferCSSPageSize = *cfg.Print.PreferCSSPageSize
	}
	if cfg.Print.TaggedPDF != nil {
		o.GenerateTaggedPDF = web2pdf.Bool(*cfg.Print.TaggedPDF)
	}

	// Flag layer
	if flags.print.landscape {
		o.Landscape = true
	}
	if flags.print.disableBackgrounds {
		o.PrintBackground = false
	}
	if flags.print.displayHeaderFooter {
		o.DisplayHeaderFooter = true
	}
	if flags.print.headerTemplate != "" {
		o.HeaderTemplate = flags.print.headerTemplate
	}
	if flags.print.footerTemplate != "" {
		o.FooterTemplate = flags.print.footerTemplate
	}
	if fs.Changed("margin-top") {
		o.MarginTop = web2pdf.Float(flags.print.marginTop)
	}
	if fs.Changed("margin-bottom") {
		o.MarginBottom = web2pdf.Float(flags.print.marginBottom)
	}
	if fs.Changed("margin-left") {
		o.MarginLeft = web2pdf.Float(flags.print.marginLeft)
	}
	if fs.Changed("margin-right") {
		o.MarginRight = web2pdf.Float(flags.print.marginRight)
	}
	if fs.Changed("paper-width") {
		o.PaperWidth = web2pdf.Float(flags.print.paperWidth)
	}
	if fs.Changed("paper-height") {
		o.PaperHeight = web2pdf.Float(flags.print.paperHeight)
	}
	if fs.Changed("scale") {
		o.Scale = web2pdf.Float(flags.print.scale)
	}
	if flags.print.pageRanges != "" {
		o.PageRanges = flags.print.pageRanges
	}
	if flags.print.disablePreferCSS {
		o.PreferCSSPageSize = false
	}
	if fs.Changed("generate-tagged-pdf") {
		o.GenerateTaggedPDF = web2pdf.Bool(flags.print.generateTaggedPDF)
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// buildSessionConfig derives the browser session config. The scale
// factor doubles as the viewport device scale, and explicit paper
// dimensions override the viewport in pixels at 96 DPI. A malformed
// timeout flag is a fatal usage error, like any other invalid value.
func buildSessionConfig(flags *cliFlags, cfg *config.Config, opts *web2pdf.PrintOptions) (web2pdf.SessionConfig, error) {
	sc := web2pdf.SessionConfig{
		BrowserBin:      cfg.Browser.Bin,
		NoSandbox:       cfg.Browser.NoSandbox,
		PageLoadTimeout: cfg.PageLoadTimeoutDuration(),
	}

	if flags.session.browserPath != "" {
		sc.BrowserBin = flags.session.browserPath
	}
	if flags.session.noSandbox {
		sc.NoSandbox = true
	}
	if flags.session.timeout != "" {
		d, err := time.ParseDuration(flags.session.timeout)
		if err != nil {
			return web2pdf.SessionConfig{}, fmt.Errorf("%w: timeout %q: %v", config.ErrInvalidConfig, flags.session.timeout, err)
		}
		sc.PageLoadTimeout = d
	}

	if opts.Scale != nil {
		sc.DeviceScaleFactor = *opts.Scale
	}
	if opts.PaperWidth != nil {
		sc.ViewportWidth = int(*opts.PaperWidth * web2pdf.DPI)
	}
	if opts.PaperHeight != nil {
		sc.ViewportHeight = int(*opts.PaperHeight * web2pdf.DPI)
	}
	return sc, nil
}

// progressPrinter emits one log line per outcome as tasks finish.
// Safe for concurrent use; line order follows completion order.
type progressPrinter struct {
	mu      sync.Mutex
	env     *Environment
	quiet   bool
	verbose bool
}

func (p *progressPrinter) report(o web2pdf.TaskOutcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if o.Err != nil {
		fmt.Fprintf(p.env.Stderr, "FAILED %s: %v\n", o.Item.Location, o.Err)
		return
	}
	if p.quiet {
		return
	}
	if p.verbose {
		fmt.Fprintf(p.env.Stdout, "%s -> %s (%v) [%s]\n",
			o.Item.Location, o.Item.Destination, o.Duration.Round(time.Millisecond), o.Item.ID)
		return
	}
	fmt.Fprintf(p.env.Stdout, "Created %s\n", o.Item.Destination)
}
