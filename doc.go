// Package web2pdf converts web pages to PDF files using headless Chrome.
//
// # Quick Start
//
// Launch a session, run a batch, and close when done:
//
//	session, err := web2pdf.Launch(web2pdf.SessionConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	items, err := web2pdf.PairWorkItems([]string{
//	    "https://example.com", "example.pdf",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	outcomes := web2pdf.RunBatch(ctx, session, items,
//	    web2pdf.DefaultPrintOptions(), web2pdf.BatchOptions{})
//	failed := web2pdf.CountFailures(outcomes)
//	session.Close()
//
// Each work item is rendered by its own goroutine against the shared
// session; a failing item never aborts its siblings. The number of
// failed items is the aggregate result of a run and doubles as the CLI
// process exit code.
//
// # Mono-page mode
//
// BatchOptions.Mono produces a single PDF page sized to the rendered
// content instead of flowing it across fixed-size paper. The page is
// measured after load and the paper dimensions are derived from the CSS
// content box plus margins; see MonoDimensions.
//
// # Cookies
//
// Session.LoadCookieFile installs cookies from a Netscape-format cookie
// jar (the format curl writes) before any page loads, enabling
// authenticated rendering. Parsing is all-or-nothing: one malformed
// line rejects the whole file.
package web2pdf
