// Package cookiejar parses Netscape-format cookie files, the format
// curl reads and writes. See https://curl.se/docs/http-cookies.html.
package cookiejar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SameSite is the cookie same-site policy installed into the browser.
type SameSite string

// Same-site policies. Only Strict and Lax occur in parsed jars.
const (
	SameSiteStrict SameSite = "Strict"
	SameSiteLax    SameSite = "Lax"
)

// Record is one parsed cookie line.
type Record struct {
	Domain   string
	SameSite SameSite
	Path     string
	HTTPOnly bool
	Expires  float64 // seconds since epoch
	Name     string
	Value    string
}

// Sentinel errors for cookie file parsing.
var (
	ErrFieldCount = errors.New("wrong number of cookie fields")
	ErrBadExpiry  = errors.New("invalid cookie expiry")
)

// httpOnlyPrefix marks an http-only cookie; the rest of the line is a
// normal record.
const httpOnlyPrefix = "#HttpOnly_"

// fieldCount is the exact number of tab-separated fields per record:
// domain, include-subdomains flag, path, http-only flag, expiry, name,
// value.
const fieldCount = 7

// Parse converts cookie file contents into records, one per data line,
// preserving input order. Comment lines and blank lines are skipped.
// All-or-nothing: any malformed line fails the whole parse, since a
// partially loaded jar is unsafe for every subsequent page.
//
// The include-subdomains column is mapped to the same-site policy
// (TRUE = Strict, else Lax). That reuse is historical and deliberately
// preserved.
func Parse(contents string) ([]Record, error) {
	var records []Record

	for _, raw := range strings.Split(contents, "\n") {
		line := strings.TrimRight(raw, "\r\n")
		if line == "" {
			continue
		}

		httpOnly := false
		if strings.HasPrefix(line, httpOnlyPrefix) {
			line = line[len(httpOnlyPrefix):]
			httpOnly = true
		} else if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != fieldCount {
			return nil, fmt.Errorf("%w: got %d, want %d: %q", ErrFieldCount, len(fields), fieldCount, line)
		}

		expires, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadExpiry, line, err)
		}

		sameSite := SameSiteLax
		if fields[1] == "TRUE" {
			sameSite = SameSiteStrict
		}

		records = append(records, Record{
			Domain:   fields[0],
			SameSite: sameSite,
			Path:     fields[2],
			HTTPOnly: httpOnly || fields[3] == "TRUE",
			Expires:  expires,
			Name:     fields[5],
			Value:    fields[6],
		})
	}

	return records, nil
}
