// Package pages holds the admin panel's page components. The .templ files
// are the source; the _templ.go files next to them come from `mage gen`.
package pages

import (
	"net/http"
	"strconv"
)

// refreshWhile is the reload interval for a page still waiting on a fetch,
// and zero once the page has something final to show.
func refreshWhile(loading bool, seconds int) int {
	if loading {
		return seconds
	}
	return 0
}

func statusLine(status int) string {
	return strconv.Itoa(status) + " " + http.StatusText(status)
}
