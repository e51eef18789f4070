package dashboard

import "github.com/dmoreno/invitado/internal/models"

// Ellipsis marks a gap in the page strip returned by PageWindow.
const Ellipsis = -1

// PageCount returns the number of pages under the current filter. An empty
// result set still has one (empty) page.
func (d *Dashboard) PageCount() int {
	n := (len(d.filtered) + d.pageSize - 1) / d.pageSize
	if n < 1 {
		n = 1
	}
	return n
}

// CurrentPage returns the 1-based page in view.
func (d *Dashboard) CurrentPage() int {
	return d.page
}

// SetPage jumps to a page, clamping out-of-range values.
func (d *Dashboard) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	if max := d.PageCount(); n > max {
		n = max
	}
	d.page = n
}

// NextPage advances one page; it is a no-op on the last page.
func (d *Dashboard) NextPage() { d.SetPage(d.page + 1) }

// PrevPage goes back one page; it is a no-op on the first page.
func (d *Dashboard) PrevPage() { d.SetPage(d.page - 1) }

// Rows returns the guests on the current page.
func (d *Dashboard) Rows() []models.Guest {
	start := (d.page - 1) * d.pageSize
	if start >= len(d.filtered) {
		return nil
	}
	end := start + d.pageSize
	if end > len(d.filtered) {
		end = len(d.filtered)
	}
	return d.filtered[start:end]
}

// PageWindow returns the page strip to render: first page, last page and the
// current page's neighbors, with Ellipsis filling the gaps.
func (d *Dashboard) PageWindow() []int {
	total := d.PageCount()
	window := make([]int, 0, 7)
	for n := 1; n <= total; n++ {
		switch {
		case n == 1 || n == total || abs(n-d.page) <= 1:
			window = append(window, n)
		case len(window) > 0 && window[len(window)-1] != Ellipsis:
			window = append(window, Ellipsis)
		}
	}
	return window
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
