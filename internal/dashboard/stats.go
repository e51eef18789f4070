package dashboard

// Stats aggregates headcounts over active invitations only; deactivated rows
// never count toward the event totals.
type Stats struct {
	ConfirmedAdults int
	TotalAdults     int
	ConfirmedKids   int
	TotalKids       int
	Accepted        int
	Declined        int
	ActiveInvites   int
}

// Stats computes the summary from the full fetched set, ignoring the current
// filter and page.
func (d *Dashboard) Stats() Stats {
	var s Stats
	for _, g := range d.all {
		if !g.Active {
			continue
		}
		s.ActiveInvites++
		s.TotalAdults += g.Adults
		s.TotalKids += g.Kids
		switch {
		case g.Attendance.Confirmed():
			s.Accepted++
			s.ConfirmedAdults += g.Adults
			s.ConfirmedKids += g.Kids
		case g.Attendance.Declined():
			s.Declined++
		}
	}
	return s
}
