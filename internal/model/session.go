package model

import "time"

// Session holds the authenticated user's credentials and context. It is
// created at login/registration and read by every command.
type Session struct {
	Token  string
	UserID string
	OrgID  string
	Role   string
}

// Valid reports whether the session carries a bearer token.
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// TrackedReport is the locally persisted record of the most recent AI report
// job, so an in-progress or completed report survives between invocations.
type TrackedReport struct {
	JobID     string
	Month     int
	Year      int
	UpdatedAt time.Time
}

// MatchesPeriod reports whether the tracked job was generated for the given
// month and year.
func (r *TrackedReport) MatchesPeriod(month, year int) bool {
	return r != nil && r.Month == month && r.Year == year
}
