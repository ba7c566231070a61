package domain

// Content is a catalog record addressed by its code.
type Content struct {
	Code      string
	Title     string
	PosterRef string
	Caption   string
	Parts     []string
}

// HasPoster reports whether the record carries a promotional media reference.
func (c *Content) HasPoster() bool {
	return c.PosterRef != ""
}

// Stats holds the per-code counters.
type Stats struct {
	Code     string
	Searched int64
	Viewed   int64
}

// StatField names a counter column. Only StatSearched and StatViewed are incrementable.
type StatField string

const (
	StatSearched StatField = "searched"
	StatViewed   StatField = "viewed"
)

// Valid reports whether the field names an incrementable counter.
func (f StatField) Valid() bool {
	return f == StatSearched || f == StatViewed
}

// ChannelKind selects one of the two managed channel lists.
type ChannelKind string

const (
	ChannelRequired     ChannelKind = "required"
	ChannelAnnouncement ChannelKind = "announcement"
)

// ParseChannelKind validates a channel kind token.
func ParseChannelKind(s string) (ChannelKind, bool) {
	switch ChannelKind(s) {
	case ChannelRequired:
		return ChannelRequired, true
	case ChannelAnnouncement:
		return ChannelAnnouncement, true
	default:
		return "", false
	}
}

// Channel is an external group with the link users follow to join it.
type Channel struct {
	ID   int64
	Link string
}

// MemberStatus is the membership status reported by the transport.
type MemberStatus string

const (
	MemberCreator       MemberStatus = "creator"
	MemberAdministrator MemberStatus = "administrator"
	MemberMember        MemberStatus = "member"
	MemberRestricted    MemberStatus = "restricted"
	MemberLeft          MemberStatus = "left"
	MemberKicked        MemberStatus = "kicked"
)

// Joined reports whether the status clears a required channel.
func (s MemberStatus) Joined() bool {
	switch s {
	case MemberMember, MemberAdministrator, MemberCreator:
		return true
	default:
		return false
	}
}
