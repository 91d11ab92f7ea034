package domain

// CanRead decides read eligibility for a file record. requesterID is empty
// for anonymous callers. A file is readable when it is public or when the
// requester owns it.
func CanRead(requesterID string, f File) bool {
	if f.IsPublic {
		return true
	}
	return requesterID != "" && requesterID == f.UserID
}
