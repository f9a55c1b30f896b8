package matchmaking

// AreCompatible reports whether two waiting entries may be paired.
// It is pure and never pairs a user with themselves, even across two
// devices of the same account.
//
// An age filter only blocks a pairing when both sides declared an age
// band and the bands differ; a missing band on either side lets the
// pairing through. Each side's filter is checked independently, so
// callers must not assume AreCompatible(a, b) == AreCompatible(b, a)
// when exactly one band is missing.
func AreCompatible(a, b WaitingEntry) bool {
	if a.UserID == b.UserID {
		return false
	}
	if a.WantsAgeFilter && a.AgeBand != "" && b.AgeBand != "" && a.AgeBand != b.AgeBand {
		return false
	}
	if b.WantsAgeFilter && a.AgeBand != "" && b.AgeBand != "" && a.AgeBand != b.AgeBand {
		return false
	}
	return true
}
