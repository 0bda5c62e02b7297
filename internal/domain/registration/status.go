package registration

// statusRank orders stored statuses for duplicate resolution. An
// admin decision always outranks a stray pending duplicate.
func statusRank(status string) int {
	switch status {
	case StatusAccepted:
		return 3
	case StatusRejected:
		return 2
	case StatusPending:
		return 1
	}
	return 0
}

// preferred reports whether candidate should win over current when both
// match the same lookup tuple: higher status rank first, then the more
// recently created, then the higher id.
func preferred(candidate, current Registration) bool {
	cr, xr := statusRank(candidate.Status), statusRank(current.Status)
	if cr != xr {
		return cr > xr
	}
	if !candidate.CreatedAt.Equal(current.CreatedAt) {
		return candidate.CreatedAt.After(current.CreatedAt)
	}
	return candidate.ID > current.ID
}

// MembershipStatus derives the caller's membership state for one club
// from their registration list.
// POST: returns not_registered, pending, accepted or rejected
// INVARIANT: pure; regs is not mutated
func MembershipStatus(regs []Registration, clubID int) string {
	found := false
	var best Registration
	for _, r := range regs {
		if r.Kind != KindMember || r.ClubID != clubID {
			continue
		}
		if !found || preferred(r, best) {
			best = r
			found = true
		}
	}
	if !found {
		return StatusNotRegistered
	}
	return best.Status
}

// ActivityStatus derives the caller's state for one activity. An
// existing kegiatan registration wins outright; otherwise participation
// is gated on accepted club membership.
// POST: returns need_membership, can_register, pending, accepted or rejected
// INVARIANT: pure; regs is not mutated
func ActivityStatus(regs []Registration, clubID, activityID int) string {
	found := false
	var best Registration
	for _, r := range regs {
		if r.Kind != KindActivity || r.ClubID != clubID || r.ActivityID != activityID {
			continue
		}
		if !found || preferred(r, best) {
			best = r
			found = true
		}
	}
	if found {
		return best.Status
	}
	if MembershipStatus(regs, clubID) != StatusAccepted {
		return StatusNeedMembership
	}
	return StatusCanRegister
}

// CanApplyMembership reports whether a membership submission is allowed
// for the derived status. Pending, accepted and rejected are all
// terminal for the UI; rejected applications may not be resubmitted.
func CanApplyMembership(status string) bool {
	return status == StatusNotRegistered
}

// CanApplyActivity reports whether an activity submission is allowed.
// need_membership does not permit a submission: the caller is routed to
// the membership flow instead.
func CanApplyActivity(status string) bool {
	return status == StatusCanRegister
}

// Applied appends a just-created registration to the local list so the
// derived status flips without waiting on a refetch. The status is
// forced to pending regardless of what the transient response echoed:
// only a later admin action can make it anything else.
// POST: returns a new slice; regs is not mutated
func Applied(regs []Registration, created Registration) []Registration {
	created.Status = StatusPending
	out := make([]Registration, 0, len(regs)+1)
	out = append(out, regs...)
	return append(out, created)
}
