package models

type Record struct {
	ID       string `json:"id"`
	Workout  string `json:"workout"`
	MemberID string `json:"memberId"`
	Record   string `json:"record"`
	Member   string `json:"member"`
}

type NewRecord struct {
	Workout  string `json:"workout"`
	MemberID string `json:"memberId"`
	Record   string `json:"record"`
}

type RecordPatch struct {
	Workout  *string `json:"workout"`
	MemberID *string `json:"memberId"`
	Record   *string `json:"record"`
}

func (p RecordPatch) Apply(r Record) Record {
	if p.Workout != nil {
		r.Workout = *p.Workout
	}
	if p.MemberID != nil {
		r.MemberID = *p.MemberID
	}
	if p.Record != nil {
		r.Record = *p.Record
	}
	r.Member = MemberLink(r.MemberID)
	return r
}

// MemberLink is the relative resource path stored alongside each record.
func MemberLink(memberID string) string { return "/members/" + memberID }

type RecordFilter struct {
	Workout  string
	MemberID string
}
