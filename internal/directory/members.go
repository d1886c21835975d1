package directory

import "go.trai.ch/grove/internal/core/domain"

// memberRecord is the cacheable form of a heterogeneous group member. The
// Entity interface cannot round-trip through JSON, so exactly one of the
// typed fields is set, selected by Kind.
type memberRecord struct {
	Kind   domain.Kind    `json:"kind"`
	User   *domain.User   `json:"user,omitempty"`
	Group  *domain.Group  `json:"group,omitempty"`
	Device *domain.Device `json:"device,omitempty"`
}

func encodeMembers(members []domain.Entity) []memberRecord {
	records := make([]memberRecord, 0, len(members))
	for _, m := range members {
		switch e := m.(type) {
		case domain.User:
			records = append(records, memberRecord{Kind: domain.KindUser, User: &e})
		case domain.Group:
			records = append(records, memberRecord{Kind: domain.KindGroup, Group: &e})
		case domain.Device:
			records = append(records, memberRecord{Kind: domain.KindDevice, Device: &e})
		}
	}
	return records
}

func decodeMembers(records []memberRecord) []domain.Entity {
	members := make([]domain.Entity, 0, len(records))
	for _, r := range records {
		switch {
		case r.Kind == domain.KindUser && r.User != nil:
			members = append(members, *r.User)
		case r.Kind == domain.KindGroup && r.Group != nil:
			members = append(members, *r.Group)
		case r.Kind == domain.KindDevice && r.Device != nil:
			members = append(members, *r.Device)
		}
	}
	return members
}
