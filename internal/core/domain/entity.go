// Package domain contains the core domain models for directory entities and
// the membership tree built from them.
package domain

// Kind identifies which directory entity variant a value represents.
type Kind string

const (
	// KindUser is a directory user account.
	KindUser Kind = "user"
	// KindGroup is a directory group.
	KindGroup Kind = "group"
	// KindDevice is a directory device registration.
	KindDevice Kind = "device"
)

// Entity is a single directory record: a User, Group or Device.
// EntityID returns the directory-assigned object id, which is globally unique
// per entity but may appear at several positions in a membership tree.
type Entity interface {
	EntityID() string
	Label() string
	EntityKind() Kind
}

// User represents a directory user account.
// Optional attributes (Mail, JobTitle, Department) default to the empty
// string; defaulting happens at the gateway boundary, not here.
type User struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	UserPrincipalName string `json:"userPrincipalName"`
	Mail              string `json:"mail,omitempty"`
	JobTitle          string `json:"jobTitle,omitempty"`
	Department        string `json:"department,omitempty"`
}

// EntityID returns the directory object id.
func (u User) EntityID() string { return u.ID }

// Label returns the display name.
func (u User) Label() string { return u.DisplayName }

// EntityKind returns KindUser.
func (u User) EntityKind() Kind { return KindUser }

// Group represents a directory group.
// MemberCount is -1 when the directory did not report a count.
type Group struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description,omitempty"`
	GroupTypes  []string `json:"groupTypes,omitempty"`
	MemberCount int      `json:"memberCount"`
	IsEmpty     bool     `json:"isEmpty"`
}

// EntityID returns the directory object id.
func (g Group) EntityID() string { return g.ID }

// Label returns the display name.
func (g Group) Label() string { return g.DisplayName }

// EntityKind returns KindGroup.
func (g Group) EntityKind() Kind { return KindGroup }

// Device represents a directory device registration.
type Device struct {
	ID              string `json:"id"`
	DisplayName     string `json:"displayName"`
	DeviceID        string `json:"deviceId"`
	OperatingSystem string `json:"operatingSystem,omitempty"`
	IsManaged       bool   `json:"isManaged"`
	IsCompliant     bool   `json:"isCompliant"`
}

// EntityID returns the directory object id.
func (d Device) EntityID() string { return d.ID }

// Label returns the display name.
func (d Device) Label() string { return d.DisplayName }

// EntityKind returns KindDevice.
func (d Device) EntityKind() Kind { return KindDevice }
