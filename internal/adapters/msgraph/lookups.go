package msgraph

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	userSelect   = "id,displayName,userPrincipalName,mail,jobTitle,department"
	groupSelect  = "id,displayName,description,groupTypes"
	deviceSelect = "id,displayName,deviceId,operatingSystem,isManaged,isCompliant"
)

// odata types discriminate heterogeneous /members collections.
const (
	typeUser   = "#microsoft.graph.user"
	typeGroup  = "#microsoft.graph.group"
	typeDevice = "#microsoft.graph.device"
)

type userDTO struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	UserPrincipalName string `json:"userPrincipalName"`
	Mail              string `json:"mail"`
	JobTitle          string `json:"jobTitle"`
	Department        string `json:"department"`
}

type groupDTO struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	GroupTypes  []string `json:"groupTypes"`
}

type deviceDTO struct {
	ID              string `json:"id"`
	DisplayName     string `json:"displayName"`
	DeviceID        string `json:"deviceId"`
	OperatingSystem string `json:"operatingSystem"`
	IsManaged       bool   `json:"isManaged"`
	IsCompliant     bool   `json:"isCompliant"`
}

func (d userDTO) toDomain() domain.User {
	return domain.User{
		ID:                d.ID,
		DisplayName:       d.DisplayName,
		UserPrincipalName: d.UserPrincipalName,
		Mail:              d.Mail,
		JobTitle:          d.JobTitle,
		Department:        d.Department,
	}
}

func (d groupDTO) toDomain() domain.Group {
	return domain.Group{
		ID:          d.ID,
		DisplayName: d.DisplayName,
		Description: d.Description,
		GroupTypes:  d.GroupTypes,
		// The listing endpoints do not report membership counts.
		MemberCount: -1,
	}
}

func (d deviceDTO) toDomain() domain.Device {
	return domain.Device{
		ID:              d.ID,
		DisplayName:     d.DisplayName,
		DeviceID:        d.DeviceID,
		OperatingSystem: d.OperatingSystem,
		IsManaged:       d.IsManaged,
		IsCompliant:     d.IsCompliant,
	}
}

// FetchUsers lists directory users, optionally narrowed by a displayName
// prefix search.
func (c *Client) FetchUsers(ctx context.Context, search string) ([]domain.User, error) {
	endpoint := listEndpoint("/users", userSelect, search)
	raws, err := c.getPaged(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(raws))
	for _, raw := range raws {
		var dto userDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			return nil, zerr.Wrap(err, "parsing user")
		}
		users = append(users, dto.toDomain())
	}
	return users, nil
}

// FetchGroups lists directory groups, optionally narrowed by a displayName
// prefix search.
func (c *Client) FetchGroups(ctx context.Context, search string) ([]domain.Group, error) {
	endpoint := listEndpoint("/groups", groupSelect, search)
	return c.fetchGroupList(ctx, endpoint)
}

// FetchDevices lists directory devices, optionally narrowed by a
// displayName prefix search.
func (c *Client) FetchDevices(ctx context.Context, search string) ([]domain.Device, error) {
	endpoint := listEndpoint("/devices", deviceSelect, search)
	raws, err := c.getPaged(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	devices := make([]domain.Device, 0, len(raws))
	for _, raw := range raws {
		var dto deviceDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			return nil, zerr.Wrap(err, "parsing device")
		}
		devices = append(devices, dto.toDomain())
	}
	return devices, nil
}

// FetchUserGroups lists the groups a user is a direct member of.
func (c *Client) FetchUserGroups(ctx context.Context, userID string) ([]domain.Group, error) {
	endpoint := "/users/" + url.PathEscape(userID) + "/memberOf/microsoft.graph.group?$select=" + groupSelect
	return c.fetchGroupList(ctx, endpoint)
}

// FetchGroupMemberOf lists the groups a group is nested in.
func (c *Client) FetchGroupMemberOf(ctx context.Context, groupID string) ([]domain.Group, error) {
	endpoint := "/groups/" + url.PathEscape(groupID) + "/memberOf/microsoft.graph.group?$select=" + groupSelect
	return c.fetchGroupList(ctx, endpoint)
}

// FetchDeviceGroups lists the groups a device is a direct member of.
func (c *Client) FetchDeviceGroups(ctx context.Context, deviceID string) ([]domain.Group, error) {
	endpoint := "/devices/" + url.PathEscape(deviceID) + "/memberOf/microsoft.graph.group?$select=" + groupSelect
	return c.fetchGroupList(ctx, endpoint)
}

// FetchGroupMembers lists the direct members of a group. The collection is
// heterogeneous; each element is discriminated by its @odata.type. Unknown
// member types (service principals, contacts) are skipped.
func (c *Client) FetchGroupMembers(ctx context.Context, groupID string) ([]domain.Entity, error) {
	endpoint := "/groups/" + url.PathEscape(groupID) + "/members"
	raws, err := c.getPaged(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	members := make([]domain.Entity, 0, len(raws))
	for _, raw := range raws {
		var disc struct {
			Type string `json:"@odata.type"`
		}
		if err := json.Unmarshal(raw, &disc); err != nil {
			return nil, zerr.Wrap(err, "parsing member")
		}

		switch disc.Type {
		case typeUser:
			var dto userDTO
			if err := json.Unmarshal(raw, &dto); err != nil {
				return nil, zerr.Wrap(err, "parsing user member")
			}
			members = append(members, dto.toDomain())
		case typeGroup:
			var dto groupDTO
			if err := json.Unmarshal(raw, &dto); err != nil {
				return nil, zerr.Wrap(err, "parsing group member")
			}
			members = append(members, dto.toDomain())
		case typeDevice:
			var dto deviceDTO
			if err := json.Unmarshal(raw, &dto); err != nil {
				return nil, zerr.Wrap(err, "parsing device member")
			}
			members = append(members, dto.toDomain())
		}
	}
	return members, nil
}

func (c *Client) fetchGroupList(ctx context.Context, endpoint string) ([]domain.Group, error) {
	raws, err := c.getPaged(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	groups := make([]domain.Group, 0, len(raws))
	for _, raw := range raws {
		var dto groupDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			return nil, zerr.Wrap(err, "parsing group")
		}
		groups = append(groups, dto.toDomain())
	}
	return groups, nil
}

func listEndpoint(path, selectFields, search string) string {
	q := url.Values{}
	q.Set("$select", selectFields)
	q.Set("$top", pageSize)
	if search != "" {
		q.Set("$filter", "startswith(displayName,'"+strings.ReplaceAll(search, "'", "''")+"')")
	}
	return path + "?" + q.Encode()
}
