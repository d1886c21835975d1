package msgraph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"go.trai.ch/zerr"
)

// AddMember adds an entity to a group by directory object id. Adding an
// existing member yields domain.ErrAlreadyMember.
func (c *Client) AddMember(ctx context.Context, groupID, entityID string) error {
	payload, err := json.Marshal(map[string]string{
		"@odata.id": c.baseURL + "/directoryObjects/" + url.PathEscape(entityID),
	})
	if err != nil {
		return zerr.Wrap(err, "encoding member reference")
	}

	endpoint := "/groups/" + url.PathEscape(groupID) + "/members/$ref"
	_, err = c.request(ctx, http.MethodPost, endpoint, payload)
	return err
}

// RemoveMember removes an entity from a group.
func (c *Client) RemoveMember(ctx context.Context, groupID, entityID string) error {
	endpoint := "/groups/" + url.PathEscape(groupID) + "/members/" + url.PathEscape(entityID) + "/$ref"
	_, err := c.request(ctx, http.MethodDelete, endpoint, nil)
	return err
}
