package twitch_gql_client

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"streamer_info/internal/models"
)

const maxAvatarSize = 1 << 20

// GetAvatar downloads the profile image behind uri.
func (c *TwitchGQLClient) GetAvatar(ctx context.Context, uri string) ([]byte, error) {
	if uri == "" {
		return nil, errors.Wrap(models.ErrAvatarUnavailable, "empty uri")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, errors.Wrap(models.ErrAvatarUnavailable, err.Error())
	}

	resp, err := c.avatarClient.Do(req)
	if err != nil {
		logrus.Warnf("could not download avatar %s: %v", uri, err)
		return nil, errors.Wrap(models.ErrAvatarUnavailable, err.Error())
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.Warnf("avatar %s answered with status code: %d", uri, resp.StatusCode)
		return nil, errors.Wrapf(models.ErrAvatarUnavailable, "status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAvatarSize))
	if err != nil {
		return nil, errors.Wrap(models.ErrAvatarUnavailable, err.Error())
	}

	return data, nil
}
