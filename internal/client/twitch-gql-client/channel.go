package twitch_gql_client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"streamer_info/internal/models"
)

const (
	channelOperation = "StreamerInfo_Channel"

	channelQuery = `query StreamerInfo_Channel($login: String!) {
  channel: user(login: $login) {
    login
    displayName
    profileImageURL(width: 150)
    roles { isPartner }
    followers { totalCount }
    stream { id viewersCount }
    lastBroadcast { id startedAt }
  }
}`

	upstreamAvatarSize = "150x150"
	widgetAvatarSize   = "50x50"

	maxResponseSize = 1 << 20
)

// GetChannelInfo queries the channel page data of login and maps it to a snapshot.
func (c *TwitchGQLClient) GetChannelInfo(ctx context.Context, login string) (models.ChannelInfo, error) {
	payload, err := jsoniter.Marshal(models.GQLRequest{
		OperationName: channelOperation,
		Query:         channelQuery,
		Variables: map[string]interface{}{
			"login": login,
		},
	})
	if err != nil {
		return models.ChannelInfo{}, errors.Wrap(err, "Marshal")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uri, bytes.NewReader(payload))
	if err != nil {
		return models.ChannelInfo{}, errors.Wrap(err, "NewRequest")
	}

	req.Header.Add("Client-ID", c.clientID)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		logrus.WithField("channel", login).Warnf("request to twitch gql couldn't be established: %v", err)
		return models.ChannelInfo{}, errors.Wrapf(models.ErrUpstream, "do request: %v", err)
	}

	defer resp.Body.Close()

	readedResp, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return models.ChannelInfo{}, errors.Wrapf(models.ErrUpstream, "read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		logrus.WithField("channel", login).Warnf("requesting twitch gql data went wrong: %d %s", resp.StatusCode, readedResp)
		return models.ChannelInfo{}, errors.Wrapf(models.ErrUpstream, "twitch gql failed with status code: %d", resp.StatusCode)
	}

	var channelResp models.GQLChannelResponse
	err = jsoniter.Unmarshal(readedResp, &channelResp)
	if err != nil {
		logrus.WithField("channel", login).Warnf("could not parse twitch gql data: %v", err)
		return models.ChannelInfo{}, errors.Wrapf(models.ErrUpstream, "unmarshal response: %v", err)
	}

	if channelResp.Data == nil || channelResp.Data.Channel == nil {
		if len(channelResp.Errors) > 0 {
			logrus.WithField("channel", login).Warnf("twitch gql answered with errors: %s", channelResp.Errors[0].Message)
		}
		return models.ChannelInfo{}, errors.Wrapf(models.ErrNotFound, "login %s", login)
	}

	return c.toChannelInfo(login, channelResp.Data.Channel), nil
}

func (c *TwitchGQLClient) toChannelInfo(login string, channel *models.GQLChannel) models.ChannelInfo {
	info := models.ChannelInfo{
		Key:         strings.ToLower(channel.Login),
		DisplayName: channel.DisplayName,
		AvatarURI:   strings.ReplaceAll(channel.ProfileImageURL, upstreamAvatarSize, widgetAvatarSize),
		FetchedAt:   c.now(),
	}

	if info.Key == "" {
		info.Key = login
	}

	if channel.Roles != nil {
		info.IsPartnered = channel.Roles.IsPartner
	}

	if channel.Followers != nil {
		info.FollowerCount = channel.Followers.TotalCount
	}

	if channel.Stream != nil {
		info.IsLive = true
		info.ViewerCount = channel.Stream.ViewersCount
	}

	if channel.LastBroadcast != nil && channel.LastBroadcast.StartedAt != nil {
		startedAt, err := time.Parse(time.RFC3339, *channel.LastBroadcast.StartedAt)
		if err != nil {
			logrus.WithField("channel", login).Debugf("could not parse last broadcast start %q: %v", *channel.LastBroadcast.StartedAt, err)
		} else {
			info.LastStreamStart = startedAt
		}
	}

	return info
}
