package twitch_gql_client

import (
	"net/http"
	"time"
)

type Options struct {
	URI           string
	ClientID      string
	Timeout       time.Duration // channel query
	AvatarTimeout time.Duration // profile image download
}

type TwitchGQLClient struct {
	uri          string
	clientID     string
	client       *http.Client
	avatarClient *http.Client
	now          func() time.Time
}

func NewTwitchGQLClient(opts Options) *TwitchGQLClient {
	return &TwitchGQLClient{
		uri:      opts.URI,
		clientID: opts.ClientID,
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		avatarClient: &http.Client{
			Timeout: opts.AvatarTimeout,
		},
		now: time.Now,
	}
}
