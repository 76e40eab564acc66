package models

type GQLRequest struct {
	OperationName string                 `json:"operationName"`
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
}

type GQLChannelResponse struct {
	Data   *GQLChannelData `json:"data"`
	Errors []GQLError      `json:"errors"`
}

type GQLChannelData struct {
	Channel *GQLChannel `json:"channel"`
}

type GQLChannel struct {
	Login           string            `json:"login"`           // channel login name
	DisplayName     string            `json:"displayName"`     // channel display name
	ProfileImageURL string            `json:"profileImageURL"` // 150x150 profile image
	Roles           *GQLRoles         `json:"roles"`           // null for banned users
	Followers       *GQLFollowers     `json:"followers"`       // follower connection
	Stream          *GQLStream        `json:"stream"`          // null when offline
	LastBroadcast   *GQLLastBroadcast `json:"lastBroadcast"`   // null when never streamed
}

type GQLRoles struct {
	IsPartner bool `json:"isPartner"`
}

type GQLFollowers struct {
	TotalCount uint64 `json:"totalCount"`
}

type GQLStream struct {
	ID           string `json:"id"`
	ViewersCount uint64 `json:"viewersCount"`
}

type GQLLastBroadcast struct {
	ID        string  `json:"id"`
	StartedAt *string `json:"startedAt"` // RFC 3339 timestamp
}

type GQLError struct {
	Message string   `json:"message"`
	Path    []string `json:"path"`
}
